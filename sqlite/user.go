package sqlite

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/argon2"

	"github.com/rathodv/maya"
)

// Argon2id parameters for the password verifier.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	saltLen      = 16
)

// Compile-time interface verification.
var _ maya.UserService = (*UserService)(nil)

// UserService implements maya.UserService using SQLite. Passwords are
// stored as an Argon2id verifier with a per-user random salt; the
// plaintext never touches the database.
type UserService struct {
	db *DB
}

// NewUserService creates a new UserService.
func NewUserService(db *DB) *UserService {
	return &UserService{db: db}
}

// CreateUser registers a new user with the given password.
func (s *UserService) CreateUser(ctx context.Context, user *maya.User, password string) error {
	if err := user.Validate(); err != nil {
		return err
	}
	if len(password) < 8 {
		return maya.Errorf(maya.EINVALID, "password must be at least 8 characters")
	}

	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return err
	}

	user.ID = uuid.New().String()
	user.Email = normalizeEmail(user.Email)
	user.Salt = salt
	user.Verifier = deriveVerifier(password, salt)
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, name, salt, verifier, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, user.ID, user.Email, user.Name, user.Salt, user.Verifier,
		user.CreatedAt.Format(time.RFC3339), user.UpdatedAt.Format(time.RFC3339))

	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint") {
		return maya.Errorf(maya.ECONFLICT, "email already registered")
	}
	return err
}

// Authenticate verifies the email/password pair.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*maya.User, error) {
	user, err := s.FindUserByEmail(ctx, email)
	if err != nil {
		if maya.ErrorCode(err) == maya.ENOTFOUND {
			// Same error as a wrong password so responses do not leak
			// which emails are registered.
			return nil, maya.Errorf(maya.EUNAUTHORIZED, "invalid email or password")
		}
		return nil, err
	}

	candidate := deriveVerifier(password, user.Salt)
	if subtle.ConstantTimeCompare(candidate, user.Verifier) != 1 {
		return nil, maya.Errorf(maya.EUNAUTHORIZED, "invalid email or password")
	}
	return user, nil
}

// FindUserByID retrieves a user by ID.
func (s *UserService) FindUserByID(ctx context.Context, id string) (*maya.User, error) {
	return s.findUser(ctx, "id = ?", id)
}

// FindUserByEmail retrieves a user by email.
func (s *UserService) FindUserByEmail(ctx context.Context, email string) (*maya.User, error) {
	return s.findUser(ctx, "email = ?", normalizeEmail(email))
}

func (s *UserService) findUser(ctx context.Context, where string, arg any) (*maya.User, error) {
	var user maya.User
	var createdAt, updatedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, name, salt, verifier, created_at, updated_at
		FROM users
		WHERE `+where,
		arg,
	).Scan(&user.ID, &user.Email, &user.Name, &user.Salt, &user.Verifier, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, maya.Errorf(maya.ENOTFOUND, "user not found")
	}
	if err != nil {
		return nil, err
	}

	if user.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if user.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &user, nil
}

// deriveVerifier computes the Argon2id verifier for a password and salt.
func deriveVerifier(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
