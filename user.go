package maya

import (
	"context"
	"strings"
	"time"
)

// User represents a registered account.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Salt and Verifier hold the password verifier material. They are
	// never serialized to clients.
	Salt     []byte `json:"-"`
	Verifier []byte `json:"-"`
}

// Validate returns an error if the user contains invalid fields.
func (u *User) Validate() error {
	if u.Email == "" {
		return Errorf(EINVALID, "user email required")
	}
	if !strings.Contains(u.Email, "@") {
		return Errorf(EINVALID, "user email invalid")
	}
	return nil
}

// UserService represents a service for managing users and credentials.
type UserService interface {
	// CreateUser registers a new user with the given password.
	// Returns ECONFLICT if the email is already registered.
	CreateUser(ctx context.Context, user *User, password string) error

	// Authenticate verifies the email/password pair.
	// Returns EUNAUTHORIZED if the credentials do not match.
	Authenticate(ctx context.Context, email, password string) (*User, error)

	// FindUserByID retrieves a user by ID.
	// Returns ENOTFOUND if the user does not exist.
	FindUserByID(ctx context.Context, id string) (*User, error)

	// FindUserByEmail retrieves a user by email.
	// Returns ENOTFOUND if the user does not exist.
	FindUserByEmail(ctx context.Context, email string) (*User, error)
}

// OTPTTL is how long a one-time password remains valid.
const OTPTTL = 5 * time.Minute

// OTPService issues and verifies short-lived one-time passwords used
// for email verification.
type OTPService interface {
	// IssueOTP generates a code for the email and returns it.
	// Any previously issued code for the email is replaced.
	IssueOTP(ctx context.Context, email string) (string, error)

	// VerifyOTP checks a code previously issued for the email.
	// Returns EUNAUTHORIZED if the code is wrong or expired.
	VerifyOTP(ctx context.Context, email, code string) error
}

// TokenService issues and verifies access tokens.
type TokenService interface {
	// Issue returns a signed token carrying the user ID.
	Issue(userID string) (string, error)

	// Verify parses a token and returns the user ID it carries.
	// Returns EUNAUTHORIZED if the token is invalid or expired.
	Verify(token string) (string, error)
}
