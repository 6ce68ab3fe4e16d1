// Package mock provides function-field mock implementations of the
// service interfaces for use in tests.
package mock

import (
	"context"

	"github.com/rathodv/maya"
)

var _ maya.UserService = (*UserService)(nil)

// UserService is a mock implementation of maya.UserService.
type UserService struct {
	CreateUserFn      func(ctx context.Context, user *maya.User, password string) error
	AuthenticateFn    func(ctx context.Context, email, password string) (*maya.User, error)
	FindUserByIDFn    func(ctx context.Context, id string) (*maya.User, error)
	FindUserByEmailFn func(ctx context.Context, email string) (*maya.User, error)
}

func (s *UserService) CreateUser(ctx context.Context, user *maya.User, password string) error {
	return s.CreateUserFn(ctx, user, password)
}

func (s *UserService) Authenticate(ctx context.Context, email, password string) (*maya.User, error) {
	return s.AuthenticateFn(ctx, email, password)
}

func (s *UserService) FindUserByID(ctx context.Context, id string) (*maya.User, error) {
	return s.FindUserByIDFn(ctx, id)
}

func (s *UserService) FindUserByEmail(ctx context.Context, email string) (*maya.User, error) {
	return s.FindUserByEmailFn(ctx, email)
}

var _ maya.OTPService = (*OTPService)(nil)

// OTPService is a mock implementation of maya.OTPService.
type OTPService struct {
	IssueOTPFn  func(ctx context.Context, email string) (string, error)
	VerifyOTPFn func(ctx context.Context, email, code string) error
}

func (s *OTPService) IssueOTP(ctx context.Context, email string) (string, error) {
	return s.IssueOTPFn(ctx, email)
}

func (s *OTPService) VerifyOTP(ctx context.Context, email, code string) error {
	return s.VerifyOTPFn(ctx, email, code)
}

var _ maya.TokenService = (*TokenService)(nil)

// TokenService is a mock implementation of maya.TokenService.
type TokenService struct {
	IssueFn  func(userID string) (string, error)
	VerifyFn func(token string) (string, error)
}

func (s *TokenService) Issue(userID string) (string, error) {
	return s.IssueFn(userID)
}

func (s *TokenService) Verify(token string) (string, error) {
	return s.VerifyFn(token)
}
