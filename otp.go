package maya

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
)

var _ OTPService = (*CacheOTPService)(nil)

// CacheOTPService implements OTPService on top of a Cache. Codes are
// six digits, expire after OTPTTL, and are consumed on successful
// verification.
type CacheOTPService struct {
	Cache Cache
}

// IssueOTP generates a code for the email and returns it. Any
// previously issued code for the email is replaced.
func (s *CacheOTPService) IssueOTP(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", Errorf(EINVALID, "email required")
	}

	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	code := fmt.Sprintf("%06d", n.Int64())

	if err := s.Cache.Set(ctx, otpKey(email), []byte(code), OTPTTL); err != nil {
		return "", err
	}
	return code, nil
}

// VerifyOTP checks a code previously issued for the email. A correct
// code is single-use.
func (s *CacheOTPService) VerifyOTP(ctx context.Context, email, code string) error {
	stored, err := s.Cache.Get(ctx, otpKey(email))
	if err != nil {
		if ErrorCode(err) == ENOTFOUND {
			return Errorf(EUNAUTHORIZED, "code expired or never issued")
		}
		return err
	}

	if subtle.ConstantTimeCompare(stored, []byte(code)) != 1 {
		return Errorf(EUNAUTHORIZED, "incorrect code")
	}

	return s.Cache.Delete(ctx, otpKey(email))
}

func otpKey(email string) string {
	return "otp:email:" + email
}
