package maya_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rathodv/maya"
	"github.com/rathodv/maya/mock"
)

func TestCacheOTPService(t *testing.T) {
	t.Parallel()

	t.Run("issue stores a six digit code with the OTP TTL", func(t *testing.T) {
		t.Parallel()

		var storedKey string
		var storedValue []byte
		var storedTTL time.Duration
		svc := &maya.CacheOTPService{Cache: &mock.Cache{
			SetFn: func(_ context.Context, key string, value []byte, ttl time.Duration) error {
				storedKey, storedValue, storedTTL = key, value, ttl
				return nil
			},
		}}

		code, err := svc.IssueOTP(context.Background(), "priya@example.com")
		require.NoError(t, err)
		assert.Len(t, code, 6)
		assert.Equal(t, "otp:email:priya@example.com", storedKey)
		assert.Equal(t, code, string(storedValue))
		assert.Equal(t, maya.OTPTTL, storedTTL)
	})

	t.Run("verify accepts the stored code and consumes it", func(t *testing.T) {
		t.Parallel()

		deleted := false
		svc := &maya.CacheOTPService{Cache: &mock.Cache{
			GetFn: func(_ context.Context, _ string) ([]byte, error) {
				return []byte("123456"), nil
			},
			DeleteFn: func(_ context.Context, key string) error {
				deleted = true
				assert.Equal(t, "otp:email:priya@example.com", key)
				return nil
			},
		}}

		err := svc.VerifyOTP(context.Background(), "priya@example.com", "123456")
		require.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("verify rejects a wrong code", func(t *testing.T) {
		t.Parallel()

		svc := &maya.CacheOTPService{Cache: &mock.Cache{
			GetFn: func(_ context.Context, _ string) ([]byte, error) {
				return []byte("123456"), nil
			},
		}}

		err := svc.VerifyOTP(context.Background(), "priya@example.com", "000000")
		assert.Equal(t, maya.EUNAUTHORIZED, maya.ErrorCode(err))
	})

	t.Run("verify rejects an expired code", func(t *testing.T) {
		t.Parallel()

		svc := &maya.CacheOTPService{Cache: &mock.Cache{
			GetFn: func(_ context.Context, _ string) ([]byte, error) {
				return nil, maya.Errorf(maya.ENOTFOUND, "cache key expired")
			},
		}}

		err := svc.VerifyOTP(context.Background(), "priya@example.com", "123456")
		assert.Equal(t, maya.EUNAUTHORIZED, maya.ErrorCode(err))
	})

	t.Run("issue requires an email", func(t *testing.T) {
		t.Parallel()

		svc := &maya.CacheOTPService{Cache: &mock.Cache{}}
		_, err := svc.IssueOTP(context.Background(), "")
		assert.Equal(t, maya.EINVALID, maya.ErrorCode(err))
	})
}
