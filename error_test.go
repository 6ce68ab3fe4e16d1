package maya_test

import (
	"fmt"
	"testing"

	"github.com/rathodv/maya"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := maya.Errorf(maya.ENOTFOUND, "reminder %q not found", "test")

	assert.Equal(t, maya.ENOTFOUND, maya.ErrorCode(err))
	assert.Equal(t, "reminder \"test\" not found", maya.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, maya.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, maya.EINTERNAL, maya.ErrorCode(fmt.Errorf("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, maya.ErrorMessage(nil))
}

func TestErrorMessage_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("outer: %w", maya.Errorf(maya.EINVALID, "bad input"))

	assert.Equal(t, maya.EINVALID, maya.ErrorCode(err))
	assert.Equal(t, "bad input", maya.ErrorMessage(err))
}
