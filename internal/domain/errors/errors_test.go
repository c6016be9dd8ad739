package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorIsInvalid(t *testing.T) {
	var ve ValidationError
	assert.False(t, ve.HasAny())

	ve.Add("content.root", "must not be empty")
	ve.Add("", "bare message")

	assert.True(t, ve.HasAny())
	assert.True(t, errors.Is(ve, ErrInvalid))
	assert.Contains(t, ve.Error(), " - content.root: must not be empty\n")
	assert.Contains(t, ve.Error(), " - bare message\n")
}

func TestExitCode(t *testing.T) {
	var ve ValidationError
	ve.Add("home.top_tags", "must be positive")

	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 2, ExitCode(fmt.Errorf("load config: %w", ve)))
	assert.Equal(t, 1, ExitCode(fmt.Errorf("run: %w", ErrNoPublished)))
	assert.Equal(t, 1, ExitCode(ErrContentRootMissing))
}
