package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	t.Run("wrapped", func(t *testing.T) {
		err := fmt.Errorf("toggle failed: %w", NotFound("shopping list item %d not found", 9))
		assert.Equal(t, KindNotFound, KindOf(err))
		assert.True(t, Is(err, KindNotFound))
	})

	t.Run("plain error", func(t *testing.T) {
		assert.Equal(t, KindUnknown, KindOf(errors.New("boom")))
	})

	t.Run("upstream keeps cause", func(t *testing.T) {
		cause := errors.New("quota exhausted")
		err := Upstream("AI service error", cause)
		assert.Equal(t, "AI service error: quota exhausted", err.Error())
		assert.ErrorIs(t, err, cause)
	})
}

func TestLimitExceededMessage(t *testing.T) {
	err := LimitExceeded("Weekly alcohol limit reached (%d drinks max)", 3)
	assert.Equal(t, "Weekly alcohol limit reached (3 drinks max)", err.Error())
	assert.Equal(t, "limit_exceeded", KindOf(err).String())
}
