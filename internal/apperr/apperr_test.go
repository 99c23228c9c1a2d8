package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKinds(t *testing.T) {
	notFound := NotFound("book not found")
	invalid := InvalidState("patron not active")
	conflict := Conflict("isbn already exists")

	assert.True(t, errors.Is(notFound, ErrNotFound))
	assert.False(t, errors.Is(notFound, ErrInvalidState))
	assert.True(t, errors.Is(invalid, ErrInvalidState))
	assert.True(t, errors.Is(conflict, ErrConflict))
	assert.Equal(t, "patron not active", invalid.Error())
}

func TestMessage_SurvivesWrapping(t *testing.T) {
	sentinel := InvalidState("loan limit exceeded")
	wrapped := fmt.Errorf("create loan: %w", sentinel)

	msg, ok := Message(wrapped)
	assert.True(t, ok)
	assert.Equal(t, "loan limit exceeded", msg)
	assert.True(t, errors.Is(wrapped, sentinel))
	assert.True(t, errors.Is(wrapped, ErrInvalidState))

	_, ok = Message(errors.New("boom"))
	assert.False(t, ok)
}
