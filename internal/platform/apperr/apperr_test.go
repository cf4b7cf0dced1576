package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesKindAndBase(t *testing.T) {
	base := New(ErrConflict, "request already assigned")
	derived := Withf(base, "request %s already assigned", "r-1")
	wrapped := fmt.Errorf("accept: %w", derived)

	assert.True(t, errors.Is(wrapped, ErrConflict))
	assert.True(t, errors.Is(wrapped, base))
	assert.False(t, errors.Is(wrapped, ErrForbidden))
	assert.Equal(t, "request r-1 already assigned", Message(wrapped))
}

func TestKindName(t *testing.T) {
	cases := map[string]error{
		"ok":                  nil,
		"forbidden":           New(ErrForbidden, "nope"),
		"invalid_input":       New(ErrInvalidInput, "bad"),
		"conflict":            New(ErrConflict, "dup"),
		"not_found":           New(ErrNotFound, "missing"),
		"precondition_failed": New(ErrPreconditionFailed, "not yet"),
		"error":               errors.New("db down"),
	}
	for want, err := range cases {
		assert.Equal(t, want, KindName(err))
	}
}

func TestMessage_EmptyForPlainErrors(t *testing.T) {
	assert.Equal(t, "", Message(errors.New("boom")))
}
