package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserValidator_ValidateUsername(t *testing.T) {
	uv := NewUserValidator()

	for _, input := range []string{"alice", "Alice", "  alice ", "a b"} {
		assert.NoError(t, uv.ValidateUsername(input), "input %q", input)
	}

	for _, input := range []string{"", "   ", "\t\n"} {
		err := uv.ValidateUsername(input)
		require.Error(t, err)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.True(t, ve.HasFieldError(FieldUsername, ErrorTypeRequired))
	}
}
