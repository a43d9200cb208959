package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTypeHint(t *testing.T) {
	for _, s := range []string{"", "text", "image", "table"} {
		h, err := ParseTypeHint(s)
		require.NoError(t, err)
		assert.Equal(t, TypeHint(s), h)
	}

	_, err := ParseTypeHint("video")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "video")
}
