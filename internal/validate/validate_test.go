package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnora/backend/internal/apperr"
)

func TestContainsExternalLinks(t *testing.T) {
	cases := []struct {
		name     string
		text     string
		external bool
	}{
		{"plain text", "just a description", false},
		{"youtube link", "watch https://youtube.com/watch?v=abc", false},
		{"youtube short link", "see https://www.youtube.com/shorts/x", false},
		{"external https", "docs at https://example.com/page", true},
		{"external http", "http://evil.example.com", true},
		{"mixed links", "https://youtube.com/a and https://other.com/b", true},
		{"bare domain without scheme", "visit example.com", false},
		{"empty", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.external, ContainsExternalLinks(tc.text))
		})
	}
}

func TestCheckMaterialContent(t *testing.T) {
	youtube := "https://youtube.com/watch?v=abc"
	vimeo := "https://vimeo.com/123"

	assert.NoError(t, CheckMaterialContent("clean text", &youtube))
	assert.NoError(t, CheckMaterialContent("clean text", nil))

	err := CheckMaterialContent("see https://example.com", &vimeo)
	require.Error(t, err)
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindValidation, e.Kind)
	require.Len(t, e.Fields, 2)
	assert.Equal(t, "description", e.Fields[0].Field)
	assert.Equal(t, "video_url", e.Fields[1].Field)
}
