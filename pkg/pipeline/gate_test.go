package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsEligibleLanguage(t *testing.T) {
	defaults := []string{"javascript", "typescript"}
	tests := []struct {
		name       string
		languageID string
		languages  []string
		want       bool
	}{
		{"javascript", "javascript", defaults, true},
		{"typescript", "typescript", defaults, true},
		{"typescriptreact by substring", "typescriptreact", defaults, true},
		{"javascriptreact by substring", "javascriptreact", defaults, true},
		{"python", "python", defaults, false},
		{"json", "json", defaults, false},
		{"custom list", "vue", []string{"vue"}, true},
		{"empty list admits nothing", "javascript", []string{}, false},
		{"nil list admits nothing", "javascript", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			req.Equal(tt.want, IsEligibleLanguage(tt.languageID, tt.languages), "IsEligibleLanguage(%q, %v)", tt.languageID, tt.languages)
		})
	}
}
