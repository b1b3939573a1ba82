package sortconfig

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithStyle(t *testing.T) {
	req := require.New(t)
	defaults := DefaultConfigs()

	merged, err := WithStyle(defaults, StyleModule)
	req.NoError(err)
	req.Len(merged, len(defaults))
	for key, config := range merged {
		req.Equal(StyleModule, config.Style, "style of %q", key)
		req.Equal(defaults[key].Parser, config.Parser, "parser of %q", key)
	}
	for _, config := range defaults {
		req.Equal(StyleESLint, config.Style, "defaults must not be modified")
	}

	unchanged, err := WithStyle(defaults, "")
	req.NoError(err)
	req.Equal(defaults, unchanged)
}

func TestConfigs_ForExtension(t *testing.T) {
	configs := DefaultConfigs()
	tests := []struct {
		extension  string
		wantParser string
		wantOK     bool
	}{
		{".js", ParserBabylon, true},
		{".jsx", ParserBabylon, true},
		{".mjs", ParserBabylon, true},
		{".ts", ParserTypeScript, true},
		{".tsx", ParserTypeScript, true},
		{".vue", "", false},
		{"", "", false},
		{"js", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.extension, func(t *testing.T) {
			req := require.New(t)
			config, ok := configs.ForExtension(tt.extension)
			req.Equal(tt.wantOK, ok)
			req.Equal(tt.wantParser, config.Parser)
		})
	}
}
