package host

import (
	"path/filepath"
	"strings"
)

// languageIDs maps file extensions to editor language identifiers
var languageIDs = map[string]string{
	".js":  "javascript",
	".mjs": "javascript",
	".cjs": "javascript",
	".es6": "javascript",
	".es":  "javascript",
	".jsx": "javascriptreact",
	".ts":  "typescript",
	".mts": "typescript",
	".cts": "typescript",
	".tsx": "typescriptreact",
	".vue": "vue",
}

// LanguageIDForPath returns the language identifier an editor would assign to path,
// or "plaintext" for unknown extensions
func LanguageIDForPath(path string) string {
	if id, ok := languageIDs[strings.ToLower(filepath.Ext(path))]; ok {
		return id
	}
	return "plaintext"
}
