package pipeline

import "strings"

// IsEligibleLanguage reports whether one of languages is a substring of languageID,
// so "typescript" also admits "typescriptreact"
func IsEligibleLanguage(languageID string, languages []string) bool {
	for _, language := range languages {
		if strings.Contains(languageID, language) {
			return true
		}
	}
	return false
}
