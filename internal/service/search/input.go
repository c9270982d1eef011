package search

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/myenglish-phonetics/internal/domain"
)

// validateWord checks a query word.
func validateWord(word string) error {
	if strings.TrimSpace(word) == "" {
		return domain.NewValidationError("word", "required")
	}
	return nil
}

// validatePattern checks a user pattern against the configured limits.
func (s *Service) validatePattern(pattern string) error {
	if strings.TrimSpace(pattern) == "" {
		return domain.NewValidationError("pattern", "required")
	}
	if limit := s.opts.MaxPatternLength; limit > 0 && utf8.RuneCountInString(pattern) > limit {
		return domain.NewValidationError("pattern", fmt.Sprintf("max %d characters", limit))
	}
	return nil
}
