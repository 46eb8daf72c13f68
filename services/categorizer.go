package services

import (
	"strings"

	"github.com/campus-watch/api-go/models"
)

// Keyword sets per category, checked in priority order. First match wins.
var (
	theftKeywords      = []string{"stolen", "robbery", "theft"}
	assaultKeywords    = []string{"assault", "attack", "violence"}
	suspiciousKeywords = []string{"suspicious", "strange", "unknown person"}
)

// Categorize maps a free-text incident description to a category by
// case-insensitive substring match, in fixed priority order:
// Theft, then Assault, then Suspicious Activity, else Other.
// It is pure: identical input always yields the same category.
func Categorize(description string) models.Category {
	lower := strings.ToLower(description)

	if containsAny(lower, theftKeywords) {
		return models.CategoryTheft
	}
	if containsAny(lower, assaultKeywords) {
		return models.CategoryAssault
	}
	if containsAny(lower, suspiciousKeywords) {
		return models.CategorySuspicious
	}
	return models.CategoryOther
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
