package app

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dmitrijs2005/sweetshop/internal/client/models"
)

// Criteria is the active client-side filter.
type Criteria struct {
	Term     string
	Category string
}

func (c Criteria) IsZero() bool {
	return c.Term == "" && c.Category == ""
}

// Filter keeps the sweets whose name or description contains term (case
// insensitive) and, when category is set, whose category equals it exactly.
// The input slice is not modified.
func Filter(list []models.Sweet, term, category string) []models.Sweet {
	lower := cases.Lower(language.Und)
	term = lower.String(term)

	out := make([]models.Sweet, 0, len(list))
	for _, s := range list {
		if matchesTerm(lower, s, term) && matchesCategory(s, category) {
			out = append(out, s)
		}
	}
	return out
}

func matchesTerm(lower cases.Caser, s models.Sweet, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(lower.String(s.Name), term) ||
		strings.Contains(lower.String(s.Description), term)
}

func matchesCategory(s models.Sweet, category string) bool {
	return category == "" || s.Category == category
}

// Categories lists the distinct non-empty categories of list, sorted.
func Categories(list []models.Sweet) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, s := range list {
		if s.Category == "" {
			continue
		}
		if _, ok := seen[s.Category]; ok {
			continue
		}
		seen[s.Category] = struct{}{}
		out = append(out, s.Category)
	}
	sort.Strings(out)
	return out
}
