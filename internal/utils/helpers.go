package utils

import (
	"strings"

	"github.com/dustin/go-humanize"
)

// NoSalary marks a language for which no vacancy carried a usable salary.
const NoSalary = "None"

// QueryPrefix is prepended to each language to form the search text.
const QueryPrefix = "Программист "

// BuildQuery returns the search text for a programming language.
func BuildQuery(language string) string {
	return QueryPrefix + strings.TrimSpace(language)
}

// FormatSalary renders an average salary with two decimals and thousands
// separators, or NoSalary when there is none.
func FormatSalary(average *float64) string {
	if average == nil {
		return NoSalary
	}
	return humanize.FormatFloat("#,###.##", *average)
}

// FormatCount renders a vacancy count with thousands separators.
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}

// NormalizeLanguages trims the names, drops empty entries and removes
// case-insensitive duplicates while keeping the first spelling and order.
func NormalizeLanguages(languages []string) []string {
	seen := make(map[string]struct{}, len(languages))
	result := make([]string, 0, len(languages))
	for _, lang := range languages {
		lang = strings.TrimSpace(lang)
		if lang == "" {
			continue
		}
		key := strings.ToLower(lang)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, lang)
	}
	return result
}

// SplitList splits comma separated flag values, so "-l Go,Rust -l Java"
// yields three entries.
func SplitList(values []string) []string {
	var result []string
	for _, v := range values {
		result = append(result, strings.Split(v, ",")...)
	}
	return result
}
