package planner

import "strings"

// SplitAndTrim splits a comma-separated list and trims each token.
//
// Empty input yields no tokens. Tokens that are empty after trimming are
// kept, so "Engineer," yields ["Engineer", ""].
func SplitAndTrim(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
