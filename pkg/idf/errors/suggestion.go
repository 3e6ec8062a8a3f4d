package errors

import (
	"fmt"
	"strings"
)

// SuggestKeyword suggests the closest allowed keyword when a field holds an
// unknown value. It uses Levenshtein distance to find similar keywords.
func SuggestKeyword(unknown string, allowed []string) string {
	if len(allowed) == 0 {
		return ""
	}

	// Find the closest match
	minDistance := 1000
	var bestMatch string

	for _, keyword := range allowed {
		dist := levenshteinDistance(unknown, keyword)
		if dist < minDistance {
			minDistance = dist
			bestMatch = keyword
		}
	}

	// Only suggest if the distance is small relative to the keyword
	if unknown != "" && minDistance <= len(bestMatch)/2 {
		return fmt.Sprintf("Did you mean '%s'?", bestMatch)
	}

	return fmt.Sprintf("Valid values: %s", strings.Join(allowed, ", "))
}

// SuggestSection suggests a section keyword when a line starting with '.'
// does not match the expected section.
func SuggestSection(found, expected string) string {
	found = strings.TrimPrefix(found, ".")
	if found == "" {
		return fmt.Sprintf("Add a '.%s' section", expected)
	}
	if levenshteinDistance(found, expected) <= len(expected)/3 {
		return fmt.Sprintf("Did you mean '.%s'?", expected)
	}
	return fmt.Sprintf("Sections must appear in IDF order; expected '.%s' here", expected)
}

// SuggestMissingReference suggests the closest defined name for an
// unresolved package or board reference.
func SuggestMissingReference(missing string, defined []string) string {
	minDistance := 1000
	var bestMatch string

	for _, name := range defined {
		dist := levenshteinDistance(missing, name)
		if dist < minDistance {
			minDistance = dist
			bestMatch = name
		}
	}

	if bestMatch != "" && minDistance <= 2 {
		return fmt.Sprintf("Did you mean '%s'?", bestMatch)
	}
	return ""
}

// levenshteinDistance computes the Levenshtein distance between two strings.
// This is used for finding similar keywords and names for suggestions.
func levenshteinDistance(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}

	len1 := len(s1)
	len2 := len(s2)

	// Create distance matrix
	matrix := make([][]int, len1+1)
	for i := range matrix {
		matrix[i] = make([]int, len2+1)
	}

	// Initialize first column and row
	for i := 0; i <= len1; i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len2; j++ {
		matrix[0][j] = j
	}

	// Compute distances
	for i := 1; i <= len1; i++ {
		for j := 1; j <= len2; j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}

			matrix[i][j] = min3(
				matrix[i-1][j]+1,      // Deletion
				matrix[i][j-1]+1,      // Insertion
				matrix[i-1][j-1]+cost, // Substitution
			)
		}
	}

	return matrix[len1][len2]
}

// min3 returns the minimum of three integers.
func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
