package main

import "strings"

// argumentPlaceholders returns the <ARG> placeholders of a Cobra "Use" line.
func argumentPlaceholders(use string) []string {
	var placeholders []string
	for _, field := range strings.Fields(use) {
		if strings.HasPrefix(field, "<") && strings.HasSuffix(field, ">") {
			placeholders = append(placeholders, field)
		}
	}
	return placeholders
}
