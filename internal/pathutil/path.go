// Package pathutil provides path template helpers and output path sanitizing.
package pathutil

import (
	"fmt"
	"regexp"
	"strings"
)

// PathParamRegex matches path template placeholders like {id}.
// It captures the placeholder name inside the braces.
var PathParamRegex = regexp.MustCompile(`\{([^{}]+)\}`)

// Placeholders returns the placeholder names of a path template in order of
// first appearance, without duplicates.
// e.g., "/users/{id}/logs/{logId}" -> ["id", "logId"]
func Placeholders(template string) []string {
	matches := PathParamRegex.FindAllStringSubmatch(template, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(matches))
	names := make([]string, 0, len(matches))
	for _, match := range matches {
		name := match[1]
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// CheckTemplate validates that a path template is well-formed.
// Returns an error for unbalanced or nested braces, empty or blank
// placeholder names, and placeholders that appear more than once.
func CheckTemplate(template string) error {
	if strings.Contains(template, "{}") {
		return fmt.Errorf("empty placeholder name in path template")
	}

	openCount := 0
	for i, ch := range template {
		switch ch {
		case '{':
			openCount++
			if openCount > 1 {
				return fmt.Errorf("nested braces are not allowed at position %d", i)
			}
		case '}':
			openCount--
			if openCount < 0 {
				return fmt.Errorf("unexpected closing brace at position %d", i)
			}
		}
	}
	if openCount != 0 {
		return fmt.Errorf("unclosed brace in path template")
	}

	seen := make(map[string]bool)
	for _, match := range PathParamRegex.FindAllStringSubmatch(template, -1) {
		name := match[1]
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("empty placeholder name in path template")
		}
		if seen[name] {
			return fmt.Errorf("duplicate placeholder '%s' in path template", name)
		}
		seen[name] = true
	}
	return nil
}
