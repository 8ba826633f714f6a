package render

import (
	"fmt"
	"strings"
	"text/template"
	"unicode"
)

// FuncMap returns the helper functions available to every template.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"pascalCase": PascalCase, // user_name → UserName
		"camelCase":  CamelCase,  // user_name → userName
		"snakeCase":  SnakeCase,  // UserName → user_name
		"plural":     Plural,     // category → categories
		"count":      Count,      // 2 "type" → "2 types"

		"quote":     Quote,
		"upper":     strings.ToUpper,
		"lower":     strings.ToLower,
		"trim":      strings.TrimSpace,
		"join":      strings.Join,
		"hasPrefix": strings.HasPrefix,
		"hasSuffix": strings.HasSuffix,
		"replace":   strings.ReplaceAll,
		"comment":   Comment,

		"dict":    Dict,
		"default": Default,
	}
}

var acronyms = map[string]string{
	"id": "ID", "url": "URL", "uri": "URI", "http": "HTTP", "api": "API",
	"uuid": "UUID", "sql": "SQL", "html": "HTML", "json": "JSON", "xml": "XML",
	"db": "DB", "ui": "UI", "ip": "IP", "gen": "GEN",
}

// words splits snake_case, kebab-case, camelCase and PascalCase identifiers.
// A run of capitals followed by a lowercase letter ends one word early, so
// HTTPServer splits into HTTP and Server.
func words(s string) []string {
	var result []string
	var current []rune
	runes := []rune(s)

	flush := func() {
		if len(current) > 0 {
			result = append(result, string(current))
			current = current[:0]
		}
	}

	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == ' ' || r == '.':
			flush()
			continue
		case unicode.IsUpper(r) && i > 0:
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		current = append(current, r)
	}
	flush()
	return result
}

func capitalize(word string) string {
	if acronym, ok := acronyms[strings.ToLower(word)]; ok {
		return acronym
	}
	runes := []rune(strings.ToLower(word))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// PascalCase converts an identifier to PascalCase with common acronyms
// upper-cased: user_id → UserID.
func PascalCase(s string) string {
	var b strings.Builder
	for _, w := range words(s) {
		b.WriteString(capitalize(w))
	}
	return b.String()
}

// CamelCase converts an identifier to camelCase: user_name → userName.
func CamelCase(s string) string {
	parts := words(s)
	if len(parts) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(strings.ToLower(parts[0]))
	for _, w := range parts[1:] {
		b.WriteString(capitalize(w))
	}
	return b.String()
}

// SnakeCase converts an identifier to snake_case: HTTPServer → http_server.
func SnakeCase(s string) string {
	parts := words(s)
	for i, w := range parts {
		parts[i] = strings.ToLower(w)
	}
	return strings.Join(parts, "_")
}

// Quote wraps a string in double quotes, escaping as Go source.
func Quote(s string) string {
	return fmt.Sprintf("%q", s)
}

// Comment prefixes every line of s with "// ".
func Comment(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return "// " + strings.ReplaceAll(s, "\n", "\n// ")
}

// Dict creates a map from alternating key-value pairs
// Usage in template: {{ template "partial" (dict "key1" val1 "key2" val2) }}
func Dict(values ...any) (map[string]any, error) {
	if len(values)%2 != 0 {
		return nil, fmt.Errorf("dict requires an even number of arguments")
	}

	result := make(map[string]any, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		key, ok := values[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict keys must be strings, got %T at position %d", values[i], i)
		}
		result[key] = values[i+1]
	}
	return result, nil
}

// Default returns defaultVal when val is nil or an empty string.
func Default(defaultVal, val any) any {
	if val == nil {
		return defaultVal
	}
	if s, ok := val.(string); ok && s == "" {
		return defaultVal
	}
	return val
}
