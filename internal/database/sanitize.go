package database

import "strings"

// QuoteIdent double-quotes an identifier for interpolation into SQL.
// AAD table and column names contain spaces and parentheses, so every
// identifier goes through here. Embedded quotes are doubled.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// SanitizeFileName maps a table name to a filesystem-safe token.
// - Replaces invalid characters with underscores
// - Returns "unnamed" for empty names
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "unnamed"
	}

	result := make([]rune, 0, len(name))
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' {
			result = append(result, r)
		} else {
			result = append(result, '_')
		}
	}

	return string(result)
}
