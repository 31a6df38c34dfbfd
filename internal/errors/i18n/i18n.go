// Package i18n formats user-facing error messages per locale.
package i18n

import (
	"strings"
	"text/template"
)

// Catalog holds the localized message templates for one locale.
type Catalog struct {
	locale   string
	messages map[string]string
}

// Locale returns the catalog locale identifier.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the message template for the given code with metadata.
// Unknown codes fall back to the raw code string so callers always get
// something actionable.
func (c *Catalog) Format(code string, metadata map[string]string) string {
	message, ok := c.messages[code]
	if !ok {
		return code
	}
	if len(metadata) == 0 || !strings.Contains(message, "{{") {
		return message
	}

	tmpl, err := template.New(code).Parse(message)
	if err != nil {
		return message
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, metadata); err != nil {
		return message
	}
	return sb.String()
}

// GetCatalog returns the catalog for a locale, defaulting to en-US.
func GetCatalog(locale string) *Catalog {
	switch strings.ToLower(locale) {
	case "en-us", "en", "":
		return enUSCatalog
	default:
		return enUSCatalog
	}
}
