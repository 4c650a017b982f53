package slug

import (
	"regexp"
	"strings"
)

var slugRegexp = regexp.MustCompile(`[^a-z0-9]+`)

// maxSlugLength caps generated slugs so they stay usable as document IDs.
const maxSlugLength = 60

// Generate creates a URL-friendly slug from the given title.
// Document IDs across the platform are derived from the English title,
// but common accented Latin characters are transliterated so that titles
// like "Piña Colada" or "Crème de Menthe" still produce clean IDs.
//
// Examples:
//   - "Piña Colada" → "pina-colada"
//   - "Whisky Sour!" → "whisky-sour"
//   - "Crème de Menthe   Frappé" → "creme-de-menthe-frappe"
func Generate(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))

	// Transliterate common accented characters to ASCII.
	replacer := strings.NewReplacer(
		"á", "a", "à", "a", "â", "a", "ä", "a", "ã", "a", "å", "a",
		"é", "e", "è", "e", "ê", "e", "ë", "e",
		"í", "i", "ì", "i", "î", "i", "ï", "i",
		"ó", "o", "ò", "o", "ô", "o", "ö", "o", "õ", "o",
		"ú", "u", "ù", "u", "û", "u", "ü", "u",
		"ñ", "n", "ç", "c",
	)
	slug = replacer.Replace(slug)

	// Replace any non-alphanumeric characters with hyphens.
	slug = slugRegexp.ReplaceAllString(slug, "-")

	// Trim leading and trailing hyphens.
	slug = strings.Trim(slug, "-")

	// Collapse consecutive hyphens into single hyphens.
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}

	if len(slug) > maxSlugLength {
		slug = strings.Trim(slug[:maxSlugLength], "-")
	}

	return slug
}
