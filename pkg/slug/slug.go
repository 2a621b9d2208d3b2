// Package slug normaliza textos con acentos a identificadores seguros
// (nombres de archivo, códigos de búsqueda).
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// removeAccents descompone (NFD), elimina marcas diacríticas y recompone (NFC).
var removeAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Make convierte "Artículos de Aseo Nº2" en "articulos-de-aseo-n2".
func Make(s string) string {
	out, _, err := transform.String(removeAccents, s)
	if err != nil {
		out = s
	}
	out = strings.ToLower(out)
	out = nonSlug.ReplaceAllString(out, "-")
	return strings.Trim(out, "-")
}
