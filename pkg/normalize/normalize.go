// Package normalize pliega texto para búsquedas por nombre: sin acentos y en
// minúsculas, para que "Açúcar" y "azucar" coincidan en el catálogo.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldChain = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold elimina marcas diacríticas y pasa a minúsculas. Si la transformación
// falla (entrada no UTF-8 válida), devuelve la entrada en minúsculas tal cual.
func Fold(s string) string {
	out, _, err := transform.String(foldChain, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}
