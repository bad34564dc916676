// Package textutil normaliza texto para búsquedas insensibles a mayúsculas
// y acentos ("Camión" y "camion" deben coincidir en el buscador del POS).
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldChain descompone (NFD), elimina marcas diacríticas y recompone (NFC).
var foldChain = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold devuelve s en minúsculas y sin diacríticos.
// Si la transformación falla (entrada no UTF-8 válida), cae a minúsculas simples.
func Fold(s string) string {
	out, _, err := transform.String(foldChain, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}

// ContainsFold reporta si needle aparece dentro de haystack ignorando
// mayúsculas y acentos. Needle vacío siempre coincide.
func ContainsFold(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), Fold(needle))
}
