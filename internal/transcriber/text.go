package transcriber

import "strings"

// NormalizeText prépare le texte retourné par le provider pour une cue :
// retours à la ligne internes réduits à des espaces, espaces multiples
// fusionnés, trim des extrémités. Retourne "" si rien d'utilisable.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
