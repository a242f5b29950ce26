// Package language canonicalise la langue cible de la transcription et
// construit l'instruction fixe envoyée au provider pour chaque chunk.
package language

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Target est une langue cible validée.
type Target struct {
	Tag  language.Tag
	Name string // nom anglais affichable, ex: "French"
}

// Parse valide un tag BCP-47 ("en", "fr", "pt-BR", ...) et résout son nom
// anglais. Entrée vide ou invalide -> erreur (la langue cible est requise
// pour formuler l'instruction au provider).
func Parse(code string) (Target, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return Target{}, fmt.Errorf("langue cible vide")
	}
	tag, err := language.Parse(code)
	if err != nil {
		return Target{}, fmt.Errorf("langue cible invalide %q : %w", code, err)
	}
	name := display.English.Languages().Name(tag)
	if name == "" {
		name = code
	}
	return Target{Tag: tag, Name: name}, nil
}

// Instruction retourne l'instruction fixe de transcription pour la langue
// cible. Même texte pour tous les chunks d'un run : on demande uniquement le
// texte, sans horodatage ni commentaire (les timings viennent du découpage).
func (t Target) Instruction() string {
	return fmt.Sprintf(
		"Transcribe this audio clip in %s. Return only the transcription text, without timestamps or commentary. If there is no speech, return an empty response.",
		t.Name,
	)
}

func (t Target) String() string {
	return fmt.Sprintf("%s (%s)", t.Name, t.Tag)
}
