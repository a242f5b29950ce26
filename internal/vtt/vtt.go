// Package vtt assemble le document de sous-titres au format WebVTT.
// Artefact à sens unique : on produit le texte, on ne le reparse jamais.
package vtt

import (
	"fmt"
	"math"
	"strings"
)

// Header est la ligne d'en-tête obligatoire du format.
const Header = "WEBVTT"

// Extension du fichier artefact.
const Extension = ".vtt"

// Cue est un bloc horodaté du document. Les cues sont strictement ordonnées
// par temps de début et sans chevauchement (garanti en amont par la
// disjonction des fenêtres de chunks).
type Cue struct {
	StartSeconds float64
	EndSeconds   float64
	Text         string
}

// Document accumule les cues pendant l'orchestration. Construit
// incrémentalement, figé une fois la génération terminée ou annulée.
type Document struct {
	cues []Cue
}

// Append ajoute une cue en fin de document (l'ordre d'arrivée est l'ordre
// temporel puisque les chunks sont traités séquentiellement).
func (d *Document) Append(c Cue) {
	d.cues = append(d.cues, c)
}

// Cues retourne une copie du contenu courant.
func (d *Document) Cues() []Cue {
	out := make([]Cue, len(d.cues))
	copy(out, d.cues)
	return out
}

// Len retourne le nombre de cues accumulées.
func (d *Document) Len() int {
	return len(d.cues)
}

// Reset vide le document (nouvelle génération ou reset de session).
func (d *Document) Reset() {
	d.cues = nil
}

// Text rend le document complet : ligne d'en-tête puis, pour chaque cue, une
// ligne d'horodatage `HH:MM:SS.mmm --> HH:MM:SS.mmm` et son texte, blocs
// séparés par des lignes vides.
func (d *Document) Text() string {
	var b strings.Builder
	b.WriteString(Header)
	b.WriteString("\n\n")
	for _, c := range d.cues {
		b.WriteString(FormatTimestamp(c.StartSeconds))
		b.WriteString(" --> ")
		b.WriteString(FormatTimestamp(c.EndSeconds))
		b.WriteString("\n")
		b.WriteString(c.Text)
		b.WriteString("\n\n")
	}
	return b.String()
}

// FormatTimestamp formate un temps (secondes depuis l'origine zéro) en
// "HH:MM:SS.mmm" : champs zéro-paddés, exactement 3 décimales.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		seconds = 0
	}
	totalMs := int64(math.Round(seconds * 1000))
	h := totalMs / 3_600_000
	m := (totalMs % 3_600_000) / 60_000
	s := (totalMs % 60_000) / 1000
	ms := totalMs % 1000
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}
