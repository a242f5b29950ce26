package model

import "fmt"

// ChunkRange décrit une fenêtre temporelle de la timeline audio.
// Immutable une fois produite par le segmenteur : la séquence complète pour
// une durée D et une fenêtre W est contiguë, sans chevauchement, et couvre
// exactement [0, D].
type ChunkRange struct {
	Index        int     // 1-indexé, ordre de traitement
	StartSeconds float64 // inclus
	EndSeconds   float64 // exclus (sauf dernier chunk : == durée totale)
}

// DurationSeconds retourne la longueur de la fenêtre en secondes.
func (r ChunkRange) DurationSeconds() float64 {
	return r.EndSeconds - r.StartSeconds
}

// String implémente fmt.Stringer, utile pour les logs et messages de statut.
func (r ChunkRange) String() string {
	return fmt.Sprintf("chunk %d [%.2fs - %.2fs]", r.Index, r.StartSeconds, r.EndSeconds)
}

// TranscriptionResult associe le texte retourné par le provider à sa fenêtre.
// Un texte vide signifie "aucun sous-titre émis pour cet intervalle",
// ce n'est pas une erreur.
type TranscriptionResult struct {
	Chunk ChunkRange
	Text  string
}

// IsEmpty indique si le provider n'a rien produit pour cette fenêtre.
func (t TranscriptionResult) IsEmpty() bool {
	return t.Text == ""
}

// RunState est l'état du cycle de vie d'une génération.
// Machine : Idle -> Running -> {Completed, Cancelled, Failed}.
type RunState string

const (
	StateIdle      RunState = "idle"
	StateRunning   RunState = "running"
	StateCompleted RunState = "completed"
	StateCancelled RunState = "cancelled"
	StateFailed    RunState = "failed"
)

// IsTerminal indique si l'état clôt la génération en cours.
func (s RunState) IsTerminal() bool {
	return s == StateCompleted || s == StateCancelled || s == StateFailed
}

func (s RunState) String() string {
	return string(s)
}
