// Package transcriber orchestre la boucle séquentielle de transcription :
// un chunk à la fois, annulation coopérative aux frontières de chunks,
// estimation du temps restant, accumulation incrémentale du document VTT.
package transcriber

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/11g01027-creator/AIVideoSubtitleGenerator/internal/media"
	"github.com/11g01027-creator/AIVideoSubtitleGenerator/internal/vtt"
	"github.com/11g01027-creator/AIVideoSubtitleGenerator/pkg/model"
)

// Session porte l'état mutable partagé d'une session vidéo : le buffer
// d'échantillons courant, le document de sous-titres en cours d'accumulation
// et l'état du run. Un seul run actif à la fois ; charger un nouveau buffer
// ou appeler Reset pendant un run force d'abord son annulation.
//
// Remplace l'état global du pipeline par un objet explicite passé aux
// composants : pas de couplage caché si l'hôte supporte un jour plusieurs
// sessions.
type Session struct {
	mu sync.Mutex

	buffer *media.SampleBuffer
	doc    vtt.Document

	state       model.RunState
	runID       string
	cancelled   atomic.Bool
	startedAt   time.Time
	currentIdx  int
	totalChunks int

	// horloge injectable pour tester l'estimation du temps restant
	now func() time.Time
}

// NewSession construit une session vide à l'état Idle.
func NewSession() *Session {
	return &Session{
		state: model.StateIdle,
		now:   time.Now,
	}
}

// Load installe le buffer d'un nouveau fichier. Si un run est actif, il est
// d'abord forcé en annulation (le flag sera observé à la prochaine frontière
// de chunk par la boucle concernée). Le document précédent est jeté.
func (s *Session) Load(buf *media.SampleBuffer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == model.StateRunning {
		s.cancelled.Store(true)
	}
	s.buffer = buf
	s.doc.Reset()
	s.state = model.StateIdle
	s.runID = ""
	s.currentIdx = 0
	s.totalChunks = 0
}

// Reset ramène la session à l'état initial : buffer jeté, document vidé,
// run state effacé. Un cycle upload+génération ultérieur se comporte comme
// un premier run.
func (s *Session) Reset() {
	s.Load(nil)
}

// Cancel positionne le flag d'annulation. Coopératif : consulté uniquement
// aux frontières de chunks, l'appel distant en vol n'est pas interrompu.
func (s *Session) Cancel() {
	s.cancelled.Store(true)
}

// State retourne l'état courant du run.
func (s *Session) State() model.RunState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// RunID retourne l'identifiant du run courant (vide à l'état Idle).
func (s *Session) RunID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runID
}

// Buffer retourne le buffer chargé (nil si aucun).
func (s *Session) Buffer() *media.SampleBuffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buffer
}

// Cues retourne une copie des cues accumulées.
func (s *Session) Cues() []vtt.Cue {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Cues()
}

// DocumentText rend le document VTT courant.
func (s *Session) DocumentText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Text()
}

// begin initialise l'état d'un nouveau run. Retourne false si un run est
// déjà actif ou si aucun buffer n'est chargé.
func (s *Session) begin(total int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == model.StateRunning || s.buffer == nil {
		return false
	}
	s.cancelled.Store(false)
	s.doc.Reset()
	s.state = model.StateRunning
	s.runID = uuid.NewString()
	s.startedAt = s.now()
	s.currentIdx = 0
	s.totalChunks = total
	return true
}

// finish clôt le run dans l'état terminal donné.
func (s *Session) finish(state model.RunState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

func (s *Session) appendCue(c vtt.Cue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Append(c)
}

func (s *Session) clearDocument() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Reset()
}

func (s *Session) markChunk(idx int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentIdx = idx
}
