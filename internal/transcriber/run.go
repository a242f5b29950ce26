package transcriber

import (
	"context"
	"fmt"
	"time"

	"github.com/11g01027-creator/AIVideoSubtitleGenerator/internal/provider"
	"github.com/11g01027-creator/AIVideoSubtitleGenerator/internal/vtt"
	"github.com/11g01027-creator/AIVideoSubtitleGenerator/internal/wav"
	"github.com/11g01027-creator/AIVideoSubtitleGenerator/pkg/model"
)

// Progress est le rapport émis à chaque frontière de chunk, avant le
// traitement du chunk concerné.
type Progress struct {
	RunID       string
	ChunkIndex  int    // 1-indexé
	TotalChunks int
	Remaining   string // "MM:SS", ou NoEstimate pour le premier chunk
}

// Reporter reçoit les rapports de progression (implémenté par l'UI).
type Reporter interface {
	Progress(p Progress)
}

// ReporterFunc adapte une fonction en Reporter.
type ReporterFunc func(p Progress)

func (f ReporterFunc) Progress(p Progress) { f(p) }

// Outcome est le résultat terminal d'un run.
//
// Politique d'échec distant : le document partiel n'est PAS exposé (un
// document tronqué serait indistinguable d'un document complet pour
// l'appelant). À l'annulation, en revanche, les cues déjà accumulées sont
// conservées et exposées.
type Outcome struct {
	RunID        string
	State        model.RunState
	Cues         []vtt.Cue
	DocumentText string // rendu VTT figé à la clôture ("" si Failed)
	NoCaptions   bool   // run terminé mais zéro cue utilisable
	Elapsed      time.Duration
	Err          error // renseigné uniquement pour Failed
}

// Run exécute la boucle séquentielle de transcription sur les fenêtres
// données : pour chaque chunk, contrôle d'annulation, rapport de
// progression, encodage WAV+base64, appel distant, accumulation de la cue.
// Strictement séquentiel : aucun chunk en vol simultanément, l'ordre des
// cues découle de l'ordre de traitement.
func (s *Session) Run(ctx context.Context, p provider.Interface, ranges []model.ChunkRange, instruction string, rep Reporter) Outcome {
	if !s.begin(len(ranges)) {
		return Outcome{
			State: model.StateFailed,
			Err:   fmt.Errorf("run impossible : session occupée ou aucun audio chargé"),
		}
	}
	runID := s.RunID()
	start := s.now()

	for i, r := range ranges {
		idx := i + 1

		// annulation coopérative : consultée uniquement ici, jamais en
		// plein appel distant
		if s.cancelled.Load() {
			s.finish(model.StateCancelled)
			return s.outcome(runID, model.StateCancelled, start, nil)
		}

		if rep != nil {
			elapsed := s.now().Sub(start).Seconds()
			rep.Progress(Progress{
				RunID:       runID,
				ChunkIndex:  idx,
				TotalChunks: len(ranges),
				Remaining:   FormatRemainingTime(EstimateRemainingSeconds(elapsed, idx, len(ranges))),
			})
		}

		payload := wav.EncodeChunk(s.Buffer(), r)
		text, err := p.Transcribe(ctx, payload.EncodedBytes, payload.MimeType, instruction)
		if err != nil {
			// échec distant : abandon immédiat, pas de retry par chunk,
			// et le document partiel du run est jeté
			s.clearDocument()
			s.finish(model.StateFailed)
			return s.outcome(runID, model.StateFailed, start,
				fmt.Errorf("transcription du chunk %d/%d : %w", idx, len(ranges), err))
		}

		res := model.TranscriptionResult{Chunk: r, Text: NormalizeText(text)}
		if !res.IsEmpty() {
			s.appendCue(vtt.Cue{
				StartSeconds: res.Chunk.StartSeconds,
				EndSeconds:   res.Chunk.EndSeconds,
				Text:         res.Text,
			})
		}
		s.markChunk(idx)
	}

	s.finish(model.StateCompleted)
	return s.outcome(runID, model.StateCompleted, start, nil)
}

// outcome fige le résultat terminal à partir de l'état de session.
func (s *Session) outcome(runID string, state model.RunState, start time.Time, err error) Outcome {
	out := Outcome{
		RunID:   runID,
		State:   state,
		Elapsed: s.now().Sub(start),
		Err:     err,
	}
	if state != model.StateFailed {
		out.Cues = s.Cues()
		out.DocumentText = s.DocumentText()
		out.NoCaptions = len(out.Cues) == 0
	}
	return out
}
