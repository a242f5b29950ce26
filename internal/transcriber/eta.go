package transcriber

import (
	"fmt"
	"math"
	"time"
)

// NoEstimate est affiché quand aucune estimation n'est disponible
// (premier chunk, valeur non finie ou négative).
const NoEstimate = "--:--"

// EstimateRemainingSeconds calcule le temps restant estimé à la frontière du
// chunk courant (1-indexé) : moyenne par chunk sur les chunks déjà traités,
// multipliée par le nombre de chunks restants. Pas d'estimation possible
// avant d'avoir terminé au moins un chunk (NaN).
func EstimateRemainingSeconds(elapsedSeconds float64, currentChunk, totalChunks int) float64 {
	done := currentChunk - 1
	if done < 1 {
		return math.NaN()
	}
	avgPerChunk := elapsedSeconds / float64(done)
	remainingChunks := totalChunks - done
	return avgPerChunk * float64(remainingChunks)
}

// FormatRemainingTime formate une durée en secondes en "MM:SS".
// Valeurs non finies ou négatives -> NoEstimate.
func FormatRemainingTime(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return NoEstimate
	}
	total := int(math.Round(seconds))
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// FormatElapsed formate une durée écoulée en "MM:SS" pour l'affichage final.
func FormatElapsed(d time.Duration) string {
	return FormatRemainingTime(d.Seconds())
}
