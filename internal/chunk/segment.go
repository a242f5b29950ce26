// Package chunk implémente le découpage de la timeline audio en fenêtres
// fixes. Le découpage est purement arithmétique : aucune I/O, aucune
// dépendance sur le contenu audio.
package chunk

import (
	"math"

	"github.com/11g01027-creator/AIVideoSubtitleGenerator/pkg/model"
)

// DefaultWindowSeconds est la taille de fenêtre par défaut.
// 30s reste sous les limites de payload du provider tout en gardant un
// nombre d'appels distants raisonnable.
const DefaultWindowSeconds = 30.0

// Segment partitionne [0, durationSeconds] en fenêtres consécutives de
// windowSeconds. Garanties :
//   - les fenêtres sont contiguës et sans chevauchement ;
//   - la première commence à 0, la dernière finit exactement à durationSeconds ;
//   - le nombre de fenêtres est ceil(duration/window) (0 si duration == 0) ;
//   - la dernière fenêtre ne dépasse jamais windowSeconds et n'est jamais
//     de longueur nulle quand duration > 0.
//
// windowSeconds <= 0 retombe sur DefaultWindowSeconds.
func Segment(durationSeconds, windowSeconds float64) []model.ChunkRange {
	if windowSeconds <= 0 {
		windowSeconds = DefaultWindowSeconds
	}
	if durationSeconds <= 0 || math.IsNaN(durationSeconds) || math.IsInf(durationSeconds, 0) {
		return nil
	}

	count := int(math.Ceil(durationSeconds / windowSeconds))
	ranges := make([]model.ChunkRange, 0, count)
	for i := 0; i < count; i++ {
		start := float64(i) * windowSeconds
		end := start + windowSeconds
		if i == count-1 {
			// la dernière fenêtre est bornée par la durée réelle
			end = durationSeconds
		}
		ranges = append(ranges, model.ChunkRange{
			Index:        i + 1,
			StartSeconds: start,
			EndSeconds:   end,
		})
	}
	return ranges
}
