package ui

import (
	"context"

	"github.com/11g01027-creator/AIVideoSubtitleGenerator/internal/vtt"
)

type Interface interface {
	// GetInputPath doit renvoyer un chemin de fichier existant.
	// Implémentation terminale : prompt en boucle jusqu'à un chemin valide.
	GetInputPath(ctx context.Context) (string, error)

	PrintInfo(ctx context.Context, s string)
	PrintError(ctx context.Context, s string)

	// Progression de la boucle de chunks. StartProgress ouvre la barre,
	// UpdateProgress est appelé à chaque frontière de chunk,
	// FinishProgress la referme (toujours appelé, même sur run écourté).
	StartProgress(totalChunks int, label string)
	UpdateProgress(chunkIndex, totalChunks int, remaining string)
	FinishProgress()

	// PrintCueSummary affiche le tableau récapitulatif des cues produites.
	PrintCueSummary(ctx context.Context, cues []vtt.Cue)
}
