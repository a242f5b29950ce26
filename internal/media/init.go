package media

import (
	"context"
	"fmt"
	"time"

	"github.com/11g01027-creator/AIVideoSubtitleGenerator/internal/config"
)

const defaultVersionTimeout = 5 * time.Second

// InitDecoder initialise le décodeur ffmpeg, vérifie les binaires et
// récupère éventuellement la version. Retourne le décodeur (implémentant
// Interface) et la version ("" si ShowVersion est désactivé).
func InitDecoder(ctx context.Context, cfg *config.Config) (Interface, string, error) {
	dec := NewFFmpeg(
		cfg.FFmpeg.Name,
		cfg.FFmpeg.ResolvedPath,
		cfg.FFmpeg.ProbeName,
		cfg.FFmpeg.ResolvedProbePath,
	)

	// vérifier la présence des binaires
	if err := dec.CheckBinaries(); err != nil {
		return nil, "", fmt.Errorf("ffmpeg/ffprobe introuvable : %w", err)
	}

	if !cfg.FFmpeg.ShowVersion {
		return dec, "", nil
	}

	// récupérer la version (avec timeout)
	vctx, cancel := context.WithTimeout(ctx, defaultVersionTimeout)
	defer cancel()
	version, err := dec.GetVersion(vctx)
	if err != nil {
		return dec, "", fmt.Errorf("échec récupération version ffmpeg : %w", err)
	}

	return dec, version, nil
}
