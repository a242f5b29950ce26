package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/11g01027-creator/AIVideoSubtitleGenerator/internal/app"
	"github.com/11g01027-creator/AIVideoSubtitleGenerator/internal/assets"
	"github.com/11g01027-creator/AIVideoSubtitleGenerator/internal/bootstrap"
	"github.com/11g01027-creator/AIVideoSubtitleGenerator/internal/config"
	"github.com/11g01027-creator/AIVideoSubtitleGenerator/internal/ui"
)

func main() {
	flags := parseFlags()

	// déterminer exePath/binDir
	binDir := "."
	exePath, err := os.Executable()
	if err != nil {
		log.Printf("impossible de déterminer le chemin de l'executable: %v", err)
	} else {
		binDir = filepath.Dir(exePath)
		fmt.Printf("Lancement depuis: %s\n", exePath)
	}

	// emplacement config par défaut
	if flags.ConfigPath == "subgen.yaml" || flags.ConfigPath == "" {
		flags.ConfigPath = filepath.Join(binDir, "subgen.yaml")
	}

	// s'assurer que le fichier config existe, si non on le crée
	if err := bootstrap.EnsureConfigPresent(
		flags.ConfigPath,
		assets.Embedded,
		assets.DefaultConfigAsset,
	); err != nil {
		log.Printf("erreur: EnsureConfigPresent: %v", err)
	}

	// charger la config depuis flags.ConfigPath (qui pointe vers binDir/subgen.yaml si par défaut)
	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	// Pas de signal.NotifyContext ici : l'app câble elle-même SIGINT sur
	// l'annulation coopérative du run (voir app.runWithSignals), un contexte
	// annulé au premier Ctrl+C transformerait toute interruption en échec.
	ctx := context.Background()

	tui := ui.NewTerminal()
	a := app.New(cfg, tui, flags)
	if err := a.Run(ctx); err != nil {
		log.Fatalf("app run: %v", err)
	}
}

func parseFlags() *app.CLIFlags {
	f := &app.CLIFlags{}
	flag.StringVar(&f.ConfigPath, "config", "subgen.yaml", "path to config file")
	flag.StringVar(&f.InputPath, "input", "", "chemin du fichier vidéo ou audio à transcrire")
	flag.StringVar(&f.Language, "lang", "", "langue cible des sous-titres (tag BCP-47, ex: en, fr)")
	flag.Float64Var(&f.WindowSeconds, "window", 0, "taille des fenêtres de transcription en secondes")
	flag.StringVar(&f.OutputDir, "output", "", "répertoire de sortie des fichiers .vtt")
	flag.StringVar(&f.FFmpegPath, "ffmpeg-path", "", "chemin absolu vers ffmpeg (ffprobe supposé à côté)")
	flag.Parse()
	return f
}
