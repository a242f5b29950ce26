package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/11g01027-creator/AIVideoSubtitleGenerator/internal/chunk"
	"github.com/11g01027-creator/AIVideoSubtitleGenerator/internal/clipboard"
	"github.com/11g01027-creator/AIVideoSubtitleGenerator/internal/config"
	"github.com/11g01027-creator/AIVideoSubtitleGenerator/internal/fsutil"
	"github.com/11g01027-creator/AIVideoSubtitleGenerator/internal/language"
	"github.com/11g01027-creator/AIVideoSubtitleGenerator/internal/media"
	"github.com/11g01027-creator/AIVideoSubtitleGenerator/internal/provider"
	"github.com/11g01027-creator/AIVideoSubtitleGenerator/internal/transcriber"
	"github.com/11g01027-creator/AIVideoSubtitleGenerator/internal/ui"
	"github.com/11g01027-creator/AIVideoSubtitleGenerator/internal/vtt"
	"github.com/11g01027-creator/AIVideoSubtitleGenerator/pkg/model"
)

// CLIFlags contient les information venant des flags de l'app
type CLIFlags struct {
	ConfigPath    string
	InputPath     string
	Language      string
	WindowSeconds float64
	OutputDir     string
	FFmpegPath    string
}

// App orchestre les différentes dépendances (UI, décodeur, provider, session).
type App struct {
	cfg     *config.Config
	ui      ui.Interface
	flags   *CLIFlags
	decoder media.Interface    // **présent** : décodeur initialisé dans Run
	remote  provider.Interface // provider distant initialisé dans Run
	session *transcriber.Session
}

// New construit l'application en initialisant les dépendances par défaut.
// Pour les tests, on préférera construire App en injectant des implémentations mock.
func New(cfg *config.Config, uiClient ui.Interface, flags *CLIFlags) *App {
	return &App{
		cfg:     cfg,
		ui:      uiClient,
		flags:   flags,
		session: transcriber.NewSession(),
	}
}

// Run exécute le flux principal : résolution du fichier d'entrée, décodage,
// découpage en fenêtres, boucle de transcription, écriture du fichier .vtt.
func (a *App) Run(ctx context.Context) error {
	a.applyFlagOverrides()

	// Récupération du fichier d'entrée : priorité flag > prompt
	input := a.flags.InputPath
	if input == "" {
		p, err := a.ui.GetInputPath(ctx)
		if err != nil {
			return fmt.Errorf("get input path: %w", err)
		}
		input = p
	}

	// langue cible -> instruction fixe du run
	target, err := language.Parse(a.cfg.Language)
	if err != nil {
		return fmt.Errorf("langue: %w", err)
	}

	// validations statiques avant de toucher aux binaires
	warnings, err := a.cfg.ValidateFFmpegPresence()
	for _, w := range warnings {
		a.ui.PrintError(ctx, "warning: "+w)
	}
	if err != nil {
		return fmt.Errorf("config ffmpeg: %w", err)
	}
	if err := a.cfg.ValidateProvider(); err != nil {
		return fmt.Errorf("config provider: %w", err)
	}

	// Init décodeur (CheckBinaries + version)
	if a.decoder == nil {
		dec, version, err := media.InitDecoder(ctx, a.cfg)
		if err != nil {
			return fmt.Errorf("media init: %w", err)
		}
		if version != "" {
			a.ui.PrintInfo(ctx, version)
		}
		a.decoder = dec
	}
	if a.remote == nil {
		a.remote = provider.NewGemini(a.cfg.Provider.Endpoint, a.cfg.Provider.Model, a.cfg.APIKey())
	}

	// décodage complet de la piste audio
	buf, err := a.decoder.Decode(ctx, input)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("opération annulée")
		}
		return fmt.Errorf("décodage de %s : %w", input, err)
	}

	a.session.Load(buf)
	ranges := chunk.Segment(buf.DurationSeconds, a.cfg.WindowSeconds)
	if len(ranges) == 0 {
		return fmt.Errorf("aucun chunk à transcrire (durée %.2fs)", buf.DurationSeconds)
	}
	a.ui.PrintInfo(ctx, fmt.Sprintf("Langue cible : %s — %d chunk(s) de %.0fs max",
		target, len(ranges), a.cfg.WindowSeconds))

	out := a.runWithSignals(ctx, ranges, target.Instruction())

	return a.deliver(ctx, input, out)
}

// runWithSignals lance la boucle de transcription en câblant les signaux :
// premier SIGINT -> annulation coopérative (frontière de chunk), second ->
// annulation dure du contexte (interrompt l'appel distant en vol).
func (a *App) runWithSignals(ctx context.Context, ranges []model.ChunkRange, instruction string) transcriber.Outcome {
	runCtx, hardCancel := context.WithCancel(ctx)
	defer hardCancel()

	sigC := make(chan os.Signal, 2)
	signal.Notify(sigC, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigC)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-sigC:
			a.ui.PrintInfo(ctx, "\nAnnulation demandée, arrêt à la prochaine frontière de chunk (Ctrl+C à nouveau pour forcer)...")
			a.session.Cancel()
		case <-done:
			return
		}
		select {
		case <-sigC:
			hardCancel()
		case <-done:
		}
	}()

	a.ui.StartProgress(len(ranges), "Transcription")
	defer a.ui.FinishProgress()

	rep := transcriber.ReporterFunc(func(p transcriber.Progress) {
		a.ui.UpdateProgress(p.ChunkIndex, p.TotalChunks, p.Remaining)
	})
	return a.session.Run(runCtx, a.remote, ranges, instruction, rep)
}

// deliver traite le résultat terminal : écriture du fichier .vtt, copie
// presse-papier, récapitulatif.
func (a *App) deliver(ctx context.Context, input string, out transcriber.Outcome) error {
	switch out.State {
	case model.StateFailed:
		return fmt.Errorf("échec du run %s : %w", out.RunID, out.Err)

	case model.StateCancelled:
		if out.NoCaptions {
			a.ui.PrintInfo(ctx, "Run annulé, aucun sous-titre accumulé.")
			return nil
		}
		a.ui.PrintInfo(ctx, "Run annulé, enregistrement des sous-titres partiels.")

	case model.StateCompleted:
		if out.NoCaptions {
			a.ui.PrintInfo(ctx, fmt.Sprintf("Aucune parole détectée (%s), rien à enregistrer.",
				transcriber.FormatElapsed(out.Elapsed)))
			return nil
		}
		a.ui.PrintInfo(ctx, fmt.Sprintf("Transcription terminée en %s (%d cues).",
			transcriber.FormatElapsed(out.Elapsed), len(out.Cues)))
	}

	outPath, err := a.saveDocument(input, out.DocumentText)
	if err != nil {
		return err
	}
	a.ui.PrintInfo(ctx, fmt.Sprintf("Sous-titres écrits dans :\n%s", outPath))

	if a.cfg.CopyToClipboard {
		if err := clipboard.WriteAll(out.DocumentText); err != nil {
			a.ui.PrintError(ctx, fmt.Sprintf("warning: copie dans le presse-papier impossible: %v", err))
		} else {
			a.ui.PrintInfo(ctx, "Texte VTT copié dans le presse-papier.")
		}
	}

	if a.cfg.ShowSummary {
		a.ui.PrintCueSummary(ctx, out.Cues)
	}
	return nil
}

// saveDocument écrit le document VTT à côté du fichier source (ou dans
// OutputDir si configuré), sous le même nom de base que la source.
func (a *App) saveDocument(input, document string) (string, error) {
	outDir := a.cfg.OutputDir
	if outDir == "" {
		outDir = filepath.Dir(input)
	}

	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = fsutil.SanitizeFilename(base)

	outPath, err := fsutil.SaveCaptionAtomic(outDir, base, vtt.Extension, []byte(document), false)
	if err != nil {
		return "", fmt.Errorf("cannot save file to disk: %w", err)
	}
	return outPath, nil
}

// applyFlagOverrides applique les flags CLI par-dessus la config chargée.
func (a *App) applyFlagOverrides() {
	if a.flags == nil {
		return
	}
	if a.flags.Language != "" {
		a.cfg.Language = a.flags.Language
	}
	if a.flags.WindowSeconds > 0 {
		a.cfg.WindowSeconds = a.flags.WindowSeconds
	}
	if a.flags.OutputDir != "" {
		a.cfg.OutputDir = a.flags.OutputDir
	}
	if a.flags.FFmpegPath != "" {
		a.cfg.FFmpeg.Path = a.flags.FFmpegPath
		a.cfg.ResolveFFmpegPaths()
	}
}
