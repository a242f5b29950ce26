package ui

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"github.com/11g01027-creator/AIVideoSubtitleGenerator/internal/vtt"
)

const summaryTextMaxRunes = 60

type terminalUI struct {
	reader *bufio.Reader
	isTTY  bool
	bar    *progressbar.ProgressBar
}

func NewTerminal() Interface {
	return &terminalUI{
		reader: bufio.NewReader(os.Stdin),
		isTTY:  isatty.IsTerminal(os.Stderr.Fd()),
	}
}

func (t *terminalUI) GetInputPath(ctx context.Context) (string, error) {
	for {
		fmt.Print("Entrez le chemin du fichier vidéo ou audio : ")
		input, err := t.reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("lecture stdin: %w", err)
		}
		path := strings.TrimSpace(input)
		if path == "" {
			continue
		}
		info, serr := os.Stat(path)
		if serr != nil {
			fmt.Println("❌ Fichier introuvable. Essayez à nouveau.")
			continue
		}
		if info.IsDir() {
			fmt.Println("❌ Le chemin est un répertoire, pas un fichier.")
			continue
		}
		return path, nil
	}
}

func (t *terminalUI) PrintInfo(ctx context.Context, s string) {
	fmt.Println(s)
}

func (t *terminalUI) PrintError(ctx context.Context, s string) {
	fmt.Fprintln(os.Stderr, s)
}

// StartProgress ouvre la barre de progression sur stderr. Hors TTY
// (redirection, CI) on retombe sur des lignes de statut simples.
func (t *terminalUI) StartProgress(totalChunks int, label string) {
	if !t.isTTY {
		t.bar = nil
		fmt.Printf("%s : %d chunks\n", label, totalChunks)
		return
	}
	t.bar = progressbar.NewOptions(totalChunks,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(label),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)
}

func (t *terminalUI) UpdateProgress(chunkIndex, totalChunks int, remaining string) {
	if t.bar == nil {
		fmt.Printf("chunk %d/%d (restant estimé : %s)\n", chunkIndex, totalChunks, remaining)
		return
	}
	t.bar.Describe(fmt.Sprintf("Transcription (restant %s)", remaining))
	if chunkIndex > 1 {
		_ = t.bar.Add(1)
	}
}

func (t *terminalUI) FinishProgress() {
	if t.bar == nil {
		return
	}
	_ = t.bar.Finish()
	t.bar = nil
}

// PrintCueSummary affiche le récapitulatif des cues dans un tableau.
func (t *terminalUI) PrintCueSummary(ctx context.Context, cues []vtt.Cue) {
	if len(cues) == 0 {
		fmt.Println("Aucune cue produite.")
		return
	}
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"#", "Début", "Fin", "Texte"})
	for i, c := range cues {
		tw.AppendRow(table.Row{
			i + 1,
			vtt.FormatTimestamp(c.StartSeconds),
			vtt.FormatTimestamp(c.EndSeconds),
			truncateRunes(c.Text, summaryTextMaxRunes),
		})
	}
	tw.Render()
}

// truncateRunes coupe s à max runes (pas octets) avec une ellipse.
func truncateRunes(s string, max int) string {
	rs := []rune(s)
	if len(rs) <= max {
		return s
	}
	return string(rs[:max-1]) + "…"
}
