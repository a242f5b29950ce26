package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/11g01027-creator/AIVideoSubtitleGenerator/internal/config"
	"github.com/11g01027-creator/AIVideoSubtitleGenerator/internal/media"
	"github.com/11g01027-creator/AIVideoSubtitleGenerator/internal/provider"
	"github.com/11g01027-creator/AIVideoSubtitleGenerator/internal/ui"
	"github.com/11g01027-creator/AIVideoSubtitleGenerator/internal/vtt"
)

// --- fakes ------------------------------------------------------------------

type fakeUI struct {
	infos  []string
	errors []string
}

var _ ui.Interface = (*fakeUI)(nil)

func (f *fakeUI) GetInputPath(ctx context.Context) (string, error) {
	return "", fmt.Errorf("no interactive input in tests")
}
func (f *fakeUI) PrintInfo(ctx context.Context, s string)  { f.infos = append(f.infos, s) }
func (f *fakeUI) PrintError(ctx context.Context, s string) { f.errors = append(f.errors, s) }
func (f *fakeUI) StartProgress(totalChunks int, label string)                 {}
func (f *fakeUI) UpdateProgress(chunkIndex, totalChunks int, remaining string) {}
func (f *fakeUI) FinishProgress()                                             {}
func (f *fakeUI) PrintCueSummary(ctx context.Context, cues []vtt.Cue)         {}

type fakeDecoder struct {
	buf *media.SampleBuffer
}

var _ media.Interface = (*fakeDecoder)(nil)

func (f *fakeDecoder) CheckBinaries() error                         { return nil }
func (f *fakeDecoder) GetVersion(ctx context.Context) (string, error) { return "fake 0.0", nil }
func (f *fakeDecoder) Decode(ctx context.Context, path string) (*media.SampleBuffer, error) {
	return f.buf, nil
}

type fakeRemote struct {
	text string
	err  error
}

func (f *fakeRemote) Transcribe(ctx context.Context, encodedAudio, mimeType, instruction string) (string, error) {
	return f.text, f.err
}

// --- helpers ----------------------------------------------------------------

func monoBuffer(durationSeconds float64) *media.SampleBuffer {
	const rate = 100
	n := int(durationSeconds * rate)
	return &media.SampleBuffer{
		SampleRate:      rate,
		ChannelCount:    1,
		Channels:        [][]float32{make([]float32, n)},
		DurationSeconds: durationSeconds,
	}
}

func testApp(t *testing.T, input string, remote provider.Interface) (*App, *fakeUI) {
	t.Helper()
	cfg := &config.Config{}
	cfg.Language = "en"
	cfg.WindowSeconds = 30
	cfg.Provider.Endpoint = "https://example.test"
	cfg.Provider.APIKeyEnv = "SUBGEN_TEST_API_KEY"
	t.Setenv("SUBGEN_TEST_API_KEY", "test-key")

	tui := &fakeUI{}
	a := New(cfg, tui, &CLIFlags{InputPath: input})
	a.decoder = &fakeDecoder{buf: monoBuffer(65)}
	a.remote = remote
	return a, tui
}

// --- scénarios --------------------------------------------------------------

func TestRun_WritesVTTNextToSource(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "ma vidéo.mp4")

	a, _ := testApp(t, input, &fakeRemote{text: "bonjour"})
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	outPath := filepath.Join(dir, "ma vidéo.vtt")
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("output file: %v", err)
	}
	doc := string(data)
	if !strings.HasPrefix(doc, vtt.Header+"\n\n") {
		t.Errorf("document does not start with header: %q", doc[:min(len(doc), 20)])
	}
	// 65s en fenêtres de 30s -> 3 cues
	if n := strings.Count(doc, " --> "); n != 3 {
		t.Errorf("document has %d cues; want 3", n)
	}
	if !strings.Contains(doc, "bonjour") {
		t.Error("cue text missing from document")
	}
}

func TestRun_OutputDirOverridesSourceDir(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	input := filepath.Join(srcDir, "clip.mkv")

	a, _ := testApp(t, input, &fakeRemote{text: "texte"})
	a.cfg.OutputDir = outDir
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if _, err := os.Stat(filepath.Join(outDir, "clip.vtt")); err != nil {
		t.Errorf("output not in configured dir: %v", err)
	}
	if _, err := os.Stat(filepath.Join(srcDir, "clip.vtt")); !os.IsNotExist(err) {
		t.Errorf("output unexpectedly next to source: %v", err)
	}
}

func TestRun_NoSpeechWritesNothing(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "silence.mp4")

	a, tui := testApp(t, input, &fakeRemote{text: "   "})
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "silence.vtt")); !os.IsNotExist(err) {
		t.Errorf("file written for a run without captions: %v", err)
	}
	var mentioned bool
	for _, s := range tui.infos {
		if strings.Contains(s, "Aucune parole") {
			mentioned = true
		}
	}
	if !mentioned {
		t.Error("no-captions outcome not reported to the user")
	}
}

func TestRun_RemoteFailureReturnsError(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "clip.mp4")

	remoteErr := fmt.Errorf("%w: http 500", provider.ErrRemoteCall)
	a, _ := testApp(t, input, &fakeRemote{err: remoteErr})
	err := a.Run(context.Background())
	if err == nil {
		t.Fatal("Run succeeded despite remote failure")
	}
	if _, serr := os.Stat(filepath.Join(dir, "clip.vtt")); !os.IsNotExist(serr) {
		t.Error("file written for a failed run")
	}
}

func TestRun_FlagOverridesApplied(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "clip.mp4")

	a, _ := testApp(t, input, &fakeRemote{text: "ok"})
	a.flags.WindowSeconds = 40
	a.flags.Language = "fr"
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if a.cfg.WindowSeconds != 40 || a.cfg.Language != "fr" {
		t.Errorf("flags not applied: window=%v lang=%q", a.cfg.WindowSeconds, a.cfg.Language)
	}

	// 65s en fenêtres de 40s -> 2 cues
	data, err := os.ReadFile(filepath.Join(dir, "clip.vtt"))
	if err != nil {
		t.Fatalf("output file: %v", err)
	}
	if n := strings.Count(string(data), " --> "); n != 2 {
		t.Errorf("document has %d cues; want 2", n)
	}
}
