package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// FFmpeg est le contexte de décodage partagé de la session : il porte les
// chemins résolus vers ffmpeg/ffprobe. Créé paresseusement au premier besoin,
// jamais détruit en fonctionnement normal (un seul décodage par génération).
type FFmpeg struct {
	Name      string // nom de l'exécutable ffmpeg (fallback si pas de path)
	Path      string // chemin résolu vers ffmpeg
	ProbeName string
	ProbePath string // chemin résolu vers ffprobe
}

// NewFFmpeg construit une instance. Les paths doivent être les chemins
// résolus par la config (ou vides pour retomber sur le PATH système).
func NewFFmpeg(name, resolvedPath, probeName, resolvedProbePath string) *FFmpeg {
	return &FFmpeg{
		Name:      name,
		Path:      resolvedPath,
		ProbeName: probeName,
		ProbePath: resolvedProbePath,
	}
}

func (f *FFmpeg) exe() string {
	if f.Path != "" {
		return f.Path
	}
	return f.Name
}

func (f *FFmpeg) probeExe() string {
	if f.ProbePath != "" {
		return f.ProbePath
	}
	return f.ProbeName
}

// CheckBinaries vérifie que ffmpeg et ffprobe sont joignables : soit un
// chemin résolu qui existe et n'est pas un répertoire, soit un nom présent
// dans le PATH.
func (f *FFmpeg) CheckBinaries() error {
	if f == nil {
		return fmt.Errorf("décodeur non initialisé")
	}
	for _, exe := range []string{f.exe(), f.probeExe()} {
		if strings.ContainsAny(exe, "/\\") {
			info, err := os.Stat(exe)
			if err != nil {
				return fmt.Errorf("binaire introuvable (%s) : %v", exe, err)
			}
			if info.IsDir() {
				return fmt.Errorf("le chemin configuré est un répertoire, pas un exécutable : %s", exe)
			}
			continue
		}
		if _, err := exec.LookPath(exe); err != nil {
			return fmt.Errorf("binaire introuvable dans le PATH : %s : %v", exe, err)
		}
	}
	return nil
}

// GetVersion exécute `ffmpeg -version` et retourne la première ligne.
func (f *FFmpeg) GetVersion(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, f.exe(), "-version")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("ffmpeg -version: %w", err)
	}
	line, _, _ := strings.Cut(string(out), "\n")
	return strings.TrimSpace(line), nil
}

// probeStream est le sous-ensemble utile de la sortie JSON de ffprobe.
type probeStream struct {
	CodecType  string `json:"codec_type"`
	SampleRate string `json:"sample_rate"` // ffprobe sérialise en string
	Channels   int    `json:"channels"`
}

type probeFormat struct {
	Duration string `json:"duration"`
}

type probeOutput struct {
	Streams []probeStream `json:"streams"`
	Format  probeFormat   `json:"format"`
}

// StreamInfo décrit la première piste audio du conteneur.
type StreamInfo struct {
	SampleRate      int
	ChannelCount    int
	DurationSeconds float64 // durée annoncée par le conteneur (indicative)
}

// Probe interroge ffprobe sur la première piste audio du fichier.
// Retourne ErrDecode (wrappé) si le conteneur est illisible ou sans audio.
func (f *FFmpeg) Probe(ctx context.Context, path string) (StreamInfo, error) {
	var empty StreamInfo

	cmd := exec.CommandContext(ctx, f.probeExe(),
		"-v", "error",
		"-select_streams", "a:0",
		"-show_streams",
		"-show_format",
		"-print_format", "json",
		path,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return empty, fmt.Errorf("%w: ffprobe: %v: %s", ErrDecode, err, strings.TrimSpace(stderr.String()))
	}

	var parsed probeOutput
	if err := json.Unmarshal(out, &parsed); err != nil {
		return empty, fmt.Errorf("%w: sortie ffprobe illisible: %v", ErrDecode, err)
	}

	info, err := streamInfoFromProbe(parsed)
	if err != nil {
		return empty, err
	}
	return info, nil
}

// streamInfoFromProbe extrait et valide les champs de la première piste
// audio. Séparée de Probe pour être testable sans ffprobe.
func streamInfoFromProbe(p probeOutput) (StreamInfo, error) {
	var empty StreamInfo
	var audio *probeStream
	for i := range p.Streams {
		if p.Streams[i].CodecType == "audio" {
			audio = &p.Streams[i]
			break
		}
	}
	if audio == nil {
		return empty, fmt.Errorf("%w: aucune piste audio dans le conteneur", ErrDecode)
	}

	rate, err := strconv.Atoi(strings.TrimSpace(audio.SampleRate))
	if err != nil || rate <= 0 {
		return empty, fmt.Errorf("%w: sample rate invalide %q", ErrDecode, audio.SampleRate)
	}
	if audio.Channels < 1 {
		return empty, fmt.Errorf("%w: nombre de canaux invalide %d", ErrDecode, audio.Channels)
	}

	// la durée du conteneur est indicative ; la durée faisant foi est
	// recalculée sur les frames réellement décodées
	var duration float64
	if d := strings.TrimSpace(p.Format.Duration); d != "" {
		duration, _ = strconv.ParseFloat(d, 64)
	}

	return StreamInfo{
		SampleRate:      rate,
		ChannelCount:    audio.Channels,
		DurationSeconds: duration,
	}, nil
}

// Decode décode la piste audio complète du fichier en un SampleBuffer.
// ffmpeg sort du PCM f32le entrelacé au rate/canaux natifs de la piste,
// désentrelacé ensuite en slices par canal.
func (f *FFmpeg) Decode(ctx context.Context, path string) (*SampleBuffer, error) {
	start := time.Now()

	info, err := f.Probe(ctx, path)
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, f.exe(),
		"-v", "error",
		"-i", path,
		"-vn",
		"-map", "a:0",
		"-f", "f32le",
		"-acodec", "pcm_f32le",
		"-ar", strconv.Itoa(info.SampleRate),
		"-ac", strconv.Itoa(info.ChannelCount),
		"pipe:1",
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	raw, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%w: ffmpeg decode: %v: %s", ErrDecode, err, strings.TrimSpace(stderr.String()))
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: piste audio vide", ErrDecode)
	}

	channels, err := DeinterleaveF32LE(raw, info.ChannelCount)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	buf := &SampleBuffer{
		SampleRate:      info.SampleRate,
		ChannelCount:    info.ChannelCount,
		Channels:        channels,
		DurationSeconds: float64(len(channels[0])) / float64(info.SampleRate),
	}
	if err := buf.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	fmt.Printf("Audio décodé en %s (%.1fs, %d Hz, %d canaux)\n",
		time.Since(start).Round(time.Millisecond), buf.DurationSeconds, buf.SampleRate, buf.ChannelCount)
	return buf, nil
}
