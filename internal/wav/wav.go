// Package wav rend une tranche du SampleBuffer en conteneur WAV PCM 16-bit
// autonome, puis en texte base64 transportable vers le provider distant.
// L'encodage est déterministe : même tranche => mêmes octets, même texte.
package wav

import (
	"encoding/base64"
	"encoding/binary"
	"math"
	"strings"

	"github.com/11g01027-creator/AIVideoSubtitleGenerator/internal/media"
	"github.com/11g01027-creator/AIVideoSubtitleGenerator/pkg/model"
)

// HeaderSize est la taille du header WAV canonique ("RIFF" ... "data" + taille).
const HeaderSize = 44

// MimeType du payload produit.
const MimeType = "audio/wav"

// Base64SliceBytes est la taille des tranches passées à l'encodeur base64.
// Multiple de 3 obligatoire : chaque tranche encode alors un nombre entier
// de quanta base64 et la concaténation reste un flux valide sans padding
// intermédiaire.
const Base64SliceBytes = 48 * 1024

const bytesPerSample = 2 // PCM 16-bit

// Payload est le rendu transportable d'un chunk : conteneur WAV encodé en
// texte + les paramètres audio qui l'accompagnent. Transient : jeté après
// l'appel distant.
type Payload struct {
	SampleRate   int
	ChannelCount int
	MimeType     string
	EncodedBytes string // base64 du conteneur WAV
}

// Encode rend la tranche [r.StartSeconds, r.EndSeconds) du buffer en
// conteneur WAV complet : header 44 octets + frames entrelacées int16 LE.
// Les frames au-delà de la fin du buffer sont remplies de silence, la
// tranche demandée garde donc toujours sa longueur nominale.
func Encode(buf *media.SampleBuffer, r model.ChunkRange) []byte {
	startFrame := int(math.Floor(r.StartSeconds * float64(buf.SampleRate)))
	frameCount := int(math.Ceil(r.DurationSeconds() * float64(buf.SampleRate)))
	if frameCount < 0 {
		frameCount = 0
	}

	dataLen := frameCount * buf.ChannelCount * bytesPerSample
	out := make([]byte, HeaderSize+dataLen)
	writeHeader(out, buf.SampleRate, buf.ChannelCount, dataLen)

	total := buf.FrameCount()
	off := HeaderSize
	for frame := 0; frame < frameCount; frame++ {
		src := startFrame + frame
		for c := 0; c < buf.ChannelCount; c++ {
			var sample float32
			if src >= 0 && src < total {
				sample = buf.Channels[c][src]
			}
			binary.LittleEndian.PutUint16(out[off:off+2], uint16(Quantize(sample)))
			off += 2
		}
	}
	return out
}

// writeHeader écrit le header WAV canonique PCM 16-bit little-endian.
func writeHeader(dst []byte, sampleRate, channelCount, dataLen int) {
	byteRate := sampleRate * channelCount * bytesPerSample
	blockAlign := channelCount * bytesPerSample

	copy(dst[0:4], "RIFF")
	binary.LittleEndian.PutUint32(dst[4:8], uint32(36+dataLen))
	copy(dst[8:12], "WAVE")

	copy(dst[12:16], "fmt ")
	binary.LittleEndian.PutUint32(dst[16:20], 16) // taille du sous-chunk fmt
	binary.LittleEndian.PutUint16(dst[20:22], 1)  // format 1 = PCM entier
	binary.LittleEndian.PutUint16(dst[22:24], uint16(channelCount))
	binary.LittleEndian.PutUint32(dst[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(dst[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(dst[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(dst[34:36], 16) // bits par échantillon

	copy(dst[36:40], "data")
	binary.LittleEndian.PutUint32(dst[40:44], uint32(dataLen))
}

// Quantize écrête s dans [-1, 1] puis quantifie en int16 avec l'asymétrie
// PCM standard : négatifs ×32768, positifs ×32767. Arrondi symétrique
// (demi pas éloigné de zéro). 1.0 -> 32767, -1.0 -> -32768, 1.5 -> 32767.
func Quantize(s float32) int16 {
	v := float64(s)
	if v < -1 {
		v = -1
	} else if v > 1 {
		v = 1
	}
	if v < 0 {
		return int16(math.Round(v * 32768))
	}
	return int16(math.Round(v * 32767))
}

// EncodeBase64 encode b en base64 standard par tranches de Base64SliceBytes.
// Le découpage contourne les limites de taille d'un appel unique de la
// primitive d'encodage ; le résultat est identique à un encodage en un bloc.
func EncodeBase64(b []byte) string {
	var sb strings.Builder
	enc := base64.StdEncoding
	for len(b) > 0 {
		n := len(b)
		if n > Base64SliceBytes {
			n = Base64SliceBytes
		}
		sb.WriteString(enc.EncodeToString(b[:n]))
		b = b[n:]
	}
	return sb.String()
}

// EncodeChunk compose le payload transportable d'un chunk : WAV + base64.
func EncodeChunk(buf *media.SampleBuffer, r model.ChunkRange) Payload {
	return Payload{
		SampleRate:   buf.SampleRate,
		ChannelCount: buf.ChannelCount,
		MimeType:     MimeType,
		EncodedBytes: EncodeBase64(Encode(buf, r)),
	}
}
