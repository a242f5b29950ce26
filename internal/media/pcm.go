package media

import (
	"encoding/binary"
	"fmt"
	"math"
)

const bytesPerF32Sample = 4

// DeinterleaveF32LE convertit un flux PCM float32 little-endian entrelacé
// (frame = un échantillon par canal, dans l'ordre des canaux) en slices par
// canal. Les octets excédentaires d'une frame incomplète en fin de flux sont
// ignorés.
func DeinterleaveF32LE(raw []byte, channelCount int) ([][]float32, error) {
	if channelCount < 1 {
		return nil, fmt.Errorf("channelCount invalide : %d", channelCount)
	}
	if len(raw) < bytesPerF32Sample {
		return nil, fmt.Errorf("flux PCM trop court : %d octets", len(raw))
	}

	bytesPerFrame := bytesPerF32Sample * channelCount
	frameCount := len(raw) / bytesPerFrame
	if frameCount == 0 {
		return nil, fmt.Errorf("flux PCM sans frame complète (%d octets pour %d canaux)", len(raw), channelCount)
	}

	channels := make([][]float32, channelCount)
	for c := range channels {
		channels[c] = make([]float32, frameCount)
	}

	for frame := 0; frame < frameCount; frame++ {
		base := frame * bytesPerFrame
		for c := 0; c < channelCount; c++ {
			off := base + c*bytesPerF32Sample
			bits := binary.LittleEndian.Uint32(raw[off : off+bytesPerF32Sample])
			channels[c][frame] = math.Float32frombits(bits)
		}
	}
	return channels, nil
}
