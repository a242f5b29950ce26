package media

import (
	"errors"
	"fmt"
)

// ErrDecode signale une entrée illisible : conteneur non supporté par le
// décodeur ou absence de piste audio décodable. Fatal, avant tout découpage.
var ErrDecode = errors.New("entrée audio/vidéo indécodable")

// SampleBuffer est le buffer d'échantillons uniforme produit par le décodage.
// Les échantillons sont rangés par canal, en float32 dans [-1, 1]
// (conceptuellement : le décodeur peut livrer des valeurs hors bornes,
// l'encodeur WAV les écrête avant quantification).
//
// Le buffer appartient exclusivement au pipeline le temps d'une génération :
// dérivé une fois par fichier uploadé, jeté au reset ou au chargement suivant.
type SampleBuffer struct {
	SampleRate      int         // Hz, > 0
	ChannelCount    int         // >= 1
	Channels        [][]float32 // un slice par canal, longueurs identiques
	DurationSeconds float64
}

// FrameCount retourne le nombre de frames (échantillons par canal).
func (b *SampleBuffer) FrameCount() int {
	if b == nil || len(b.Channels) == 0 {
		return 0
	}
	return len(b.Channels[0])
}

// Validate vérifie la cohérence interne du buffer.
func (b *SampleBuffer) Validate() error {
	if b == nil {
		return fmt.Errorf("sample buffer nil")
	}
	if b.SampleRate <= 0 {
		return fmt.Errorf("sample rate invalide : %d", b.SampleRate)
	}
	if b.ChannelCount < 1 {
		return fmt.Errorf("nombre de canaux invalide : %d", b.ChannelCount)
	}
	if len(b.Channels) != b.ChannelCount {
		return fmt.Errorf("canaux incohérents : %d slices pour %d canaux", len(b.Channels), b.ChannelCount)
	}
	n := len(b.Channels[0])
	for i, ch := range b.Channels {
		if len(ch) != n {
			return fmt.Errorf("canal %d : %d frames, attendu %d", i, len(ch), n)
		}
	}
	return nil
}
