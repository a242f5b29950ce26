// Package provider abstrait la capacité de transcription distante.
// Le provider est une boîte noire : un appel par chunk, une erreur générique
// en cas d'échec, aucun contrat de retry.
package provider

import (
	"context"
	"errors"
)

// ErrRemoteCall signale un échec de l'appel distant. Fatal pour le run en
// cours : l'orchestrateur abandonne les chunks restants.
var ErrRemoteCall = errors.New("échec de l'appel au provider de transcription")

// Interface est l'abstraction utilisée par l'orchestrateur. Elle facilite le
// test en autorisant une implémentation factice.
//
// encodedAudio : conteneur audio encodé en texte transportable (base64).
// mimeType     : type du conteneur ("audio/wav").
// instruction  : consigne fixe de transcription (langue cible incluse).
// Retourne le texte transcrit, possiblement vide (pas une erreur).
type Interface interface {
	Transcribe(ctx context.Context, encodedAudio, mimeType, instruction string) (string, error)
}
