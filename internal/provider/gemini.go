package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Gemini appelle l'API generateContent avec l'audio inline (base64) et
// l'instruction de transcription.
type Gemini struct {
	Endpoint string // base URL, sans slash final
	Model    string

	apiKey string
	client *http.Client
}

// NewGemini construit le client. Aucun timeout n'est imposé par le noyau sur
// les appels individuels : un appel suspendu bloque le run indéfiniment
// (limitation documentée, l'annulation du ctx reste le seul garde-fou).
func NewGemini(endpoint, model, apiKey string) *Gemini {
	return &Gemini{
		Endpoint: strings.TrimRight(endpoint, "/"),
		Model:    model,
		apiKey:   apiKey,
		client:   &http.Client{},
	}
}

// structures de requête/réponse generateContent (sous-ensemble utile)

type generateRequest struct {
	Contents []requestContent `json:"contents"`
}

type requestContent struct {
	Parts []requestPart `json:"parts"`
}

type requestPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Transcribe envoie l'instruction + l'audio inline et retourne le texte du
// premier candidat. Réponse sans candidat ou sans texte -> chaîne vide
// ("aucun sous-titre pour cet intervalle"), pas une erreur.
func (g *Gemini) Transcribe(ctx context.Context, encodedAudio, mimeType, instruction string) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("%w: clé d'API absente", ErrRemoteCall)
	}

	reqBody := generateRequest{
		Contents: []requestContent{{
			Parts: []requestPart{
				{Text: instruction},
				{InlineData: &inlineData{MimeType: mimeType, Data: encodedAudio}},
			},
		}},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("%w: encodage de la requête: %v", ErrRemoteCall, err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", g.Endpoint, g.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: construction de la requête: %v", ErrRemoteCall, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRemoteCall, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// lire un extrait du corps pour le diagnostic, sans tout charger
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: http %d: %s", ErrRemoteCall, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: réponse illisible: %v", ErrRemoteCall, err)
	}

	if len(parsed.Candidates) == 0 {
		return "", nil
	}
	var sb strings.Builder
	for _, p := range parsed.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}
