package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidateFFmpegPresence vérifie de manière statique que si des chemins
// résolus sont définis, les fichiers existent et que le répertoire parent est
// accessible. Retourne warnings (non-fataux) et une erreur si c'est critique.
func (c *Config) ValidateFFmpegPresence() (warnings []string, err error) {
	if c == nil {
		return nil, fmt.Errorf("config nil")
	}

	// assure que les resolved paths sont calculés
	c.ResolveFFmpegPaths()

	for _, p := range []string{c.FFmpeg.ResolvedPath, c.FFmpeg.ResolvedProbePath} {
		p = strings.TrimSpace(p)
		if p == "" {
			// pas de chemin résolu : la découverte dans le PATH sera tentée
			// au moment du CheckBinaries, ce n'est pas fatal ici.
			warnings = append(warnings, "aucun chemin résolu pour ffmpeg/ffprobe; recherche dans PATH possible")
			continue
		}

		parent := filepath.Dir(p)
		if st, serr := os.Stat(parent); serr != nil {
			if os.IsNotExist(serr) {
				warnings = append(warnings, fmt.Sprintf("le dossier parent du chemin configuré n'existe pas : %s", parent))
			} else {
				return warnings, fmt.Errorf("impossible d'accéder au dossier parent %s : %w", parent, serr)
			}
			continue
		} else if !st.IsDir() {
			return warnings, fmt.Errorf("le parent du chemin configuré n'est pas un répertoire : %s", parent)
		}

		if info, serr := os.Stat(p); serr != nil {
			if os.IsNotExist(serr) {
				warnings = append(warnings, fmt.Sprintf("exécutable introuvable à l'emplacement configuré : %s", p))
				continue
			}
			return warnings, fmt.Errorf("erreur lors du test du fichier %s : %w", p, serr)
		} else if info.IsDir() {
			return warnings, fmt.Errorf("le chemin configuré est un répertoire : %s", p)
		}
	}

	return warnings, nil
}

// ValidateProvider vérifie que la configuration du provider est utilisable :
// clé d'API présente dans l'environnement, endpoint non vide.
func (c *Config) ValidateProvider() error {
	if c == nil {
		return fmt.Errorf("config nil")
	}
	if c.Provider.Endpoint == "" {
		return fmt.Errorf("endpoint du provider vide")
	}
	if c.APIKey() == "" {
		return fmt.Errorf("clé d'API absente : définir la variable d'environnement %s", c.Provider.APIKeyEnv)
	}
	return nil
}
