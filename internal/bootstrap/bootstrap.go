package bootstrap

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/11g01027-creator/AIVideoSubtitleGenerator/internal/fsutil"
)

// EnsureConfigPresent s'assure que le fichier de configuration existe sur
// disque ; sinon il est créé depuis l'asset embarqué.
//
// - cfgPath : chemin cible sur disque (ex: "<binDir>/subgen.yaml")
// - fsys    : embed.FS contenant les ressources embarquées
// - srcFile : chemin DANS fsys de la config exemple
//
// NE REMPLACE JAMAIS un fichier existant.
func EnsureConfigPresent(cfgPath string, fsys fs.FS, srcFile string) error {
	if cfgPath == "" {
		return fmt.Errorf("chemin de configuration vide")
	}

	if _, err := os.Stat(cfgPath); err == nil {
		// le fichier existe déjà -> rien à faire
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("échec lors du test du fichier %s : %w", cfgPath, err)
	}

	// lire l'asset embarqué (utiliser des slashs)
	data, err := fs.ReadFile(fsys, filepath.ToSlash(srcFile))
	if err != nil {
		return fmt.Errorf("échec de lecture de la ressource embarquée %s : %w", srcFile, err)
	}

	// écrire atomiquement sur disque
	if err := fsutil.WriteFileAtomic(cfgPath, data, 0o644); err != nil {
		return fmt.Errorf("échec d'écriture du fichier de configuration %s : %w", cfgPath, err)
	}
	return nil
}
