package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/11g01027-creator/AIVideoSubtitleGenerator/internal/assets"
	"github.com/11g01027-creator/AIVideoSubtitleGenerator/internal/fsutil"
	"gopkg.in/yaml.v3"
)

const CurrentConfigVersion = 1

// struct pour les paramètres de configuration
type Config struct {
	// Chemins
	OutputDir string `yaml:"output_dir"` // "" => à côté du fichier source

	// Pipeline
	WindowSeconds float64 `yaml:"window_seconds"` // taille des fenêtres de transcription
	Language      string  `yaml:"language"`       // langue cible (tag BCP-47, ex: "en", "fr")

	// Sortie
	CopyToClipboard bool `yaml:"copy_to_clipboard"` // copier le texte VTT dans le presse-papier
	ShowSummary     bool `yaml:"show_summary"`      // tableau récapitulatif des cues en fin de run

	// Provider distant
	Provider struct {
		Model     string `yaml:"model"`
		Endpoint  string `yaml:"endpoint"`    // base URL de l'API (surcharge utile en test)
		APIKeyEnv string `yaml:"api_key_env"` // variable d'environnement portant la clé
	} `yaml:"provider"`

	// ffmpeg / ffprobe
	FFmpeg struct {
		Name        string `yaml:"name"`
		ProbeName   string `yaml:"probe_name"`
		Path        string `yaml:"path"` // répertoire ou chemin complet ; "" => PATH système
		ShowVersion bool   `yaml:"show_version"`

		// Chemins effectifs vers les exécutables
		ResolvedPath      string `yaml:"-"`
		ResolvedProbePath string `yaml:"-"`
	} `yaml:"ffmpeg"`

	ConfigVersion int `yaml:"config_version"`

	configFilePath string
}

// Configuration par défaut (fallback si l'asset embarqué est manquant)
func defaultConfig() *Config {
	c := &Config{}

	// Chemins
	c.OutputDir = ""

	// Pipeline
	c.WindowSeconds = 30
	c.Language = "en"

	// Sortie
	c.CopyToClipboard = false
	c.ShowSummary = true

	// Provider
	c.Provider.Model = "gemini-2.5-flash"
	c.Provider.Endpoint = "https://generativelanguage.googleapis.com/v1beta"
	c.Provider.APIKeyEnv = "GEMINI_API_KEY"

	// ffmpeg
	c.FFmpeg.Name = "ffmpeg"
	c.FFmpeg.ProbeName = "ffprobe"
	c.FFmpeg.Path = ""
	c.FFmpeg.ShowVersion = false

	c.ConfigVersion = CurrentConfigVersion

	return c
}

// Load lit la config; si le fichier n'existe pas, on copie l'exemple embarqué depuis internal/assets
func Load(path string) (*Config, error) {
	if path == "" {
		path = "subgen.yaml"
	}

	// si le fichier n'existe pas -> essayer de créer à partir de l'asset embarqué
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := createDefaultConfigFromEmbedded(path); err != nil {
			return nil, fmt.Errorf("échec de création du fichier de configuration par défaut : %w", err)
		}
	}

	cfg := defaultConfig()

	// lire le YAML brut et déserialiser dans cfg (les champs présents écraseront les defaults)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lecture du fichier de configuration %s impossible : %w", path, err)
	}

	// corriger les chemins Windows avec des backslashes
	data = bytes.ReplaceAll(data, []byte(`\`), []byte(`/`))

	// On déserialise dans cfg initialisé : les champs absents conservent les valeurs par défaut.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("analyse du fichier de configuration %s impossible : %w", path, err)
	}
	cfg.configFilePath = path

	cfg.normalizeConfig()

	// gestion de version : si le fichier est plus ancien -> orchestrer la mise à jour
	if cfg.ConfigVersion < CurrentConfigVersion {
		if err := orchestrateConfigUpgrade(cfg, cfg.ConfigVersion); err != nil {
			return nil, fmt.Errorf("échec de mise à niveau de la configuration : %w", err)
		}
		// re-normaliser au cas où la migration a modifié des valeurs
		cfg.normalizeConfig()
	}

	return cfg, nil
}

func createDefaultConfigFromEmbedded(dstPath string) error {
	// lire l'asset embarqué via assets.Embedded et DefaultConfigAsset
	b, err := assets.Embedded.ReadFile(assets.DefaultConfigAsset)
	if err != nil {
		return fmt.Errorf("lecture du modèle de configuration embarqué impossible : %w", err)
	}

	// s'assurer que le dossier parent existe
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return fmt.Errorf("échec mkdir pour la configuration %s : %w", filepath.Dir(dstPath), err)
	}

	// écrire atomiquement sur disque (évite les fichiers partiels)
	if err := fsutil.WriteFileAtomic(dstPath, b, 0o644); err != nil {
		return fmt.Errorf("échec d'écriture du fichier de configuration %s : %w", dstPath, err)
	}

	fmt.Printf("info : fichier de configuration par défaut créé : %s\n", dstPath)
	return nil
}

func (c *Config) normalizeConfig() {
	// Nettoyage des chemins
	if c.OutputDir != "" {
		c.OutputDir = filepath.Clean(c.OutputDir)
	}

	// Pipeline
	if c.WindowSeconds <= 0 {
		c.WindowSeconds = 30
	}
	c.Language = strings.TrimSpace(c.Language)
	if c.Language == "" {
		c.Language = "en"
	}

	// Provider
	c.Provider.Model = strings.TrimSpace(c.Provider.Model)
	if c.Provider.Model == "" {
		c.Provider.Model = "gemini-2.5-flash"
	}
	c.Provider.Endpoint = strings.TrimRight(strings.TrimSpace(c.Provider.Endpoint), "/")
	if c.Provider.Endpoint == "" {
		c.Provider.Endpoint = "https://generativelanguage.googleapis.com/v1beta"
	}
	c.Provider.APIKeyEnv = strings.TrimSpace(c.Provider.APIKeyEnv)
	if c.Provider.APIKeyEnv == "" {
		c.Provider.APIKeyEnv = "GEMINI_API_KEY"
	}

	// centraliser la résolution/normalisation de ffmpeg
	c.ResolveFFmpegPaths()
}

// ResolveFFmpegPaths normalise les noms et résout les chemins complets vers
// ffmpeg et ffprobe. Appeler après avoir modifié cfg.FFmpeg.Name ou Path.
func (c *Config) ResolveFFmpegPaths() {
	if c == nil {
		return
	}

	c.FFmpeg.Name = normalizeExeName(c.FFmpeg.Name, "ffmpeg")
	c.FFmpeg.ProbeName = normalizeExeName(c.FFmpeg.ProbeName, "ffprobe")

	// Path vide -> recherche dans le PATH système (pas de chemin résolu)
	cfgPath := strings.TrimSpace(c.FFmpeg.Path)
	if cfgPath == "" {
		c.FFmpeg.ResolvedPath = ""
		c.FFmpeg.ResolvedProbePath = ""
		return
	}
	cleanPath := filepath.Clean(cfgPath)

	// si le chemin fourni finit déjà par l'exécutable ffmpeg -> on l'utilise,
	// et ffprobe est supposé vivre dans le même répertoire
	if filepath.Base(cleanPath) == c.FFmpeg.Name {
		c.FFmpeg.ResolvedPath = cleanPath
		c.FFmpeg.ResolvedProbePath = filepath.Join(filepath.Dir(cleanPath), c.FFmpeg.ProbeName)
	} else {
		// sinon on considère cfgPath comme un répertoire et on y joint les exes
		c.FFmpeg.ResolvedPath = filepath.Join(cleanPath, c.FFmpeg.Name)
		c.FFmpeg.ResolvedProbePath = filepath.Join(cleanPath, c.FFmpeg.ProbeName)
	}
}

// normalizeExeName nettoie le nom et ajoute .exe sur Windows si nécessaire.
func normalizeExeName(name, fallback string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = fallback
	}
	if runtime.GOOS == "windows" && !strings.HasSuffix(strings.ToLower(name), ".exe") {
		name = name + ".exe"
	}
	return name
}

// APIKey lit la clé d'API du provider depuis l'environnement.
func (c *Config) APIKey() string {
	return strings.TrimSpace(os.Getenv(c.Provider.APIKeyEnv))
}
