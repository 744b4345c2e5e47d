package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	LogLevel string

	APIBaseURL         string
	UploadPath         string
	AskPath            string
	HTTPTimeoutSeconds int
	ValidateContract   bool

	FilesBasePath string
	MaxFileBytes  int
	InspectPDF    bool

	NATSURL     string
	NATSSubject string

	HTTPAddr string
}

func (c Config) HTTPTimeout() time.Duration {
	if c.HTTPTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// fileConfig mirrors Config for the optional YAML overlay.
type fileConfig struct {
	LogLevel           string `yaml:"log_level"`
	APIBaseURL         string `yaml:"api_url"`
	UploadPath         string `yaml:"upload_path"`
	AskPath            string `yaml:"ask_path"`
	HTTPTimeoutSeconds *int   `yaml:"http_timeout_seconds"`
	ValidateContract   *bool  `yaml:"validate_contract"`
	FilesBasePath      string `yaml:"files_base_path"`
	MaxFileBytes       *int   `yaml:"max_file_bytes"`
	InspectPDF         *bool  `yaml:"inspect_pdf"`
	NATSURL            string `yaml:"nats_url"`
	NATSSubject        string `yaml:"nats_subject"`
	HTTPAddr           string `yaml:"http_addr"`
}

// Load reads defaults, then DOCQA_CONFIG_FILE when set, then the environment.
func Load() (Config, error) {
	var file fileConfig
	if path := os.Getenv("DOCQA_CONFIG_FILE"); path != "" {
		loaded, err := readFile(path)
		if err != nil {
			return Config{}, err
		}
		file = loaded
	}

	return Config{
		LogLevel: mustEnv("LOG_LEVEL", orString(file.LogLevel, "info")),

		APIBaseURL:         mustEnv("DOCQA_API_URL", orString(file.APIBaseURL, "http://127.0.0.1:8000")),
		UploadPath:         mustEnv("DOCQA_UPLOAD_PATH", orString(file.UploadPath, "/upload/")),
		AskPath:            mustEnv("DOCQA_ASK_PATH", orString(file.AskPath, "/ask/")),
		HTTPTimeoutSeconds: mustEnvInt("DOCQA_HTTP_TIMEOUT_SECONDS", orInt(file.HTTPTimeoutSeconds, 120)),
		ValidateContract:   mustEnvBool("DOCQA_VALIDATE_CONTRACT", orBool(file.ValidateContract, true)),

		FilesBasePath: mustEnv("DOCQA_FILES_BASE_PATH", file.FilesBasePath),
		MaxFileBytes:  mustEnvInt("DOCQA_MAX_FILE_BYTES", orInt(file.MaxFileBytes, 50<<20)),
		InspectPDF:    mustEnvBool("DOCQA_INSPECT_PDF", orBool(file.InspectPDF, true)),

		NATSURL:     mustEnv("NATS_URL", file.NATSURL),
		NATSSubject: mustEnv("NATS_SUBJECT", orString(file.NATSSubject, "docqa.notifications")),

		HTTPAddr: mustEnv("DOCQA_HTTP_ADDR", file.HTTPAddr),
	}, nil
}

func readFile(path string) (fileConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("read config file: %w", err)
	}
	var file fileConfig
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fileConfig{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return file, nil
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func orString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func orInt(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}

func orBool(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
