package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/acronis/go-scoop/pkg/bucket"
	"github.com/acronis/go-scoop/pkg/manifest"
	"github.com/acronis/go-scoop/pkg/storage"
	"github.com/acronis/go-scoop/pkg/storage/githubstorage"
)

type Config struct {
	Listen   string   `yaml:"listen"`
	GitHub   GitHub   `yaml:"github"`
	Index    Index    `yaml:"index"`
	Manifest Manifest `yaml:"manifest"`
	Metrics  Metrics  `yaml:"metrics"`
}

type GitHub struct {
	BaseURL string        `yaml:"base_url"`
	Token   string        `yaml:"token"`
	Timeout time.Duration `yaml:"timeout"`
}

// Index locates the bucket index file.
type Index struct {
	User   string `yaml:"user"`
	Repo   string `yaml:"repo"`
	Branch string `yaml:"branch"`
	File   string `yaml:"file"`
}

func (i Index) Location() storage.Location {
	return storage.Location{User: i.User, Repo: i.Repo, Branch: i.Branch, Path: i.File}
}

type Manifest struct {
	Branch string `yaml:"branch"`
}

type Metrics struct {
	Namespace string `yaml:"namespace"`
	// Buckets are the histogram buckets in seconds. Empty keeps the Prometheus defaults.
	Buckets []float64 `yaml:"buckets"`
}

func Default() Config {
	return Config{
		Listen: ":8080",
		GitHub: GitHub{
			BaseURL: githubstorage.DefaultBaseURL,
			Timeout: githubstorage.DefaultRequestTimeout,
		},
		Index: Index{
			User:   bucket.IndexUser,
			Repo:   bucket.IndexRepo,
			Branch: bucket.IndexBranch,
			File:   bucket.IndexFile,
		},
		Manifest: Manifest{Branch: manifest.DefaultBranch},
		Metrics:  Metrics{Namespace: "scoop"},
	}
}

// Load reads the YAML file at path over the defaults. An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.GitHub.BaseURL == "" {
		errs = append(errs, errors.New("github.base_url is required"))
	}
	if c.GitHub.Timeout < 0 {
		errs = append(errs, errors.New("github.timeout must not be negative"))
	}
	if c.Index.User == "" || c.Index.Repo == "" || c.Index.Branch == "" || c.Index.File == "" {
		errs = append(errs, errors.New("index.user, index.repo, index.branch and index.file are required"))
	}
	if c.Manifest.Branch == "" {
		errs = append(errs, errors.New("manifest.branch is required"))
	}
	for i := 1; i < len(c.Metrics.Buckets); i++ {
		if c.Metrics.Buckets[i] <= c.Metrics.Buckets[i-1] {
			errs = append(errs, errors.New("metrics.buckets must be in increasing order"))
			break
		}
	}
	return errors.Join(errs...)
}
