package app

import (
	"errors"
	"time"

	"github.com/vk/mppimport/internal/model"
	"github.com/vk/mppimport/internal/publish"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	SnapshotPath string // hcl file or directory
	ModelName    string
	OutputPath   string // empty writes to the app's output writer

	PublishURL     string
	PublishEvent   string
	PublishTimeout time.Duration

	S3 publish.S3Config

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.SnapshotPath == "" {
		return nil, errors.New("SnapshotPath is a required configuration field and cannot be empty")
	}
	if cfg.ModelName == "" {
		cfg.ModelName = model.Name
	}
	if cfg.PublishTimeout < 0 {
		return nil, errors.New("PublishTimeout cannot be negative")
	}
	if cfg.PublishURL != "" && cfg.PublishEvent == "" {
		return nil, errors.New("PublishURL requires PublishEvent")
	}
	if cfg.S3.Enabled() && cfg.S3.Bucket == "" {
		return nil, errors.New("S3 endpoint requires a bucket")
	}
	return &cfg, nil
}
