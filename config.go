package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type Config struct {
	OutDir       string `yaml:"outDir"`
	FrameCount   *int   `yaml:"frameCount"`
	Format       string `yaml:"format"`
	Resample     string `yaml:"resample"`
	Blend        string `yaml:"blend"`
	Easing       string `yaml:"easing"`
	Workers      int    `yaml:"workers"`
	WriteWorkers int    `yaml:"writeWorkers"`
	JPEGQuality  int    `yaml:"jpegQuality"`
	LogPath      string `yaml:"logPath"`
	LogLevel     string `yaml:"logLevel"`
}

// Verify config and set defaults
func verifyConfig(config *Config) error {
	if config == nil {
		return errors.New("cannot verify config, config is nil")
	}

	if config.OutDir == "" {
		config.OutDir = "frames"
	}

	if config.FrameCount == nil {
		defaultVal := 50
		config.FrameCount = &defaultVal
	}

	if *config.FrameCount < 0 {
		return errors.New("frame count cannot be negative")
	}

	if config.Format == "" {
		config.Format = "png"
	}

	if config.Format == "jpg" {
		config.Format = "jpeg"
	}

	switch config.Format {
	case "png", "jpeg", "bmp", "tiff":
	default:
		return fmt.Errorf("unknown output format %q", config.Format)
	}

	if config.Resample == "" {
		config.Resample = "bilinear"
	}

	if config.Blend == "" {
		config.Blend = "rgb"
	}

	if config.Easing == "" {
		config.Easing = "linear"
	}

	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}

	if config.WriteWorkers <= 0 {
		config.WriteWorkers = 2
	}

	if config.JPEGQuality <= 0 {
		config.JPEGQuality = 90
	}

	if config.LogPath == "" {
		config.LogPath = "./logs"
	}

	if config.LogLevel == "" {
		config.LogLevel = "debug"
	}

	if _, err := log.ParseLevel(config.LogLevel); err != nil {
		return fmt.Errorf("unknown log level %q", config.LogLevel)
	}

	return nil
}

func GetConfig(path string) (Config, error) {
	config := Config{}

	// The config file is optional, defaults cover everything.
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &config); err != nil {
			return Config{}, err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}

	// Override with env variables if they are passed in
	err = envconfig.Process("interpol", &config)
	if err != nil {
		return Config{}, err
	}

	err = verifyConfig(&config)
	if err != nil {
		return Config{}, err
	}

	return config, nil
}
