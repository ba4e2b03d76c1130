package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(),
		"Usage: %s [flags] <image> <image> [<image>...]\n\n"+
			"Interpolates between the given images and writes the frames as a\n"+
			"numbered image sequence ready for a video encoder.\n\nFlags:\n",
		os.Args[0])
	flag.PrintDefaults()
}

func main() {
	// cli arguments
	configPath := flag.String("config_path", "./config.yml", "Path to the config yml file")
	frames := flag.Int("frames", 0, "Number of intermediate frames between each pair of images")
	outDir := flag.String("outdir", "", "Directory to save the frames to")
	format := flag.String("format", "", "Output image format (png, jpeg, bmp, tiff)")
	workers := flag.Int("workers", 0, "Number of blend workers per frame")
	flag.Usage = usage
	flag.Parse()

	config, err := GetConfig(*configPath)
	if err != nil {
		log.WithField("stage", "config").Fatal(err)
	}

	// Explicit flags win over the config file and env variables
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "frames":
			config.FrameCount = frames
		case "outdir":
			config.OutDir = *outDir
		case "format":
			config.Format = *format
		case "workers":
			config.Workers = *workers
		}
	})

	if err := verifyConfig(&config); err != nil {
		log.WithField("stage", "config").Fatal(err)
	}

	logger := SetupLogger(&config)
	logger.WithFields(log.Fields{
		"outDir":   config.OutDir,
		"frames":   *config.FrameCount,
		"format":   config.Format,
		"resample": config.Resample,
		"blend":    config.Blend,
		"easing":   config.Easing,
		"workers":  config.Workers,
	}).Debug("Loaded config")

	run, err := NewRun(&config, logger, flag.Args())
	if err != nil {
		logger.WithField("stage", "setup").Fatal(err)
	}

	written, err := run.Execute(context.Background())
	if err != nil {
		logger.WithFields(log.Fields{
			"stage":         "run",
			"framesWritten": written,
		}).Fatal(err)
	}

	logger.WithFields(log.Fields{
		"frames": written,
		"outDir": config.OutDir,
	}).Info("Interpolation complete")
}
