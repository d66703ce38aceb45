package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/minesweeper-engine/internal/app"
	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

var (
	log = logrus.New()

	configPath string
)

func init() {
	const usage = "config file path"
	flag.StringVar(&configPath, "config", "", usage)
	flag.StringVar(&configPath, "c", "", usage+" (shorthand)")
}

func setupLogging(c config.Config) {
	logLevel := logrus.InfoLevel
	if c.Development() {
		logLevel = logrus.DebugLevel
	}
	log.SetLevel(logLevel)

	if c.Development() {
		log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	if c.Log.File != "" {
		hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   c.Log.File,
			MaxSize:    c.Log.MaxSizeMB,
			MaxBackups: c.Log.MaxBackups,
			MaxAge:     c.Log.MaxAgeDays,
			Level:      logLevel,
			Formatter:  &logrus.JSONFormatter{TimestampFormat: time.RFC3339},
		})
		if err != nil {
			log.Fatal("unable to open log file: ", err)
		}
		log.AddHook(hook)
	}

	mines.Log = log
}

func main() {
	mainCtx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	flag.Parse()

	c, err := config.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}

	setupLogging(c)

	log.Info("starting up, mode = ", c.Mode)
	log.WithFields(c.Fields()).Debug("config")

	a, err := app.New(log, c)
	if err != nil {
		log.Fatal("unable to set up server: ", err)
	}

	if err := a.Start(mainCtx); err != nil {
		log.Printf("exit reason: %s\n", err)
	}
}
