package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"edit2d/internal/config"
	"edit2d/internal/editor"
)

func main() {
	path := "editor.toml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := config.BuildLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := editor.New(cfg, log).Run(); err != nil {
		log.Fatal("editor exited with error", zap.Error(err))
	}
}
