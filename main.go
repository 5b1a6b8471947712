package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sadopc/katsayi/internal/config"
	"github.com/sadopc/katsayi/internal/logger"
	"github.com/sadopc/katsayi/internal/prefs"
	"github.com/sadopc/katsayi/internal/record"
	"github.com/sadopc/katsayi/internal/tui"
)

func main() {
	configFile := flag.String("config", "", "path to config.yaml (default "+config.DefaultPath()+")")
	envFile := flag.String("env", ".env", "path to an optional .env file")
	flag.Parse()

	cfg, err := config.Load(*configFile, *envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening log: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	p, err := prefs.New(cfg.DBPath)
	if err != nil {
		log.Error("open preferences", zap.String("path", cfg.DBPath), zap.Error(err))
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer p.Close()

	log.Info("starting", zap.String("db", cfg.DBPath), zap.String("export_dir", cfg.ExportDir))

	app := tui.NewApp(record.NewStore(), p, cfg.ExportDir, log)
	prog := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := prog.Run(); err != nil {
		log.Error("program exited", zap.Error(err))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
