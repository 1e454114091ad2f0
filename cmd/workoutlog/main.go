package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/alexanderramin/workoutlog/internal/cli"
	"github.com/alexanderramin/workoutlog/internal/config"
	"github.com/alexanderramin/workoutlog/internal/db"
	"github.com/alexanderramin/workoutlog/internal/domain"
	"github.com/alexanderramin/workoutlog/internal/repository"
	"github.com/alexanderramin/workoutlog/internal/service"
	"github.com/alexanderramin/workoutlog/internal/storage"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		if !cli.AlreadyReported(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run() error {
	var database *sql.DB
	defer func() {
		if database != nil {
			database.Close()
		}
	}()

	app := &cli.App{}

	// Detect interactive terminal for forms, prompts and the browser.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Wiring waits for the root flags, which choose the config file and
	// whether anything touches disk.
	app.Connect = func(opts cli.ConnectOptions) error {
		path := opts.ConfigPath
		if path == "" {
			path = config.DefaultPath()
		}
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		if opts.Ephemeral {
			cfg.DBPath = db.MemoryPath
		}

		var kv storage.TxStore
		if cfg.Ephemeral() {
			kv = storage.NewMemoryStore(storage.WithMaxValueBytes(cfg.MaxValueBytes))
		} else {
			database, err = db.OpenDB(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			kv = storage.NewSQLiteStore(database, storage.WithMaxValueBytes(cfg.MaxValueBytes))
		}

		var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
		if cfg.LogUseCases {
			observer = service.NewLogUseCaseObserver(os.Stderr)
		}

		entries := repository.NewKVEntryStore(kv, cfg.StorageKey)
		app.Entries = service.NewEntryService(entries, domain.Factory{}, observer)
		app.WorkoutTypes = cfg.WorkoutTypes
		return nil
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
