// Package main implements the petd pet-care TUI.
package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"petd/internal/alerts"
	"petd/internal/config"
	"petd/internal/storage"
	"petd/internal/update"
)

var version = "dev"

var (
	flagConfigPath string
	flagDBPath     string
	flagPet        string
)

var rootCmd = &cobra.Command{
	Use:   "petd",
	Short: "petd - recurring pet care tasks in your terminal",
	RunE:  runTUI,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the petd version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "petd", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "path to config file (default: user config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "path to the sqlite database (overrides config)")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(todayCmd)
	addStoreFlagAliases(rootCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "petd failed: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, repo, err := openStore()
	if err != nil {
		return err
	}
	defer repo.Close()

	engine := alerts.NewEngine(cfg.AlertBuffer)
	engine.Start()
	defer engine.Stop()

	program := tea.NewProgram(update.NewApp(repo, engine, cfg))
	_, err = program.Run()
	return err
}

// openStore loads the config, opens the database, and applies pending
// migrations. The db path from --db wins over the config file.
func openStore() (config.Config, *storage.SQLiteRepository, error) {
	path := flagConfigPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}
	if flagDBPath != "" {
		cfg.DBPath = flagDBPath
	}
	if !filepath.IsAbs(cfg.DBPath) {
		cfg.DBPath = filepath.Join(filepath.Dir(path), cfg.DBPath)
	}

	db, err := sql.Open("sqlite3", cfg.DBPath)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("open database: %w", err)
	}
	if err := storage.MigrateUp(db); err != nil {
		_ = db.Close()
		return config.Config{}, nil, fmt.Errorf("migrate database: %w", err)
	}
	repo, err := storage.NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return config.Config{}, nil, err
	}
	return cfg, repo, nil
}
