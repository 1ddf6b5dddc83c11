package main

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/citycat/adoption-engine/internal/config"
	httpapi "github.com/citycat/adoption-engine/internal/http"
	"github.com/citycat/adoption-engine/internal/matching"
	"github.com/citycat/adoption-engine/internal/platform/logger"
	"github.com/citycat/adoption-engine/internal/scoring"
	"github.com/citycat/adoption-engine/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the rules-engine API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return err
	}
	defer log.Sync()

	store, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.EnsureSchema(); err != nil {
		return err
	}
	if err := seedIfEmpty(store, cfg.FixturesDir, log); err != nil {
		return err
	}

	weights, err := scoring.LoadWeightsFromFile(cfg.WeightsPath)
	if err != nil {
		log.Warn("using default scoring weights", "reason", err)
		weights = scoring.DefaultWeights()
	}

	srv := httpapi.NewServer(
		scoring.NewEngine(weights),
		matching.NewEngine(),
		httpapi.NewSQLiteRepos(store).Bundle(),
		log,
	)

	log.Info("API listening", "address", cfg.Address)
	return http.ListenAndServe(cfg.Address, srv.Routes())
}

// seedIfEmpty loads the cat fixtures on first run so a fresh database is
// immediately usable by the matching wizard.
func seedIfEmpty(store *storage.SQLiteStore, fixturesDir string, log *logger.Logger) error {
	n, err := store.CountCats()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	path := filepath.Join(fixturesDir, "cats.json")
	if _, err := os.Stat(path); err != nil {
		log.Warn("no cat fixtures found, starting empty", "path", path)
		return nil
	}
	cats, err := storage.LoadCatsFromFile(path)
	if err != nil {
		return err
	}
	if err := store.UpsertCats(cats); err != nil {
		return err
	}
	log.Info("seeded cats from fixtures", "count", len(cats))
	return nil
}
