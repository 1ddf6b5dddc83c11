package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/citycat/adoption-engine/internal/config"
	"github.com/citycat/adoption-engine/internal/platform/logger"
	"github.com/citycat/adoption-engine/internal/storage"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load cat, feature-flag, and affiliation fixtures into the database",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
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

	if path := fixture(cfg.FixturesDir, "cats.json"); path != "" {
		cats, err := storage.LoadCatsFromFile(path)
		if err != nil {
			return err
		}
		if err := store.UpsertCats(cats); err != nil {
			return err
		}
		log.Info("seeded cats", "count", len(cats))
	}

	if path := fixture(cfg.FixturesDir, "flags.json"); path != "" {
		flags, err := storage.LoadFlagsFromFile(path)
		if err != nil {
			return err
		}
		if err := store.UpsertFlags(flags); err != nil {
			return err
		}
		log.Info("seeded feature flags", "count", len(flags))
	}

	if path := fixture(cfg.FixturesDir, "affiliations.json"); path != "" {
		affs, err := storage.LoadAffiliationsFromFile(path)
		if err != nil {
			return err
		}
		if err := store.UpsertAffiliations(affs); err != nil {
			return err
		}
		log.Info("seeded affiliations", "count", len(affs))
	}

	return nil
}

// fixture returns the path if the file exists, "" otherwise.
func fixture(dir, name string) string {
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
