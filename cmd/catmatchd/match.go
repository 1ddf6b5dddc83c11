package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/citycat/adoption-engine/internal/domain"
	"github.com/citycat/adoption-engine/internal/matching"
	"github.com/citycat/adoption-engine/internal/storage"
)

var matchLimit int

var matchCmd = &cobra.Command{
	Use:   "match [answers.json] [cats.json]",
	Short: "Rank cats from a fixture file against a lifestyle questionnaire",
	Args:  cobra.ExactArgs(2),
	RunE:  runMatch,
}

func init() {
	rootCmd.AddCommand(matchCmd)
	matchCmd.Flags().IntVar(&matchLimit, "limit", 0, "keep only the top N results (0 = all)")
}

func runMatch(cmd *cobra.Command, args []string) error {
	b, err := os.ReadFile(args[0])
	if err != nil {
		return errors.Wrap(err, "read answers")
	}
	var answers domain.LifestyleAnswers
	if err := json.Unmarshal(b, &answers); err != nil {
		return errors.Wrap(err, "unmarshal answers")
	}

	cats, err := storage.LoadCatsFromFile(args[1])
	if err != nil {
		return err
	}

	results := matching.NewEngine().MatchAll(answers, cats)
	if matchLimit > 0 && len(results) > matchLimit {
		results = results[:matchLimit]
	}

	enc, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(enc))
	return nil
}
