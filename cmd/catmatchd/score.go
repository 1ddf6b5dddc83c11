package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/citycat/adoption-engine/internal/domain"
	"github.com/citycat/adoption-engine/internal/scoring"
)

var scoreWeightsPath string

var scoreCmd = &cobra.Command{
	Use:   "score [application.json]",
	Short: "Score one adoption application from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)
	scoreCmd.Flags().StringVar(&scoreWeightsPath, "weights", "", "criterion weights JSON file (default: built-in weights)")
}

func runScore(cmd *cobra.Command, args []string) error {
	b, err := os.ReadFile(args[0])
	if err != nil {
		return errors.Wrap(err, "read application")
	}
	var app domain.AdoptionApplication
	if err := json.Unmarshal(b, &app); err != nil {
		return errors.Wrap(err, "unmarshal application")
	}

	weights := scoring.DefaultWeights()
	if scoreWeightsPath != "" {
		if weights, err = scoring.LoadWeightsFromFile(scoreWeightsPath); err != nil {
			return err
		}
	}

	result := scoring.NewEngine(weights).Score(app)
	out := struct {
		scoring.Result
		Tier scoring.Tier `json:"tier"`
	}{result, scoring.ScoreTier(result.Total)}

	enc, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(enc))
	return nil
}
