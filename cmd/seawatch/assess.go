package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"seawatch/internal/config"
	"seawatch/internal/engine"
	"seawatch/internal/logging"
)

var (
	assessConfigPath string
	assessSchemaPath string
	assessFeed       string
	assessColor      bool
	assessLogFile    string
	assessTrackFile  string
	assessTrackDB    string
	assessHorizon    float64
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Score a sighting feed once and exit",
	Long:  "assess runs every batch from a JSONL feed through the engine back to back, without a ticker or HTTP surface.",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.New()
		ctx := logging.NewContext(cmd.Context(), log)

		cfg, err := config.Load(assessConfigPath, assessSchemaPath)
		if err != nil {
			return err
		}
		if cid := os.Getenv("SEAWATCH_CLUSTER_ID"); cid != "" {
			cfg.ClusterID = cid
		}

		out, err := newSinks(true, assessColor, false, assessLogFile)
		if err != nil {
			return err
		}
		defer out.cleanup()

		tracks, persist, err := openTracks(cfg, assessTrackFile, assessTrackDB)
		if err != nil {
			return err
		}

		e := engine.New(cfg, tracks, out.threat, out.formation, out.prediction, out.sighting)
		e.SetHorizon(assessHorizon)

		src, err := engine.OpenFeedFile(assessFeed)
		if err != nil {
			return err
		}
		defer src.Close()

		for {
			batch, err := src.Next()
			if err != nil {
				if err == io.EOF {
					break
				}
				return err
			}
			e.RunCycle(ctx, batch)
		}
		return persist()
	},
}

func init() {
	assessCmd.Flags().StringVar(&assessConfigPath, "config", "config/seawatch.yaml", "Path to engine configuration YAML")
	assessCmd.Flags().StringVar(&assessSchemaPath, "schema", "schemas/seawatch.cue", "Path to CUE schema file")
	assessCmd.Flags().StringVar(&assessFeed, "feed", "", "Path to JSONL sighting feed")
	assessCmd.Flags().BoolVar(&assessColor, "color", false, "Render a colorized threat board on STDOUT")
	assessCmd.Flags().StringVar(&assessLogFile, "log-file", "", "Path to export rows as JSONL")
	assessCmd.Flags().StringVar(&assessTrackFile, "track-file", "", "Path to persist vessel history as JSON")
	assessCmd.Flags().StringVar(&assessTrackDB, "track-db", "", "Badger directory to persist vessel history")
	assessCmd.Flags().Float64Var(&assessHorizon, "horizon", engine.DefaultHorizonHours, "Prediction lookahead in hours")
	assessCmd.MarkFlagRequired("feed")
}
