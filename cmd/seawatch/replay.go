package main

import (
	"os"

	"github.com/spf13/cobra"

	"seawatch/internal/config"
	"seawatch/internal/engine"
	"seawatch/internal/logging"
)

var (
	replayConfigPath string
	replaySchemaPath string
	replayInput      string
	replaySpeed      float64
	replayPrintOnly  bool
	replayColor      bool
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a recorded sighting feed",
	Long:  "replay feeds recorded sighting batches back through the engine, reproducing the recorded cycle gaps scaled by --speed.",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.New()
		ctx := logging.NewContext(cmd.Context(), log)

		cfg, err := config.Load(replayConfigPath, replaySchemaPath)
		if err != nil {
			return err
		}
		if cid := os.Getenv("SEAWATCH_CLUSTER_ID"); cid != "" {
			cfg.ClusterID = cid
		}

		out, err := newSinks(replayPrintOnly, replayColor, false, "")
		if err != nil {
			return err
		}
		defer out.cleanup()

		e := engine.New(cfg, nil, out.threat, out.formation, out.prediction, out.sighting)

		src, err := engine.OpenFeedFile(replayInput)
		if err != nil {
			return err
		}
		defer src.Close()

		return engine.Replay(ctx, src, e, replaySpeed)
	},
}

func init() {
	replayCmd.Flags().StringVar(&replayConfigPath, "config", "config/seawatch.yaml", "Path to engine configuration YAML")
	replayCmd.Flags().StringVar(&replaySchemaPath, "schema", "schemas/seawatch.cue", "Path to CUE schema file")
	replayCmd.Flags().StringVar(&replayInput, "input", "", "Path to recorded JSONL sighting feed")
	replayCmd.Flags().Float64Var(&replaySpeed, "speed", 1.0, "Playback speed multiplier (<= 0 for no delay)")
	replayCmd.Flags().BoolVar(&replayPrintOnly, "print-only", false, "Print rows to STDOUT instead of writing to DB")
	replayCmd.Flags().BoolVar(&replayColor, "color", false, "Render a colorized threat board on STDOUT")
	replayCmd.MarkFlagRequired("input")
}
