package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"seawatch/internal/admin"
	"seawatch/internal/config"
	"seawatch/internal/engine"
	"seawatch/internal/logging"
)

var (
	watchConfigPath string
	watchSchemaPath string
	watchFeed       string
	watchTick       time.Duration
	watchPrintOnly  bool
	watchColor      bool
	watchTUI        bool
	watchLogFile    string
	watchTrackFile  string
	watchTrackDB    string
	watchAdminAddr  string
	watchHorizon    float64
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the live awareness loop",
	Long:  "watch pulls sighting batches from a feed on a fixed interval, scores them, and serves the latest picture over HTTP.",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.New()
		ctx := logging.NewContext(cmd.Context(), log)

		cfg, err := config.Load(watchConfigPath, watchSchemaPath)
		if err != nil {
			return err
		}
		if cid := os.Getenv("SEAWATCH_CLUSTER_ID"); cid != "" {
			cfg.ClusterID = cid
		}

		out, err := newSinks(watchPrintOnly, watchColor, watchTUI, watchLogFile)
		if err != nil {
			return err
		}
		defer out.cleanup()

		tracks, persist, err := openTracks(cfg, watchTrackFile, watchTrackDB)
		if err != nil {
			return err
		}

		tick := watchTick
		if envTick := os.Getenv("SEAWATCH_TICK_INTERVAL"); envTick != "" {
			d, err := time.ParseDuration(envTick)
			if err != nil {
				return err
			}
			tick = d
		}

		e := engine.New(cfg, tracks, out.threat, out.formation, out.prediction, out.sighting)
		e.SetHorizon(watchHorizon)

		src, err := engine.OpenFeedFile(watchFeed)
		if err != nil {
			return err
		}
		defer src.Close()

		if watchAdminAddr != "" {
			srv := admin.NewServer(e)
			go func() {
				log.Info("admin UI listening", "addr", watchAdminAddr)
				if err := srv.Start(watchAdminAddr); err != nil && err != http.ErrServerClosed {
					log.Error("admin server failed", "err", err)
				}
			}()
		}

		ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := e.Run(ctx, src, tick); err != nil {
			return err
		}
		if err := persist(); err != nil {
			return err
		}
		log.Info("watch stopped")
		return nil
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchConfigPath, "config", "config/seawatch.yaml", "Path to engine configuration YAML")
	watchCmd.Flags().StringVar(&watchSchemaPath, "schema", "schemas/seawatch.cue", "Path to CUE schema file")
	watchCmd.Flags().StringVar(&watchFeed, "feed", "", "Path to JSONL sighting feed")
	watchCmd.Flags().DurationVar(&watchTick, "tick", time.Minute, "Refresh cycle interval (e.g. 30s, 1m)")
	watchCmd.Flags().BoolVar(&watchPrintOnly, "print-only", false, "Print rows to STDOUT instead of writing to DB")
	watchCmd.Flags().BoolVar(&watchColor, "color", false, "Render a colorized threat board on STDOUT")
	watchCmd.Flags().BoolVar(&watchTUI, "tui", false, "Render a live TUI threat board")
	watchCmd.Flags().StringVar(&watchLogFile, "log-file", "", "Path to export rows as JSONL")
	watchCmd.Flags().StringVar(&watchTrackFile, "track-file", "", "Path to persist vessel history as JSON")
	watchCmd.Flags().StringVar(&watchTrackDB, "track-db", "", "Badger directory to persist vessel history")
	watchCmd.Flags().StringVar(&watchAdminAddr, "admin-addr", ":8080", "Listen address for the admin UI (empty to disable)")
	watchCmd.Flags().Float64Var(&watchHorizon, "horizon", engine.DefaultHorizonHours, "Prediction lookahead in hours")
	watchCmd.MarkFlagRequired("feed")
}
