package commands

import (
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"goalpulse/internal/api"
	"goalpulse/internal/config"
	"goalpulse/internal/engine"
	"goalpulse/internal/insights"
	"goalpulse/internal/logging"
	"goalpulse/internal/store"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig
	db      store.Store
	eng     *engine.Engine
)

var rootCmd = &cobra.Command{
	Use:   "goalpulse",
	Short: "GoalPulse serves goal and task progress analytics",
	Long: `GoalPulse computes progress statistics, completion streaks and a smart-focus
recommendation from stored goal and task records, and caches AI-generated
insight narratives with a seven-day time-to-live. Run without arguments to
serve the JSON API the mobile app consumes.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		db, err = store.Open(cfg.Storage)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open storage backend")
		}

		var mgr *insights.Manager
		if cfg.Insights.URL != "" {
			mgr = insights.NewManager(insights.NewClient(cfg.Insights), db, cfg.InsightsTTL)
		} else {
			log.Debug().Msg("No insights service configured, static defaults only")
		}
		eng = engine.New(db, mgr)

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Str("backend", cfg.Storage.Backend).
			Msg("GoalPulse starting")
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db != nil {
			_ = db.Close()
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		handler := api.New(eng)
		log.Info().Str("addr", cfg.HTTPAddr).Msg("HTTP API listening")
		if err := http.ListenAndServe(cfg.HTTPAddr, handler); err != nil {
			log.Fatal().Err(err).Msg("HTTP server stopped")
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(insightsCmd)
	rootCmd.AddCommand(seedCmd)
}
