package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/leaguesim/league-sim/sim"
	"github.com/leaguesim/league-sim/sim/league"
	"github.com/leaguesim/league-sim/sim/report"
	"github.com/leaguesim/league-sim/sim/store"
)

var (
	seed             int64  // Seed for every random stream
	logLevel         string // Log verbosity level
	configPath       string // Run config YAML
	leagueConfigPath string // League lottery tunables YAML
	worldPath        string // World file YAML (empty = generated)
	years            int    // Number of years to simulate
	dbDSN            string // History store: sqlite path or postgres:// URL
	archivePath      string // zstd chronicle archive output path
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "league-sim",
	Short: "Generative simulator of sports leagues founded over a country's cities",
}

// runCmd simulates a history and prints it
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate league histories",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel(logLevel)

		cfg := sim.DefaultSimConfig()
		if configPath != "" {
			loaded, err := sim.LoadSimConfig(configPath)
			if err != nil {
				logrus.Fatalf("Failed to load run config: %v", err)
			}
			cfg = loaded
		}
		// CLI flags override file values only when set explicitly.
		if cmd.Flags().Changed("seed") {
			cfg.Seed = seed
		}
		if cmd.Flags().Changed("world") {
			cfg.WorldFile = worldPath
		}
		if cmd.Flags().Changed("years") {
			cfg.Years = years
		}
		if err := cfg.Validate(); err != nil {
			logrus.Fatalf("Invalid run config: %v", err)
		}

		leagueCfg := league.DefaultConfig()
		if leagueConfigPath != "" {
			loaded, err := league.LoadConfig(leagueConfigPath)
			if err != nil {
				logrus.Fatalf("Failed to load league config: %v", err)
			}
			leagueCfg = loaded
		}

		startTime := time.Now()
		out := runOutputs{DSN: dbDSN, ArchivePath: archivePath}
		if err := runSimulation(cmd.Context(), cfg, leagueCfg, out, os.Stdout); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Infof("Simulation complete in %s.", time.Since(startTime).Round(time.Millisecond))
	},
}

func setLogLevel(name string) {
	level, err := logrus.ParseLevel(name)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", name)
	}
	logrus.SetLevel(level)
}

// runOutputs names the optional destinations of a run besides the rendered text.
type runOutputs struct {
	DSN         string // history store; empty = none
	ArchivePath string // chronicle archive; empty = none
}

// runSimulation builds the world, runs every year and renders the history to w.
func runSimulation(ctx context.Context, cfg *sim.SimConfig, leagueCfg *league.Config, out runOutputs, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(cfg.Seed))
	country, err := sim.BuildCountry(cfg, rng)
	if err != nil {
		return err
	}

	chron := report.NewChronicle(cfg.Seed)
	sinks := report.MultiSink{chron}
	if out.DSN != "" {
		st, err := store.Open(out.DSN)
		if err != nil {
			return fmt.Errorf("opening history store: %w", err)
		}
		defer st.Close()
		runID, err := st.BeginRun(cfg.Seed)
		if err != nil {
			return err
		}
		logrus.Infof("Recording history as run %d", runID)
		sinks = append(sinks, st)
	}

	s, err := sim.NewSimulator(cfg, leagueCfg, country, rng, sinks)
	if err != nil {
		return err
	}
	if err := s.Run(ctx); err != nil {
		return err
	}

	RenderHistory(w, s, chron)

	if out.ArchivePath != "" {
		if err := report.WriteArchive(out.ArchivePath, chron); err != nil {
			return fmt.Errorf("writing archive: %w", err)
		}
		logrus.Infof("Chronicle archived to %s", out.ArchivePath)
	}
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for world generation and every league's random stream")
	runCmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&configPath, "config", "", "Run config YAML (seed, years, founding years, world, seasons)")
	runCmd.Flags().StringVar(&leagueConfigPath, "league-config", "", "League lottery tunables YAML")
	runCmd.Flags().StringVar(&worldPath, "world", "", "World file YAML; cities are generated when empty")
	runCmd.Flags().IntVar(&years, "years", 100, "Number of years to simulate")
	runCmd.Flags().StringVar(&dbDSN, "db", "", "History store: sqlite file path or postgres:// URL")
	runCmd.Flags().StringVar(&archivePath, "archive", "", "Write the chronicle as zstd-compressed JSON to this path")

	serveCmd.Flags().StringVar(&serveLogLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	serveCmd.Flags().StringVar(&serveDSN, "db", "league.db", "History store: sqlite file path or postgres:// URL")
	serveCmd.Flags().StringVar(&listenAddr, "addr", ":8080", "HTTP listen address")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
}
