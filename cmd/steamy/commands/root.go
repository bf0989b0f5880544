package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"steamy/cmd/steamy/globals"
	"steamy/lib/configutil"
	"steamy/lib/restyutil"
	"steamy/lib/steam"
	"steamy/lib/steam/community"
	"steamy/lib/steam/market"
	"steamy/lib/steam/webapi"
	"steamy/lib/steam/workshop"
	"steamy/lib/telemetry"

	"github.com/spf13/cobra"
)

var (
	configPath string
	appID      int
	strict     bool
	verbose    bool
	dumpDir    string
)

var rootCmd = &cobra.Command{
	Use:   "steamy",
	Short: "steamy is a CLI for reading the Steam community market, workshop and groups.",

	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		err := globals.Get(cmd.Context()).Telemetry.Shutdown(context.Background())
		if err != nil {
			slog.Warn("failed to shutdown telemetry", "err", err)
		}
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "steamy.json5", "The config file (.json5, .json, .yaml), <name>.local.<ext> is merged on top.")
	flags.IntVar(&appID, "app", 0, "The app id to query, overrides the config.")
	flags.BoolVar(&strict, "strict", false, "Fail instead of returning empty prices or listings.")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Log debug output.")
	flags.StringVar(&dumpDir, "dump", "", "Write every http exchange to this directory.")
}

func readConfig() (steam.FileConfig, error) {
	fileConfig, err := configutil.ReadConfig[steam.FileConfig](configPath)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("no config file found, using defaults", "path", configPath)
		return steam.FileConfig{}, nil
	}
	return fileConfig, err
}

func setup(cmd *cobra.Command, args []string) error {
	telemetry.InitSlog(verbose)

	fileConfig, err := readConfig()
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	otel, err := telemetry.Setup(cmd.Context(), "steamy", fileConfig.Telemetry)
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}

	cfg := fileConfig.ToConfig()
	if appID != 0 {
		cfg.AppID = appID
	}
	if strict {
		cfg.Strict = true
	}

	var tel telemetry.API = telemetry.SlogAPI{}
	http, err := steam.NewHTTPClient(cfg, tel)
	if err != nil {
		return err
	}
	if dumpDir != "" {
		output, err := restyutil.NewFilesystemOutput(dumpDir)
		if err != nil {
			return fmt.Errorf("create dump directory: %w", err)
		}
		restyutil.Dump(http, output)
	}

	cmd.SetContext(globals.Set(cmd.Context(), &globals.Value{
		Config:    cfg,
		Tel:       tel,
		Telemetry: otel,
		Market:    market.NewClient(http, cfg, tel),
		Workshop:  workshop.NewScraper(http, cfg, tel),
		Community: community.NewClient(http, cfg, tel),
		WebAPI:    webapi.NewClient(http, cfg, tel),
	}))
	return nil
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
