package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/captmoose/internal/config"
	"github.com/ironsheep/captmoose/internal/imaging"
	"github.com/ironsheep/captmoose/internal/logging"
	"github.com/ironsheep/captmoose/internal/moose"
	"github.com/ironsheep/captmoose/internal/store"
)

// LogLevelEnv overrides the default log level when --log-level is not given.
const LogLevelEnv = "CAPTMOOSE_LOG_LEVEL"

// BuildInfo is the version information set by ldflags.
type BuildInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

// app is the state shared by every subcommand.
type app struct {
	build      BuildInfo
	configPath string
	logLevel   string
	logOutput  io.Writer

	cfg config.Config
	def *moose.Def
}

// NewRootCmd builds the captmoose command tree.
func NewRootCmd(build BuildInfo) *cobra.Command {
	return newRootCmd(&app{build: build, logOutput: os.Stderr})
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "captmoose",
		Short: "Draw, store and share palette pixel-art moose",
		Long: `captmoose keeps a collection of small palette pixel-art pictures
(moose) and shows them as PNG images, in a terminal or in an IRC channel.

Configuration is read from ~/.config/captmoose/config.yaml and then
./.captmoose/config.yaml, or from the file given with --config.`,
		// SilenceUsage is set to true to prevent printing usage message on errors
		// handled by us (e.g. unknown moose, bad pictures)
		SilenceUsage:      true,
		Version:           a.build.Version,
		PersistentPreRunE: a.setup,
	}
	rootCmd.SetVersionTemplate(`{{printf "captmoose version %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: layered user and project config)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error (default from "+LogLevelEnv+", else info)")

	rootCmd.AddCommand(
		newServeCmd(a),
		newShowCmd(a),
		newChatCmd(a),
		newExportCmd(a),
		newImportPNGCmd(a),
		newImportLegacyCmd(a),
		newVersionCmd(a),
	)
	return rootCmd
}

// Execute runs the command tree and returns the process exit code.
func Execute(build BuildInfo) int {
	if err := NewRootCmd(build).Execute(); err != nil {
		// Cobra prints the error, we just exit non-zero
		return 1
	}
	return 0
}

// setup initialises logging and loads the configuration.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	level := a.logLevel
	if level == "" {
		level = os.Getenv(LogLevelEnv)
	}
	logging.Init(logging.ParseLevel(level), a.logOutput)

	var err error
	if a.configPath != "" {
		a.cfg, err = config.LoadConfigFile(a.configPath)
	} else {
		a.cfg, err = config.LoadConfig()
	}
	if err != nil {
		return err
	}

	a.def, err = a.cfg.Def()
	if err != nil {
		return err
	}
	logging.Debug("CLI", "Running %s with %dx%d moose, %d colours", cmd.Name(), a.def.Width, a.def.Height, a.def.Palette.Len())
	return nil
}

func (a *app) openStore() (*store.Store, error) {
	st, err := store.Open(a.def, store.Options{
		Dir:           a.cfg.Storage.Dir,
		CacheTTL:      a.cfg.Storage.CacheTTL,
		MinNameLength: a.cfg.Moose.MinNameLength,
		MaxNameLength: a.cfg.Moose.MaxNameLength,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return st, nil
}

func (a *app) canvas() imaging.Options {
	return imaging.Options{
		CellWidth:  a.cfg.Canvas.CellWidth,
		CellHeight: a.cfg.Canvas.CellHeight,
		GridColor:  a.cfg.Canvas.GridColor,
		Scale:      1,
	}
}
