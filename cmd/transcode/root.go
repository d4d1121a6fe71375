package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/zoobzio/transcode"
	"github.com/zoobzio/transcode/internal/config"
	"github.com/zoobzio/transcode/internal/logging"
)

// app holds the state shared by every subcommand once the root has
// loaded configuration.
type app struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg      *config.Config
	registry *transcode.Registry
	svc      *transcode.Service
	log      *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "transcode",
		Short: "Encode files as primes, MIDI, or QR images and back",
		Long: "transcode wraps a file and its name in a small frame and renders it as a\n" +
			"decimal integer, a MIDI track, or a QR symbol. Every encoding decodes to\n" +
			"the identical bytes.",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: a.setup,
	}
	root.Version = version

	f := root.PersistentFlags()
	f.StringVar(&a.configPath, "config", config.DefaultPath, "Path to transcode.yml")
	f.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	f.StringVar(&a.logFormat, "log-format", "", "Log format: text or json (overrides config)")

	root.AddCommand(
		newEncodeCmd(a),
		newDecodeCmd(a),
		newPipelineCmd(a),
		newVerifyCmd(a),
		newDigestCmd(a),
		newInfoCmd(a),
	)
	return root
}

// setup loads config, initializes logging, and builds the service.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadOrDefault(a.configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}
	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	logging.Init(level, cfg.Log.Format, cmd.ErrOrStderr())

	registry, err := cfg.Registry()
	if err != nil {
		return err
	}
	hasher, err := cfg.Hasher()
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.registry = registry
	a.svc = transcode.NewService(transcode.WithRegistry(registry), transcode.WithHasher(hasher))
	a.log = logging.New(cmd.Name())
	a.log.Debug("configured", slog.String("config", a.configPath), slog.String("digest", cfg.Digest))
	return nil
}
