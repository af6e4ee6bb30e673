package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/grahms/notetag/internal/config"
	"github.com/grahms/notetag/internal/logging"
)

// rootOptions holds the flags shared by every subcommand.
type rootOptions struct {
	configFile string
	verbose    bool
}

// NewRootCmd creates the root command for the notetag CLI.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "notetag",
		Short: "Extract <name:value> notetags from text and event data",
		Long: `notetag reads angle-bracket annotations such as <hp:100>, <boss> or
<skill: fire, 20>Burns</skill> from free text and from the comment commands
of the host engine's map and troop data files.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file path")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	config.RegisterFlags(cmd.PersistentFlags())

	cmd.AddCommand(NewTagCmd(opts))
	cmd.AddCommand(NewScanCmd(opts))
	cmd.AddCommand(NewEventsCmd(opts))

	return cmd
}

// setup loads and validates the configuration for cmd and builds its logger.
func (o *rootOptions) setup(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(o.configFile, cmd.Flags())
	if err != nil {
		return config.Config{}, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, nil, err
	}

	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	log := logging.Setup("notetag", version, cfg.LogFormat, level, cmd.ErrOrStderr())
	return cfg, log, nil
}

// openInput returns the file named by args[0], or stdin when args is empty
// or "-".
func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, oops.Code("INPUT_READ").With("file", args[0]).Wrapf(err, "open input")
	}
	return f, nil
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	r, err := openInput(cmd, args)
	if err != nil {
		return "", err
	}
	defer r.Close()

	b, err := io.ReadAll(r)
	if err != nil {
		return "", oops.Code("INPUT_READ").Wrapf(err, "read input")
	}
	return string(b), nil
}
