package main

import (
	"strings"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/grahms/notetag"
)

type scanEvent struct {
	Name   string        `json:"name" yaml:"name"`
	Value  notetag.Value `json:"value" yaml:"value"`
	Line   int           `json:"line" yaml:"line"`
	Column int           `json:"column" yaml:"column"`
}

// NewScanCmd creates the scan subcommand.
func NewScanCmd(opts *rootOptions) *cobra.Command {
	var (
		validate bool
		only     []string
	)

	cmd := &cobra.Command{
		Use:   "scan [FILE]",
		Short: "List every <name> and <name:value> marker in a file or stdin",
		Long: `Stream the input and print each marker with its line and column.
With --validate, values are checked against the configured rules and the
command fails if any is rejected.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.setup(cmd)
			if err != nil {
				return err
			}

			var reg *notetag.ValidatorRegistry
			if validate {
				if reg, err = cfg.Validators(); err != nil {
					return err
				}
			}

			in, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer in.Close()

			events := []scanEvent{}
			invalid := 0
			handle := func(ev notetag.TagEvent) {
				events = append(events, scanEvent{Name: ev.Name, Value: ev.Value, Line: ev.Pos.Line, Column: ev.Pos.Column})
				if reg == nil {
					return
				}
				if err := reg.ValidateTag(ev.Name, ev.Value, ev.Pos); err != nil {
					invalid++
					log.Warn("tag rejected", "tag", ev.Name, "pos", ev.Pos.String(), "error", err)
				}
			}

			if err := notetag.ProcessStream(in, scanSink(only, handle)); err != nil {
				return oops.Code("INPUT_READ").Wrapf(err, "scan input")
			}
			log.Debug("scan finished", "tags", len(events), "invalid", invalid)

			if err := encode(cmd.OutOrStdout(), cfg.Output, events); err != nil {
				return err
			}
			if invalid > 0 {
				return oops.Code("TAG_INVALID").With("count", invalid).Errorf("%d tag(s) failed validation", invalid)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&validate, "validate", false, "check values against the configured rules")
	cmd.Flags().StringSliceVar(&only, "only", nil, "only report these tag names (case-insensitive)")

	return cmd
}

// scanSink routes events to handle, restricted to the names in only when it
// is not empty.
func scanSink(only []string, handle func(notetag.TagEvent)) notetag.EventSink {
	if len(only) == 0 {
		return notetag.EventSinkFunc(handle)
	}
	sink := notetag.NewHandlerSink()
	seen := map[string]bool{}
	for _, name := range only {
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		sink.RegisterHandler(name, handle)
	}
	return sink
}
