package main

import (
	"github.com/spf13/cobra"

	"github.com/grahms/notetag"
)

type tagResult struct {
	Tag    string   `json:"tag" yaml:"tag"`
	Found  bool     `json:"found" yaml:"found"`
	Text   *string  `json:"text" yaml:"text"`
	Params []string `json:"params" yaml:"params"`
}

// NewTagCmd creates the tag subcommand.
func NewTagCmd(opts *rootOptions) *cobra.Command {
	var defaults notetag.Annotation

	cmd := &cobra.Command{
		Use:   "tag NAME [FILE]",
		Short: "Extract the first <NAME...> annotation from a file or stdin",
		Long: `Find the first annotation named NAME (case-insensitive) and print its
comma-separated params and, for <NAME>text</NAME>, its text.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			text, err := readInput(cmd, args[1:])
			if err != nil {
				return err
			}

			a, ok := notetag.ExtractTagWithDefaults(text, args[0], defaults)
			log.Debug("tag extracted", "tag", args[0], "found", ok, "params", len(a.Params))

			res := tagResult{Tag: args[0], Found: ok, Params: a.Params}
			if res.Params == nil {
				res.Params = []string{}
			}
			if a.Text != "" {
				res.Text = &a.Text
			}
			return encode(cmd.OutOrStdout(), cfg.Output, res)
		},
	}

	cmd.Flags().StringVar(&defaults.Text, "default-text", "", "text used when the tag has no body")
	cmd.Flags().StringSliceVar(&defaults.Params, "default-params", nil, "params used when the tag has none")

	return cmd
}
