package main

import (
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/grahms/notetag"
	"github.com/grahms/notetag/internal/logging"
	"github.com/grahms/notetag/internal/mapdata"
)

type pageReport struct {
	Page int          `json:"page" yaml:"page"`
	Tags notetag.Tags `json:"tags" yaml:"tags"`
}

type sourceReport struct {
	File  string       `json:"file" yaml:"file"`
	Kind  mapdata.Kind `json:"kind" yaml:"kind"`
	ID    int          `json:"id" yaml:"id"`
	Name  string       `json:"name" yaml:"name"`
	Meta  notetag.Tags `json:"meta,omitempty" yaml:"meta,omitempty"`
	Pages []pageReport `json:"pages" yaml:"pages"`
}

// hasTags reports whether the source carries any tag at all.
func (r sourceReport) hasTags() bool {
	if len(r.Meta) > 0 {
		return true
	}
	for _, p := range r.Pages {
		if len(p.Tags) > 0 {
			return true
		}
	}
	return false
}

// NewEventsCmd creates the events subcommand.
func NewEventsCmd(opts *rootOptions) *cobra.Command {
	var (
		all    bool
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "events DIR",
		Short: "Extract page tags from the map and troop files in DIR",
		Long: `Load every data file in DIR whose name matches --pattern, extract the
tags of each event page from its comment commands and the tags of each
event note, and print them. Values breaking the configured rules are logged;
with --strict the command then fails.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			reg, err := cfg.Validators()
			if err != nil {
				return err
			}
			files, err := mapdata.Discover(args[0], cfg.Pattern)
			if err != nil {
				return err
			}

			x := cfg.Extractor(notetag.WithLogger(log))
			reports := []sourceReport{}
			invalid := 0

			for _, file := range files {
				if _, ok := mapdata.KindOf(file); !ok {
					log.Warn("skipping unrecognized data file", "file", file)
					continue
				}
				sources, err := mapdata.Load(file)
				if err != nil {
					logging.LogError(log, "load data file", err)
					return err
				}

				for _, src := range sources {
					src.Extract(x)
					r := sourceReport{File: src.File, Kind: src.Kind, ID: src.ID, Name: src.Name, Meta: src.Meta}
					for _, verr := range reg.ValidateTags(src.Meta) {
						invalid++
						log.Warn("note tag rejected", "source", src.Label(), "error", verr)
					}
					for i, page := range src.Document.Pages {
						if page == nil {
							continue
						}
						r.Pages = append(r.Pages, pageReport{Page: i + 1, Tags: page.Tags})
						for _, verr := range reg.ValidateTags(page.Tags) {
							invalid++
							log.Warn("page tag rejected", "source", src.Label(), "page", i+1, "error", verr)
						}
					}
					if all || r.hasTags() {
						reports = append(reports, r)
					}
				}
				log.Debug("data file processed", "file", file, "sources", len(sources))
			}

			if err := encode(cmd.OutOrStdout(), cfg.Output, reports); err != nil {
				return err
			}
			if strict && invalid > 0 {
				return oops.Code("TAG_INVALID").With("count", invalid).Errorf("%d tag(s) failed validation", invalid)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include events without any tags")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when a tag breaks a rule")

	return cmd
}
