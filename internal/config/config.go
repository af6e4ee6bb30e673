// Package config loads notetag CLI settings from flags and an optional YAML
// file.
package config

import (
	"fmt"
	"sort"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/grahms/notetag"
	"github.com/grahms/notetag/internal/mapdata"
)

// Rule constrains the value of one tag name.
type Rule struct {
	Kind        string `koanf:"kind"`        // flag, bool, int, number or text
	Pattern     string `koanf:"pattern"`     // regular expression for the text
	Description string `koanf:"description"` // shown when Pattern does not match
}

// Config holds settings shared by all subcommands.
type Config struct {
	LogFormat    string          `koanf:"log-format"`
	Output       string          `koanf:"output"`
	CommentCodes []int           `koanf:"comment-codes"`
	Pattern      string          `koanf:"pattern"`
	Unknown      string          `koanf:"unknown"`
	Rules        map[string]Rule `koanf:"rules"`
}

// Default values for flags.
const (
	DefaultLogFormat = "text"
	DefaultOutput    = "json"
	DefaultUnknown   = "allow"
)

// DefaultCommentCodes are the host's comment and comment-continuation codes.
var DefaultCommentCodes = []int{notetag.CodeComment, notetag.CodeCommentContinue}

// RegisterFlags adds the configurable flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("log-format", DefaultLogFormat, "log format (json or text)")
	fs.String("output", DefaultOutput, "output format (json or yaml)")
	fs.IntSlice("comment-codes", DefaultCommentCodes, "command codes scanned for tags")
	fs.String("pattern", mapdata.DefaultPattern, "glob for data file names")
	fs.String("unknown", DefaultUnknown, "tags without rules: allow or report")
}

// Load builds a Config. Values come from the flag defaults, then the YAML
// file at path (if any), then flags set on the command line.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, oops.Code("CONFIG_LOAD").With("file", path).Wrapf(err, "load config file")
		}
	}
	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return Config{}, oops.Code("CONFIG_LOAD").Wrapf(err, "load flags")
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, oops.Code("CONFIG_LOAD").Wrapf(err, "decode config")
	}
	return cfg, nil
}

// Validate checks that the configuration is valid.
func (c Config) Validate() error {
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return oops.Code("CONFIG_INVALID").Errorf("log-format must be 'json' or 'text', got %q", c.LogFormat)
	}
	if c.Output != "json" && c.Output != "yaml" {
		return oops.Code("CONFIG_INVALID").Errorf("output must be 'json' or 'yaml', got %q", c.Output)
	}
	if len(c.CommentCodes) == 0 {
		return oops.Code("CONFIG_INVALID").Errorf("comment-codes must not be empty")
	}
	if _, err := notetag.ParseUnknownTagPolicy(c.Unknown); err != nil {
		return oops.Code("CONFIG_INVALID").Wrap(err)
	}
	return nil
}

// Validators compiles the rules into a registry.
func (c Config) Validators() (*notetag.ValidatorRegistry, error) {
	reg := notetag.NewValidatorRegistry()
	policy, err := notetag.ParseUnknownTagPolicy(c.Unknown)
	if err != nil {
		return nil, oops.Code("CONFIG_INVALID").Wrap(err)
	}
	reg.SetUnknownPolicy(policy)

	names := make([]string, 0, len(c.Rules))
	for name := range c.Rules {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		rule := c.Rules[name]
		if rule.Kind == "" && rule.Pattern == "" {
			return nil, oops.Code("TAG_RULE").With("tag", name).Errorf("rule needs a kind or a pattern")
		}
		if rule.Kind != "" {
			if err := reg.RegisterKind(name, notetag.Kind(rule.Kind)); err != nil {
				return nil, oops.Code("TAG_RULE").With("tag", name).Wrap(err)
			}
		}
		if rule.Pattern != "" {
			desc := rule.Description
			if desc == "" {
				desc = fmt.Sprintf("/%s/", rule.Pattern)
			}
			if err := reg.RegisterRegex(name, rule.Pattern, desc); err != nil {
				return nil, oops.Code("TAG_RULE").With("tag", name).Wrap(err)
			}
		}
	}
	return reg, nil
}

// Extractor returns a document extractor for the configured comment codes.
func (c Config) Extractor(opts ...func(*notetag.Extractor)) *notetag.Extractor {
	opts = append([]func(*notetag.Extractor){notetag.WithCommentCodes(c.CommentCodes...)}, opts...)
	return notetag.NewExtractor(opts...)
}
