package main

import (
	"encoding/json"
	"io"

	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

// encode writes v to w as JSON or YAML.
func encode(w io.Writer, format string, v any) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return oops.Code("OUTPUT_WRITE").Wrapf(err, "encode yaml")
		}
		if err := enc.Close(); err != nil {
			return oops.Code("OUTPUT_WRITE").Wrapf(err, "flush yaml")
		}
		return nil
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return oops.Code("OUTPUT_WRITE").Wrapf(err, "encode json")
	}
	return nil
}
