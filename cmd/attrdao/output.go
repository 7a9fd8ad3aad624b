/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

func validateOutput(format string) error {
	switch format {
	case "json", "yaml":
		return nil
	}
	return fmt.Errorf("unsupported output format %q (want json or yaml)", format)
}

// render writes v to w in the selected format.
func (a *app) render(w io.Writer, v any) error {
	if a.output == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("error encoding YAML: %w", err)
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("error encoding JSON: %w", err)
	}
	return nil
}
