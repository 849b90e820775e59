package launch

import (
	"encoding/json"
	"fmt"
	"io"
)

// Commands returns the plan's command lines in launch order:
// client, alice, bob, then the optional flamegraph retrieval.
func (p Plan) Commands() []string {
	cmds := []string{p.Client, p.Alice, p.Bob}

	if p.FlamegraphFetch != "" {
		cmds = append(cmds, p.FlamegraphFetch)
	}

	return cmds
}

// Write writes the plan as labeled command lines, each followed by a
// blank line.
func (p Plan) Write(w io.Writer) error {
	entries := []struct {
		label string
		cmd   string
	}{
		{"Meta Client", p.Client},
		{"Alice", p.Alice},
		{"Bob", p.Bob},
		{"Flamegraph Bob", p.FlamegraphFetch},
	}

	for _, e := range entries {
		if e.cmd == "" {
			continue
		}

		if _, err := fmt.Fprintf(w, "%s: %s\n\n", e.label, e.cmd); err != nil {
			return fmt.Errorf("write %s command: %w", e.label, err)
		}
	}

	return nil
}

// WriteJSON writes the plan as an indented JSON object.
func (p Plan) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(p)
}
