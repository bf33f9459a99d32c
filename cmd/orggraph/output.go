package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/zero-day-ai/orggraph/gate"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printReport(w io.Writer, r *gate.Report) {
	fmt.Fprintf(w, "planned:          %d\n", r.Planned)
	fmt.Fprintf(w, "applied:          %d\n", r.Applied)
	fmt.Fprintf(w, "nodes created:    %d\n", r.NodesCreated)
	fmt.Fprintf(w, "links attempted:  %d\n", r.LinksAttempted)
	fmt.Fprintf(w, "links created:    %d\n", r.LinksCreated)
	fmt.Fprintf(w, "links omitted:    %d\n", r.LinksOmitted())
	fmt.Fprintf(w, "artifact removed: %t\n", r.ArtifactRemoved)
}
