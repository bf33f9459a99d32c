package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zero-day-ai/orggraph"
	"github.com/zero-day-ai/orggraph/gate"
	"github.com/zero-day-ai/orggraph/graph"
	"github.com/zero-day-ai/orggraph/graph/cypher"
	"github.com/zero-day-ai/orggraph/planner"
	"github.com/zero-day-ai/orggraph/store/memory"
)

type planOptions struct {
	JSON   bool
	DryRun bool
	Strict bool
}

type plannedOperation struct {
	Index     int              `json:"index"`
	Stage     string           `json:"stage"`
	Operation graph.Operation  `json:"operation"`
	Statement cypher.Statement `json:"statement"`
}

func newPlanCmd(a *app) *cobra.Command {
	var opts planOptions

	cmd := &cobra.Command{
		Use:   "plan <file.xlsx>",
		Short: "Print the Cypher a workbook compiles to, without touching any database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := memory.New()
			seeder, err := orggraph.NewSeeder(store,
				orggraph.WithLogger(a.logger),
				orggraph.WithStrictWorkbook(opts.Strict || a.cfg.Workbook.IsStrict()),
			)
			if err != nil {
				return err
			}

			plan, err := seeder.PlanFile(args[0])
			if err != nil {
				return err
			}
			ops, err := renderPlan(plan)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.DryRun {
				g, err := gate.New(store, gate.WithLogger(a.logger))
				if err != nil {
					return err
				}
				report, err := g.Execute(cmd.Context(), plan.Operations())
				if err != nil {
					return err
				}
				if opts.JSON {
					return writeJSON(out, map[string]any{
						"report":        report,
						"nodes":         store.NodeCount(),
						"relationships": store.RelationshipCount(""),
					})
				}
				printReport(out, report)
				fmt.Fprintf(out, "graph nodes:      %d\n", store.NodeCount())
				fmt.Fprintf(out, "graph rels:       %d\n", store.RelationshipCount(""))
				return nil
			}

			if opts.JSON {
				return writeJSON(out, ops)
			}
			return writeCypher(out, ops)
		},
	}

	cmd.Flags().BoolVar(&opts.JSON, "json", false, "emit structured operations as JSON")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "apply the plan to an in-memory graph and print the resulting counts")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "fail when an expected sheet is missing")
	return cmd
}

// renderPlan renders every operation, tagged with its stage.
func renderPlan(plan *planner.Plan) ([]plannedOperation, error) {
	out := make([]plannedOperation, 0, plan.Len())
	for _, stage := range planner.Stages() {
		for _, op := range plan.Stage(stage) {
			st, err := cypher.Render(op)
			if err != nil {
				return nil, fmt.Errorf("rendering operation %d (%s): %w", len(out), op, err)
			}
			out = append(out, plannedOperation{
				Index:     len(out),
				Stage:     stage.String(),
				Operation: op,
				Statement: st,
			})
		}
	}
	return out, nil
}

func writeCypher(w io.Writer, ops []plannedOperation) error {
	stage := ""
	for _, op := range ops {
		if op.Stage != stage {
			stage = op.Stage
			fmt.Fprintf(w, "// %s\n", stage)
		}
		params, err := json.Marshal(op.Statement.Params)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s;\n// params: %s\n", op.Statement.Text, params)
	}
	return nil
}
