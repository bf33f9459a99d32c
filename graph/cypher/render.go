package cypher

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/zero-day-ai/orggraph/graph"
)

// ErrUnsafeIdentifier indicates a label, relationship type or property name
// that cannot be safely embedded in statement text.
var ErrUnsafeIdentifier = errors.New("unsafe cypher identifier")

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Statement is a rendered query plus its parameters.
type Statement struct {
	Text   string         `json:"text"`
	Params map[string]any `json:"params"`
}

// Render turns one operation into a statement.
func Render(op graph.Operation) (Statement, error) {
	if err := op.Validate(); err != nil {
		return Statement{}, err
	}

	p := NewParams()
	var (
		text string
		err  error
	)
	switch op.Kind {
	case graph.OpMerge:
		text, err = renderMerge(op.Node, p)
	case graph.OpCreate:
		text, err = renderCreate(op.Node, p)
	case graph.OpLink:
		text, err = renderLink(op.Link, p)
	}
	if err != nil {
		return Statement{}, err
	}
	return Statement{Text: text, Params: p.Values()}, nil
}

// RenderAll renders ops in order, stopping at the first failure.
func RenderAll(ops []graph.Operation) ([]Statement, error) {
	out := make([]Statement, 0, len(ops))
	for i, op := range ops {
		st, err := Render(op)
		if err != nil {
			return nil, fmt.Errorf("rendering operation %d (%s): %w", i, op, err)
		}
		out = append(out, st)
	}
	return out, nil
}

// CountNodes returns the statement used to check whether a graph is empty.
// The single result column is named "count".
func CountNodes() Statement {
	return Statement{Text: "MATCH (n) RETURN count(n) AS count", Params: map[string]any{}}
}

func renderMerge(n *graph.NodeOp, p *Params) (string, error) {
	pattern, err := BuildPattern("n", n.Labels, n.Key, p)
	if err != nil {
		return "", err
	}
	lines := []string{"MERGE " + pattern}

	clauses := []struct {
		prefix string
		props  graph.Props
	}{
		{"ON CREATE SET ", n.OnCreate},
		{"ON MATCH SET ", n.OnMatch},
		{"SET ", n.Set},
	}
	for _, c := range clauses {
		if len(c.props) == 0 {
			continue
		}
		set, err := BuildSet("n", c.props, p)
		if err != nil {
			return "", err
		}
		lines = append(lines, c.prefix+set)
	}
	return strings.Join(lines, "\n"), nil
}

func renderCreate(n *graph.NodeOp, p *Params) (string, error) {
	props := n.Key.Clone()
	for _, prop := range n.Set {
		props = props.With(prop.Key, prop.Value)
	}
	pattern, err := BuildPattern("n", n.Labels, props, p)
	if err != nil {
		return "", err
	}
	return "CREATE " + pattern, nil
}

func renderLink(l *graph.LinkOp, p *Params) (string, error) {
	if !identifierPattern.MatchString(l.Type) {
		return "", fmt.Errorf("%w: relationship type %q", ErrUnsafeIdentifier, l.Type)
	}
	from, err := BuildPattern("a", l.From.Labels, l.From.Key, p)
	if err != nil {
		return "", err
	}
	to, err := BuildPattern("b", l.To.Labels, l.To.Key, p)
	if err != nil {
		return "", err
	}

	lines := []string{"MATCH " + from, "MATCH " + to}
	if l.Distinct {
		lines = append(lines, "WHERE a <> b")
	}
	lines = append(lines, fmt.Sprintf("MERGE (a)-[r:%s]->(b)", l.Type))
	if len(l.Properties) > 0 {
		set, err := BuildSet("r", l.Properties, p)
		if err != nil {
			return "", err
		}
		lines = append(lines, "ON CREATE SET "+set)
	}
	return strings.Join(lines, "\n"), nil
}

// BuildLabels renders a label list such as ":Unit:Department".
//
// Example:
//
//	BuildLabels([]string{"Project", "Unit"}) // Returns: ":Project:Unit"
func BuildLabels(labels []string) (string, error) {
	var b strings.Builder
	for _, l := range labels {
		if !identifierPattern.MatchString(l) {
			return "", fmt.Errorf("%w: label %q", ErrUnsafeIdentifier, l)
		}
		b.WriteString(":")
		b.WriteString(l)
	}
	return b.String(), nil
}

// BuildPattern renders a node pattern with inline parameterized properties.
//
// Example:
//
//	BuildPattern("e", []string{"Employee"}, graph.Props{{Key: "EmployeeID", Value: 7}}, p)
//	// Returns: "(e:Employee {EmployeeID: $p0})"
func BuildPattern(alias string, labels []string, props graph.Props, p *Params) (string, error) {
	labelText, err := BuildLabels(labels)
	if err != nil {
		return "", err
	}
	if len(props) == 0 {
		return fmt.Sprintf("(%s%s)", alias, labelText), nil
	}

	parts := make([]string, 0, len(props))
	for _, prop := range props {
		if !identifierPattern.MatchString(prop.Key) {
			return "", fmt.Errorf("%w: property %q", ErrUnsafeIdentifier, prop.Key)
		}
		parts = append(parts, fmt.Sprintf("%s: %s", prop.Key, p.add(prop.Value)))
	}
	return fmt.Sprintf("(%s%s {%s})", alias, labelText, strings.Join(parts, ", ")), nil
}

// BuildSet renders a comma-separated assignment list for alias.
//
// Example:
//
//	BuildSet("n", graph.Props{{Key: "status", Value: "active"}}, p)
//	// Returns: "n.status = $p0"
func BuildSet(alias string, props graph.Props, p *Params) (string, error) {
	parts := make([]string, 0, len(props))
	for _, prop := range props {
		if !identifierPattern.MatchString(prop.Key) {
			return "", fmt.Errorf("%w: property %q", ErrUnsafeIdentifier, prop.Key)
		}
		parts = append(parts, fmt.Sprintf("%s.%s = %s", alias, prop.Key, p.add(prop.Value)))
	}
	return strings.Join(parts, ", "), nil
}

// Params allocates positional parameter names ($p0, $p1, ...) for one
// statement.
type Params struct {
	values map[string]any
	next   int
}

// NewParams returns an empty parameter set.
func NewParams() *Params {
	return &Params{values: make(map[string]any)}
}

// Values returns the collected parameters.
func (p *Params) Values() map[string]any {
	return p.values
}

func (p *Params) add(v any) string {
	name := fmt.Sprintf("p%d", p.next)
	p.next++
	p.values[name] = v
	return "$" + name
}
