package graph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLink(t *testing.T) {
	from := NewEndpoint(LabelUnit).WithKey("name", "Platform").WithKey("UnitType", "Department")
	to := NewEndpoint(LabelUnit).WithKey("name", "Engineering")

	link := NewLink(RelBelongsToUnit, from, to).
		WithDistinct().
		WithProperty(PropStatus, StatusActive)

	assert.Equal(t, RelBelongsToUnit, link.Type)
	assert.True(t, link.Distinct)
	assert.Equal(t, []string{"name", "UnitType"}, link.From.Key.Keys())
	assert.Equal(t, []string{"name"}, link.To.Key.Keys())
	assert.Equal(t, []string{PropStatus}, link.Properties.Keys())

	op := link.Operation()
	assert.True(t, op.IsLink())
	require.NoError(t, op.Validate())
}

func TestEndpoint_WithKeyDoesNotAlias(t *testing.T) {
	base := NewEndpoint(LabelEmployee).WithKey("EmployeeID", int64(1))
	a := base.WithKey("extra", "a")
	b := base.WithKey("extra", "b")

	va, _ := a.Key.Get("extra")
	vb, _ := b.Key.Get("extra")
	assert.Equal(t, "a", va)
	assert.Equal(t, "b", vb)
	assert.Len(t, base.Key, 1)
}

func TestLinkOp_WithProperties(t *testing.T) {
	link := NewLink(RelHasSkill,
		NewEndpoint(LabelEmployee).WithKey("EmployeeID", int64(1)),
		NewEndpoint(LabelSkill).WithKey("SkillID", int64(2)),
	).WithProperties(Props{{Key: "a", Value: 1}, {Key: "b", Value: 2}})

	assert.Equal(t, []string{"a", "b"}, link.Properties.Keys())
}

func TestLinkOp_Validate(t *testing.T) {
	emp := NewEndpoint(LabelEmployee).WithKey("EmployeeID", int64(1))

	tests := []struct {
		name string
		link *LinkOp
	}{
		{"empty type", NewLink("", emp, emp)},
		{"from without label", NewLink(RelHasRole, Endpoint{Key: Props{{Key: "k", Value: 1}}}, emp)},
		{"to without key", NewLink(RelHasRole, emp, NewEndpoint(LabelRole))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.link.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidOperation))
		})
	}
}

func TestSummary_Add(t *testing.T) {
	var s Summary
	s.Add(Summary{NodesCreated: 1, PropertiesSet: 3})
	s.Add(Summary{RelationshipsCreated: 2, PropertiesSet: 1})
	assert.Equal(t, Summary{NodesCreated: 1, RelationshipsCreated: 2, PropertiesSet: 4}, s)
}
