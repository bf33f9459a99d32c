package records

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataset_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ds      Dataset
		wantErr []string
	}{
		{
			name: "empty dataset is valid",
			ds:   Dataset{},
		},
		{
			name: "complete records",
			ds: Dataset{
				Units:          []Unit{{UnitName: "Eng", UnitType: "Department"}},
				Employees:      []Employee{{EmployeeID: 1}},
				Projects:       []Project{{ProjectID: 10}},
				Skills:         []Skill{{SkillID: 5, SkillName: "Go"}},
				EmployeeSkills: []EmployeeSkill{{EmployeeID: 1, SkillID: 5}},
				ProjectSkills:  []ProjectSkill{{ProjectID: 10, SkillID: 5}},
				Assignments:    []AssignmentMapping{{EmployeeID: 1, ProjectID: 10}},
			},
		},
		{
			name: "dangling references are not malformed",
			ds: Dataset{
				Employees: []Employee{{EmployeeID: 1, TalentManager: 999, FunctionalManager: 998}},
			},
		},
		{
			name: "missing employee id",
			ds: Dataset{
				Employees: []Employee{{EmployeeID: 1}, {EmployeeName: "nobody"}},
			},
			wantErr: []string{"employees[1]: missing EmployeeID"},
		},
		{
			name: "several problems are all reported",
			ds: Dataset{
				Units:       []Unit{{UnitType: "Department"}},
				Assignments: []AssignmentMapping{{EmployeeID: 1}},
				Skills:      []Skill{{SkillName: "Go"}},
			},
			wantErr: []string{
				"units[0]: missing UnitName",
				"skills[0]: missing SkillID",
				"assignments[0]: missing ProjectID",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ds.Validate()
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedRecord))
			for _, msg := range tt.wantErr {
				assert.Contains(t, err.Error(), msg)
			}
		})
	}
}

func TestRecordError_As(t *testing.T) {
	ds := Dataset{Projects: []Project{{ProjectName: "Apollo"}}}

	var recErr *RecordError
	require.True(t, errors.As(ds.Validate(), &recErr))
	assert.Equal(t, "projects", recErr.Collection)
	assert.Equal(t, 0, recErr.Index)
	assert.Equal(t, "ProjectID", recErr.Field)
}

func TestUnit_HasParent(t *testing.T) {
	assert.False(t, Unit{UnitName: "Eng"}.HasParent())
	assert.False(t, Unit{UnitName: "Eng", ParentUnitName: StringPtr("")}.HasParent())
	assert.True(t, Unit{UnitName: "Eng", ParentUnitName: StringPtr("Corp")}.HasParent())
}

func TestDataset_Counts(t *testing.T) {
	ds := Dataset{
		Employees:   []Employee{{EmployeeID: 1}, {EmployeeID: 2}},
		Assignments: []AssignmentMapping{{EmployeeID: 1, ProjectID: 3}},
	}
	c := ds.Counts()
	assert.Equal(t, 2, c.Employees)
	assert.Equal(t, 1, c.Assignments)
	assert.Zero(t, c.Units)
}
