package workbook

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/zero-day-ai/orggraph/records"
)

// Sheet names.
const (
	SheetEmployees      = "Employee Table"
	SheetProjects       = "Project Table"
	SheetUnits          = "Units"
	SheetAssignments    = "Employee To Project Mapping"
	SheetSkills         = "Skills"
	SheetEmployeeSkills = "Employee To Skill Mapping"
	SheetProjectSkills  = "Skills to Project Mapping"
)

// Sheets returns every sheet the loader reads.
func Sheets() []string {
	return []string{
		SheetEmployees,
		SheetProjects,
		SheetUnits,
		SheetAssignments,
		SheetSkills,
		SheetEmployeeSkills,
		SheetProjectSkills,
	}
}

// Option configures loading.
type Option func(*loader)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *loader) {
		l.logger = logger
	}
}

// WithStrict makes a missing sheet an error instead of an empty collection.
func WithStrict() Option {
	return func(l *loader) {
		l.strict = true
	}
}

type loader struct {
	file   *excelize.File
	logger *slog.Logger
	strict bool
	errs   []error
}

// Load reads the workbook at path.
func Load(path string, opts ...Option) (*records.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()
	return load(f, opts...)
}

// Read reads a workbook from r.
func Read(r io.Reader, opts ...Option) (*records.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook: %w", err)
	}
	defer f.Close()
	return load(f, opts...)
}

func load(f *excelize.File, opts ...Option) (*records.Dataset, error) {
	l := &loader{file: f, logger: slog.Default()}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = l.logger.With("component", "workbook")

	ds := &records.Dataset{}

	l.each(SheetEmployees, func(r *row) {
		ds.Employees = append(ds.Employees, records.Employee{
			EmployeeID:        r.int64(1),
			EmployeeName:      r.str(2),
			BusinessUnit:      r.str(3),
			Department:        r.str(4),
			TalentManager:     r.int64(5),
			FunctionalManager: r.int64(6),
			JobTitle:          r.str(7),
			YearOfJoining:     r.int(8),
			YearOfBirth:       r.int(9),
		})
	})

	l.each(SheetProjects, func(r *row) {
		ds.Projects = append(ds.Projects, records.Project{
			ProjectID:        r.int64(1),
			ProjectName:      r.str(2),
			ProjectManagerID: r.int64(3),
			ProductManagerID: r.int64(4),
			TechnicalLeadID:  r.int64(5),
			StartDate:        r.date(6),
			EndDate:          r.date(7),
		})
	})

	l.each(SheetUnits, func(r *row) {
		ds.Units = append(ds.Units, records.Unit{
			UnitName:       r.str(1),
			ParentUnitName: r.optStr(2),
			UnitType:       r.str(3),
		})
	})

	l.each(SheetAssignments, func(r *row) {
		ds.Assignments = append(ds.Assignments, records.AssignmentMapping{
			EmployeeID:            r.int64(1),
			ProjectID:             r.int64(2),
			ReportingToEmployeeID: r.optInt64(3),
			ProjectSpecificRole:   r.str(4),
			TimeAlloted:           r.float(5),
			StartDate:             r.date(6),
			EndDate:               r.date(7),
		})
	})

	l.each(SheetSkills, func(r *row) {
		ds.Skills = append(ds.Skills, records.Skill{
			SkillID:   r.int64(1),
			SkillName: r.str(2),
		})
	})

	l.each(SheetEmployeeSkills, func(r *row) {
		ds.EmployeeSkills = append(ds.EmployeeSkills, records.EmployeeSkill{
			EmployeeID: r.int64(1),
			SkillID:    r.int64(2),
		})
	})

	l.each(SheetProjectSkills, func(r *row) {
		ds.ProjectSkills = append(ds.ProjectSkills, records.ProjectSkill{
			ProjectID: r.int64(1),
			SkillID:   r.int64(2),
		})
	})

	if err := errors.Join(l.errs...); err != nil {
		return nil, err
	}

	c := ds.Counts()
	l.logger.Debug("workbook loaded",
		"units", c.Units,
		"employees", c.Employees,
		"projects", c.Projects,
		"skills", c.Skills,
		"assignments", c.Assignments,
	)
	return ds, nil
}

// each calls fn for every non-blank data row of sheet. Conversion errors are
// collected; any of them fails the whole load.
func (l *loader) each(sheet string, fn func(r *row)) {
	if idx, err := l.file.GetSheetIndex(sheet); err != nil || idx < 0 {
		if l.strict {
			l.errs = append(l.errs, fmt.Errorf("%w: %s", ErrSheetMissing, sheet))
			return
		}
		l.logger.Debug("sheet not found, skipping", "sheet", sheet)
		return
	}

	rows, err := l.file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		l.errs = append(l.errs, fmt.Errorf("failed to read sheet %s: %w", sheet, err))
		return
	}

	for i, cells := range rows {
		if i == 0 {
			continue
		}
		r := &row{sheet: sheet, num: i + 1, cells: cells}
		if r.blank() {
			continue
		}
		fn(r)
		if r.err != nil {
			l.errs = append(l.errs, r.err)
		}
	}
}
