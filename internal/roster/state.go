package roster

import (
	"sort"
	"time"

	"volunteerhub/internal/domain"
)

// IdentifierCheck is the cached validation result for one row.
type IdentifierCheck struct {
	Status  IdentifierStatus
	Message string
}

// State is the single in-memory result set a user edits. Transitions go
// through Reduce; a State value is never mutated in place.
type State struct {
	EventName string
	EventDate time.Time
	People    []domain.ExtractedPerson
	Rows      []domain.FlattenedRow
	Checks    map[int]IdentifierCheck
	Selected  map[int]bool
}

// Action is a state transition.
type Action interface {
	apply(s *State)
}

// Reduce returns the state that results from applying a to s. s is left untouched.
func Reduce(s State, a Action) State {
	next := s.clone()
	a.apply(&next)
	return next
}

// Extracted replaces the result set with a fresh extraction. The selection is
// cleared and every row's identifier is checked.
type Extracted struct {
	EventName string
	EventDate time.Time
	People    []domain.ExtractedPerson
}

func (a Extracted) apply(s *State) {
	s.EventName = a.EventName
	s.EventDate = a.EventDate
	s.People = clonePeople(a.People)
	s.Rows = Flatten(s.People)
	s.Selected = map[int]bool{}
	s.Checks = make(map[int]IdentifierCheck, len(s.Rows))
	for i := range s.Rows {
		s.recheck(i)
	}
}

// EditField sets one field of one row. Name, designation and identifier are
// shared by all rows of the same person and by the person itself; a highlight
// belongs to its row alone.
type EditField struct {
	Row   int
	Field domain.RowField
	Value string
}

func (a EditField) apply(s *State) {
	if a.Row < 0 || a.Row >= len(s.Rows) {
		return
	}
	owner := s.Rows[a.Row].OriginalIndex

	if !a.Field.PersonField() {
		if a.Field != domain.FieldHighlight {
			return
		}
		s.Rows[a.Row].Highlight = a.Value
		s.syncContribution(a.Row, owner)
		return
	}

	for i := range s.Rows {
		if s.Rows[i].OriginalIndex != owner {
			continue
		}
		setField(&s.Rows[i], a.Field, a.Value)
		if a.Field == domain.FieldIdentifier {
			s.recheck(i)
		}
	}
	if owner >= 0 && owner < len(s.People) {
		p := &s.People[owner]
		switch a.Field {
		case domain.FieldName:
			p.Name = a.Value
		case domain.FieldDesignation:
			p.Designation = a.Value
		case domain.FieldIdentifier:
			p.Identifier = a.Value
		}
	}
}

// ToggleSelect flips the selection of one row.
type ToggleSelect struct {
	Row int
}

func (a ToggleSelect) apply(s *State) {
	if a.Row < 0 || a.Row >= len(s.Rows) {
		return
	}
	if s.Selected[a.Row] {
		delete(s.Selected, a.Row)
		return
	}
	s.Selected[a.Row] = true
}

// Select adds one row to the selection. Selecting a selected row is a no-op.
type Select struct {
	Row int
}

func (a Select) apply(s *State) {
	if a.Row < 0 || a.Row >= len(s.Rows) {
		return
	}
	s.Selected[a.Row] = true
}

// SelectAll selects every row.
type SelectAll struct{}

func (SelectAll) apply(s *State) {
	for i := range s.Rows {
		s.Selected[i] = true
	}
}

// ClearSelection deselects every row.
type ClearSelection struct{}

func (ClearSelection) apply(s *State) {
	s.Selected = map[int]bool{}
}

// SelectedRows returns the selected row indices in display order.
func (s State) SelectedRows() []int {
	rows := make([]int, 0, len(s.Selected))
	for i, ok := range s.Selected {
		if ok {
			rows = append(rows, i)
		}
	}
	sort.Ints(rows)
	return rows
}

func (s *State) recheck(row int) {
	status, msg := ValidateIdentifier(s.Rows[row].Identifier)
	s.Checks[row] = IdentifierCheck{Status: status, Message: msg}
}

// syncContribution copies a row's highlight back to the matching contribution
// of its person. The n-th row of a person maps to its n-th contribution.
func (s *State) syncContribution(row, owner int) {
	if owner < 0 || owner >= len(s.People) {
		return
	}
	n := 0
	for i := 0; i < row; i++ {
		if s.Rows[i].OriginalIndex == owner {
			n++
		}
	}
	if contribs := s.People[owner].Contributions; n < len(contribs) {
		contribs[n].Highlight = s.Rows[row].Highlight
	}
}

func (s State) clone() State {
	next := s
	next.People = clonePeople(s.People)
	next.Rows = append([]domain.FlattenedRow(nil), s.Rows...)
	next.Checks = make(map[int]IdentifierCheck, len(s.Checks))
	for k, v := range s.Checks {
		next.Checks[k] = v
	}
	next.Selected = make(map[int]bool, len(s.Selected))
	for k, v := range s.Selected {
		next.Selected[k] = v
	}
	return next
}

func clonePeople(people []domain.ExtractedPerson) []domain.ExtractedPerson {
	if people == nil {
		return nil
	}
	out := make([]domain.ExtractedPerson, len(people))
	for i, p := range people {
		out[i] = p
		out[i].Contributions = append([]domain.Contribution{}, p.Contributions...)
	}
	return out
}

func setField(row *domain.FlattenedRow, field domain.RowField, value string) {
	switch field {
	case domain.FieldName:
		row.Name = value
	case domain.FieldDesignation:
		row.Designation = value
	case domain.FieldIdentifier:
		row.Identifier = value
	case domain.FieldHighlight:
		row.Highlight = value
	}
}
