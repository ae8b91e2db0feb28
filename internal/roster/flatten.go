// Package roster holds the editable table built from an extraction result and
// the rules deciding which rows may be forwarded.
package roster

import "volunteerhub/internal/domain"

// Flatten expands people into table rows: one row per contribution in input
// order, or a single row with an empty highlight for a person without any.
// Every row carries the index of its person in OriginalIndex.
func Flatten(people []domain.ExtractedPerson) []domain.FlattenedRow {
	rows := make([]domain.FlattenedRow, 0, len(people))
	for i, p := range people {
		base := domain.FlattenedRow{
			Name:          p.Name,
			Designation:   p.Designation,
			Identifier:    p.Identifier,
			OriginalIndex: i,
		}
		if len(p.Contributions) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, c := range p.Contributions {
			row := base
			row.Highlight = c.Highlight
			rows = append(rows, row)
		}
	}
	return rows
}
