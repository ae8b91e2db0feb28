package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"volunteerhub/internal/domain"
	"volunteerhub/internal/roster"
)

const dateLayout = "2006-01-02"

// rosterFile is the on-disk hand-off between extract and send.
type rosterFile struct {
	EventName string                   `json:"eventName"`
	EventDate string                   `json:"eventDate,omitempty"`
	People    []domain.ExtractedPerson `json:"extractedData"`
}

func (f *rosterFile) state() (roster.State, error) {
	var date time.Time
	if f.EventDate != "" {
		d, err := time.Parse(dateLayout, f.EventDate)
		if err != nil {
			return roster.State{}, fmt.Errorf("invalid event date %q: %w", f.EventDate, err)
		}
		date = d
	}
	return roster.Reduce(roster.State{}, roster.Extracted{
		EventName: f.EventName,
		EventDate: date,
		People:    f.People,
	}), nil
}

func fromState(s roster.State) rosterFile {
	f := rosterFile{EventName: s.EventName, People: s.People}
	if !s.EventDate.IsZero() {
		f.EventDate = s.EventDate.Format(dateLayout)
	}
	return f
}

func readRoster(path string) (*rosterFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster: %w", err)
	}
	var f rosterFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse roster: %w", err)
	}
	return &f, nil
}

func writeRoster(path string, f rosterFile) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal roster: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write roster: %w", err)
	}
	return nil
}

// parseEdit reads "ROW:FIELD=VALUE" with a 1-based row.
func parseEdit(s string) (roster.EditField, error) {
	target, value, ok := strings.Cut(s, "=")
	if !ok {
		return roster.EditField{}, fmt.Errorf("edit %q: expected ROW:FIELD=VALUE", s)
	}
	rowStr, fieldStr, ok := strings.Cut(target, ":")
	if !ok {
		return roster.EditField{}, fmt.Errorf("edit %q: expected ROW:FIELD=VALUE", s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(rowStr))
	if err != nil || row < 1 {
		return roster.EditField{}, fmt.Errorf("edit %q: row must be a positive number", s)
	}
	field := domain.RowField(strings.ToLower(strings.TrimSpace(fieldStr)))
	switch field {
	case domain.FieldName, domain.FieldDesignation, domain.FieldIdentifier, domain.FieldHighlight:
	default:
		return roster.EditField{}, fmt.Errorf("edit %q: unknown field %q", s, fieldStr)
	}
	return roster.EditField{Row: row - 1, Field: field, Value: value}, nil
}

// applySelection selects the given 1-based rows.
func applySelection(s roster.State, rows []int) (roster.State, error) {
	for _, n := range rows {
		if n < 1 || n > len(s.Rows) {
			return s, fmt.Errorf("select %d: roster has %d rows", n, len(s.Rows))
		}
		s = roster.Reduce(s, roster.Select{Row: n - 1})
	}
	return s, nil
}

// printRoster writes the rows as a table with 1-based row numbers.
func printRoster(w io.Writer, s roster.State) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ROW\tNAME\tDESIGNATION\tIDENTIFIER\tHIGHLIGHT\tCHECK\n")
	for i, row := range s.Rows {
		check := s.Checks[i].Status.String()
		if s.Selected[i] {
			check += " *"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", i+1, row.Name, row.Designation, row.Identifier, row.Highlight, check)
	}
	_ = tw.Flush()
}
