package roster

import (
	"errors"
	"fmt"
	"time"

	"volunteerhub/internal/domain"
)

// ErrNothingToSend is returned when a send resolves to no rows.
var ErrNothingToSend = errors.New("no rows to send")

// SendBlockedError reports the first row whose identifier blocks a send.
type SendBlockedError struct {
	Row    int
	Name   string
	Status IdentifierStatus
}

func (e *SendBlockedError) Error() string {
	if e.Status == IdentifierMissing {
		return fmt.Sprintf("Row %d (%s) is missing an identifier", e.Row+1, e.Name)
	}
	return fmt.Sprintf("Row %d (%s): %s", e.Row+1, e.Name, InvalidIdentifierMessage)
}

func (e *SendBlockedError) Is(target error) bool {
	return target == domain.ErrMissingFields
}

// Resolve returns the row indices covered by a send, in display order. row is
// only read for domain.SendRow.
func (s State) Resolve(mode domain.SendMode, row int) ([]int, error) {
	var rows []int
	switch mode {
	case domain.SendAll:
		rows = make([]int, len(s.Rows))
		for i := range rows {
			rows[i] = i
		}
	case domain.SendSelected:
		rows = s.SelectedRows()
	case domain.SendRow:
		if row < 0 || row >= len(s.Rows) {
			return nil, fmt.Errorf("row %d out of range (1-%d)", row+1, len(s.Rows))
		}
		rows = []int{row}
	default:
		return nil, fmt.Errorf("unknown send mode %q", mode)
	}
	if len(rows) == 0 {
		return nil, ErrNothingToSend
	}
	return rows, nil
}

// CheckSendable fails on the first row whose cached identifier check is not
// valid. Missing and invalid identifiers produce different messages.
func (s State) CheckSendable(rows []int) error {
	for _, i := range rows {
		check, ok := s.Checks[i]
		if !ok {
			status, _ := ValidateIdentifier(s.Rows[i].Identifier)
			check = IdentifierCheck{Status: status}
		}
		if check.Status != IdentifierValid {
			return &SendBlockedError{Row: i, Name: s.Rows[i].Name, Status: check.Status}
		}
	}
	return nil
}

// BuildPayload assembles the webhook body for rows. Timestamps are UTC with
// millisecond precision; the event date is omitted when unset.
func (s State) BuildPayload(rows []int, now time.Time, origin string) domain.WebhookPayload {
	data := make([]domain.FlattenedRow, 0, len(rows))
	for _, i := range rows {
		data = append(data, s.Rows[i])
	}
	p := domain.WebhookPayload{
		EventName:     s.EventName,
		Data:          data,
		Timestamp:     now.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		TriggeredFrom: origin,
	}
	if !s.EventDate.IsZero() {
		p.EventDate = s.EventDate.Format("2006-01-02")
	}
	return p
}
