package model

import (
	"errors"
	"fmt"
	"strings"
)

// Status is the pipeline stage of a transaction. Each value maps to one
// column of the board.
type Status string

const (
	StatusInProgress  Status = "in_progress"
	StatusConditional Status = "conditional"
	StatusFirm        Status = "firm"
	StatusClosed      Status = "closed"
)

var ErrUnknownStatus = errors.New("unknown status")

var statusOrder = []Status{
	StatusInProgress,
	StatusConditional,
	StatusFirm,
	StatusClosed,
}

var statusLabels = map[Status]string{
	StatusInProgress:  "In Progress",
	StatusConditional: "Conditional",
	StatusFirm:        "Firm",
	StatusClosed:      "Closed",
}

// Statuses returns the pipeline stages in board order.
func Statuses() []Status {
	out := make([]Status, len(statusOrder))
	copy(out, statusOrder)
	return out
}

func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus accepts the wire value, the display label and the usual
// spacing/case variants ("in progress", "In-Progress", "FIRM").
func ParseStatus(raw string) (Status, error) {
	norm := strings.ToLower(strings.TrimSpace(raw))
	norm = strings.NewReplacer(" ", "_", "-", "_").Replace(norm)

	s := Status(norm)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
	}
	return s, nil
}
