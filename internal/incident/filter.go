// Package incident filters the incident list by free text, severity and status.
package incident

import (
	"strings"

	"github.com/thobs40/LLM-Rights-Monitor/internal/model"
)

// AllLabel is the display and wire name for "no constraint".
const AllLabel = "ALL"

// Query is a conjunctive incident filter. A nil Severity or Status means the
// field is unconstrained.
type Query struct {
	Text     string
	Severity *model.Severity
	Status   *model.IncidentStatus
}

// Empty reports whether q constrains nothing.
func (q Query) Empty() bool {
	return q.Text == "" && q.Severity == nil && q.Status == nil
}

// Match reports whether inc satisfies every constraint in q.
// Text matches case-insensitively against the title or affected artist and
// is not trimmed, so a whitespace-only query is matched literally.
func (q Query) Match(inc model.Incident) bool {
	if q.Text != "" {
		needle := strings.ToLower(q.Text)
		if !strings.Contains(strings.ToLower(inc.Title), needle) &&
			!strings.Contains(strings.ToLower(inc.AffectedArtist), needle) {
			return false
		}
	}
	if q.Severity != nil && inc.Severity != *q.Severity {
		return false
	}
	if q.Status != nil && inc.Status != *q.Status {
		return false
	}
	return true
}

// Filter returns the incidents matching q in their original order.
// The input is never modified and the result is never nil.
func Filter(incidents []model.Incident, q Query) []model.Incident {
	out := make([]model.Incident, 0, len(incidents))
	for _, inc := range incidents {
		if q.Match(inc) {
			out = append(out, inc)
		}
	}
	return out
}

// ParseSeverityFilter parses a severity constraint. "ALL" (any case) or the
// empty string yields nil.
func ParseSeverityFilter(v string) (*model.Severity, error) {
	if isAll(v) {
		return nil, nil
	}
	s, err := model.ParseSeverity(v)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ParseStatusFilter parses a status constraint. "ALL" (any case) or the
// empty string yields nil.
func ParseStatusFilter(v string) (*model.IncidentStatus, error) {
	if isAll(v) {
		return nil, nil
	}
	s, err := model.ParseIncidentStatus(v)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func isAll(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, AllLabel)
}

// SeverityLabel renders a severity constraint for display.
func SeverityLabel(s *model.Severity) string {
	if s == nil {
		return AllLabel
	}
	return string(*s)
}

// StatusLabel renders a status constraint for display.
func StatusLabel(s *model.IncidentStatus) string {
	if s == nil {
		return AllLabel
	}
	return string(*s)
}
