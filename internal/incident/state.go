package incident

import "github.com/thobs40/LLM-Rights-Monitor/internal/model"

// FilterState holds the dashboard's current incident filter. It is mutated
// only through its methods; the zero value is an empty filter.
type FilterState struct {
	text     string
	severity *model.Severity
	status   *model.IncidentStatus
}

// SetQuery replaces the free-text query.
func (f *FilterState) SetQuery(text string) { f.text = text }

// SetSeverity replaces the severity constraint; nil means ALL.
func (f *FilterState) SetSeverity(s *model.Severity) { f.severity = cloneSeverity(s) }

// SetStatus replaces the status constraint; nil means ALL.
func (f *FilterState) SetStatus(s *model.IncidentStatus) { f.status = cloneStatus(s) }

// ClearFilters resets the query and both constraints.
func (f *FilterState) ClearFilters() {
	f.text = ""
	f.severity = nil
	f.status = nil
}

// Query returns a snapshot of the current filter.
func (f *FilterState) Query() Query {
	return Query{
		Text:     f.text,
		Severity: cloneSeverity(f.severity),
		Status:   cloneStatus(f.status),
	}
}

// Active reports whether any constraint is set.
func (f *FilterState) Active() bool {
	return !f.Query().Empty()
}

// Apply filters incidents with the current state.
func (f *FilterState) Apply(incidents []model.Incident) []model.Incident {
	return Filter(incidents, f.Query())
}

// CycleSeverity steps the severity constraint through ALL, LOW, ..., CRITICAL
// and back to ALL. A negative step walks backwards.
func (f *FilterState) CycleSeverity(step int) {
	idx := -1
	if f.severity != nil {
		idx = f.severity.Rank()
	}
	next := cycle(idx, step, len(model.Severities))
	if next < 0 {
		f.severity = nil
		return
	}
	s := model.Severities[next]
	f.severity = &s
}

// CycleStatus steps the status constraint through ALL, OPEN, INVESTIGATING,
// RESOLVED and back to ALL. A negative step walks backwards.
func (f *FilterState) CycleStatus(step int) {
	idx := -1
	if f.status != nil {
		for i, s := range model.Statuses {
			if s == *f.status {
				idx = i
				break
			}
		}
	}
	next := cycle(idx, step, len(model.Statuses))
	if next < 0 {
		f.status = nil
		return
	}
	s := model.Statuses[next]
	f.status = &s
}

// cycle moves idx by step over the ring [-1, n), where -1 stands for ALL.
func cycle(idx, step, n int) int {
	size := n + 1
	pos := ((idx+1+step)%size + size) % size
	return pos - 1
}

func cloneSeverity(s *model.Severity) *model.Severity {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneStatus(s *model.IncidentStatus) *model.IncidentStatus {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
