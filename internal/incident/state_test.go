package incident

import (
	"slices"
	"testing"

	"github.com/thobs40/LLM-Rights-Monitor/internal/model"
)

func TestFilterStateZeroValue(t *testing.T) {
	t.Parallel()

	var f FilterState
	if f.Active() {
		t.Error("zero FilterState should be inactive")
	}
	if !f.Query().Empty() {
		t.Errorf("zero Query = %+v, want empty", f.Query())
	}
}

func TestClearFiltersReturnsFullInput(t *testing.T) {
	t.Parallel()
	incs := sampleIncidents(t)

	var f FilterState
	f.SetQuery("vertex")
	f.SetSeverity(sev(model.SeverityCritical))
	f.SetStatus(stat(model.StatusResolved))
	if !f.Active() {
		t.Fatal("expected Active after setting constraints")
	}
	if got := f.Apply(incs); len(got) != 0 {
		t.Fatalf("constrained Apply = %v, want empty", ids(got))
	}

	f.ClearFilters()
	if f.Active() {
		t.Error("Active after ClearFilters")
	}
	if got := f.Apply(incs); !slices.Equal(got, incs) {
		t.Errorf("Apply after ClearFilters = %v, want full input", ids(got))
	}
}

func TestActiveEachConstraint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		set  func(*FilterState)
	}{
		{"query", func(f *FilterState) { f.SetQuery("x") }},
		{"whitespace query", func(f *FilterState) { f.SetQuery(" ") }},
		{"severity", func(f *FilterState) { f.SetSeverity(sev(model.SeverityLow)) }},
		{"status", func(f *FilterState) { f.SetStatus(stat(model.StatusOpen)) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FilterState
			tt.set(&f)
			if !f.Active() {
				t.Error("expected Active")
			}
		})
	}
}

func TestSetSeverityCopiesPointer(t *testing.T) {
	t.Parallel()

	var f FilterState
	s := model.SeverityHigh
	f.SetSeverity(&s)
	s = model.SeverityLow
	if got := f.Query().Severity; got == nil || *got != model.SeverityHigh {
		t.Errorf("severity = %v, want HIGH", got)
	}

	q := f.Query()
	*q.Severity = model.SeverityMedium
	if *f.Query().Severity != model.SeverityHigh {
		t.Error("Query snapshot aliases internal state")
	}
}

func TestCycleSeverity(t *testing.T) {
	t.Parallel()

	var f FilterState
	want := []string{"LOW", "MEDIUM", "HIGH", "CRITICAL", "ALL", "LOW"}
	for i, w := range want {
		f.CycleSeverity(1)
		if got := SeverityLabel(f.Query().Severity); got != w {
			t.Errorf("step %d: severity = %s, want %s", i, got, w)
		}
	}

	f.ClearFilters()
	f.CycleSeverity(-1)
	if got := SeverityLabel(f.Query().Severity); got != "CRITICAL" {
		t.Errorf("backwards from ALL = %s, want CRITICAL", got)
	}
}

func TestCycleStatus(t *testing.T) {
	t.Parallel()

	var f FilterState
	want := []string{"OPEN", "INVESTIGATING", "RESOLVED", "ALL"}
	for i, w := range want {
		f.CycleStatus(1)
		if got := StatusLabel(f.Query().Status); got != w {
			t.Errorf("step %d: status = %s, want %s", i, got, w)
		}
	}

	f.CycleStatus(-1)
	if got := StatusLabel(f.Query().Status); got != "RESOLVED" {
		t.Errorf("backwards from ALL = %s, want RESOLVED", got)
	}
}

func TestApplyMatchesFilter(t *testing.T) {
	t.Parallel()
	incs := sampleIncidents(t)

	var f FilterState
	f.SetStatus(stat(model.StatusOpen))
	if got := ids(f.Apply(incs)); !slices.Equal(got, []string{"inc-001", "inc-004"}) {
		t.Errorf("Apply(status=OPEN) = %v", got)
	}
}
