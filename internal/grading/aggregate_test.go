package grading

import (
	"errors"
	"reflect"
	"testing"
)

func fullTerm() []SubjectScore {
	return []SubjectScore{
		{Subject: "English Language", Total: 85},
		{Subject: "Mathematics", Total: 90},
		{Subject: "Integrated Science", Total: 75},
		{Subject: "Social Studies", Total: 60},
		{Subject: "Religious and Moral Education", Total: 95},
		{Subject: "Ghanaian Language", Total: 40},
		{Subject: "Creative Arts", Total: 92},
	}
}

func TestComputeAggregate(t *testing.T) {
	agg, err := ComputeAggregate(fullTerm())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// cores: 85→1, 90→1, 75→2, 60→3
	if agg.CoreSum != 7 {
		t.Errorf("CoreSum = %d, want 7", agg.CoreSum)
	}
	// electives band to {1, 7, 1}; best two sum to 2
	if agg.BestElectiveSum != 2 {
		t.Errorf("BestElectiveSum = %d, want 2", agg.BestElectiveSum)
	}
	if agg.Aggregate != 9 {
		t.Errorf("Aggregate = %d, want 9", agg.Aggregate)
	}
	if len(agg.MissingCores) != 0 {
		t.Errorf("MissingCores = %v, want none", agg.MissingCores)
	}
}

func TestComputeAggregateMissingCore(t *testing.T) {
	var subjects []SubjectScore
	for _, s := range fullTerm() {
		if s.Subject == "Social Studies" {
			continue
		}
		subjects = append(subjects, s)
	}

	agg, err := ComputeAggregate(subjects)
	if err != nil {
		t.Fatalf("default mode must not fail on a missing core: %v", err)
	}
	if !reflect.DeepEqual(agg.MissingCores, []string{CoreSocial}) {
		t.Errorf("MissingCores = %v, want [%s]", agg.MissingCores, CoreSocial)
	}
	// remaining cores 1+1+2, best two electives 1+1
	if agg.Aggregate != 6 {
		t.Errorf("Aggregate = %d, want 6", agg.Aggregate)
	}
}

func TestComputeAggregateStrict(t *testing.T) {
	_, err := ComputeAggregate([]SubjectScore{{Subject: "Mathematics", Total: 90}}, WithStrict())
	if !errors.Is(err, ErrIncompleteAggregate) {
		t.Fatalf("got %v, want ErrIncompleteAggregate", err)
	}
}

func TestComputeAggregateKeepsBestDuplicateCore(t *testing.T) {
	agg, err := ComputeAggregate([]SubjectScore{
		{Subject: "Mathematics", Total: 50},
		{Subject: "Further Mathematics", Total: 85},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if agg.CoreBands[CoreMath] != 1 {
		t.Errorf("math band = %d, want best (1)", agg.CoreBands[CoreMath])
	}
}

func TestComputeAggregateOutOfRange(t *testing.T) {
	if _, err := ComputeAggregate([]SubjectScore{{Subject: "Mathematics", Total: 120}}); err == nil {
		t.Fatal("expected out-of-range error")
	}
}

func TestComputeAggregateEmpty(t *testing.T) {
	agg, err := ComputeAggregate(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if agg.Aggregate != 0 || len(agg.MissingCores) != 4 {
		t.Errorf("empty input: got %+v, want zero aggregate and 4 missing cores", agg)
	}
}

func TestClassifySubject(t *testing.T) {
	cases := map[string]string{
		"English Language":       CoreEnglish,
		"english":                CoreEnglish,
		"Mathematics":            CoreMath,
		"Core Maths":             CoreMath,
		"Integrated Science":     CoreScience,
		"Science":                CoreScience,
		"General Science":        CoreScience,
		"Social Studies":         CoreSocial,
		"Social":                 CoreSocial,
		"Religious and Moral Ed": "",
		"French":                 "",
		"Computer Science":       "", // only "integrated science" or bare "science" are core
	}
	for name, want := range cases {
		if got := ClassifySubject(name); got != want {
			t.Errorf("ClassifySubject(%q) = %q, want %q", name, got, want)
		}
	}
}
