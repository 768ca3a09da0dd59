package grading

import (
	"errors"
	"sort"
	"strings"
)

// Core subject categories. The aggregate is the sum of the four core bands
// plus the best two elective bands; lower is better, a perfect student
// scores 6.
const (
	CoreEnglish = "English Language"
	CoreMath    = "Mathematics"
	CoreScience = "Integrated Science"
	CoreSocial  = "Social Studies"
)

var coreOrder = []string{CoreEnglish, CoreMath, CoreScience, CoreSocial}

// ErrIncompleteAggregate is returned in strict mode when one or more core
// subjects have no score for the term.
var ErrIncompleteAggregate = errors.New("incomplete aggregate: missing core subject")

// SubjectScore is one subject's term total for a student.
type SubjectScore struct {
	Subject string
	Total   float64
}

// Aggregate is the computed composite for one student in one term.
type Aggregate struct {
	CoreBands       map[string]int `json:"core_bands"`
	CoreSum         int            `json:"core_sum"`
	BestElectiveSum int            `json:"best_elective_sum"`
	Aggregate       int            `json:"aggregate"`
	MissingCores    []string       `json:"missing_cores,omitempty"`
}

type aggOpts struct {
	strict bool
}

type AggregateOption func(*aggOpts)

// WithStrict makes a missing core subject an error instead of a warning
// carried in MissingCores.
func WithStrict() AggregateOption {
	return func(o *aggOpts) { o.strict = true }
}

// ClassifySubject maps a subject name to its core category, or "" for an
// elective. Matching is case-insensitive substring matching: this is how
// subject reference data has always been keyed, and renaming subjects in the
// store is not an option.
func ClassifySubject(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	switch {
	case strings.Contains(n, "english"):
		return CoreEnglish
	case strings.Contains(n, "math"):
		return CoreMath
	case strings.Contains(n, "integrated science"), n == "science", n == "general science":
		return CoreScience
	case strings.Contains(n, "social"):
		return CoreSocial
	}
	return ""
}

// ComputeAggregate computes the composite aggregate from one student's
// subject totals for a single term. Core categories with several matching
// subjects keep the best (lowest) band. Core categories with no subject are
// reported in MissingCores and excluded from the sum unless WithStrict is
// set. An out-of-range total fails the whole computation.
func ComputeAggregate(scores []SubjectScore, opts ...AggregateOption) (Aggregate, error) {
	var o aggOpts
	for _, fn := range opts {
		fn(&o)
	}

	coreBands := map[string]int{}
	var electives []int
	for _, s := range scores {
		b, err := Band(s.Total)
		if err != nil {
			return Aggregate{}, err
		}
		cat := ClassifySubject(s.Subject)
		if cat == "" {
			electives = append(electives, b)
			continue
		}
		if prev, ok := coreBands[cat]; !ok || b < prev {
			coreBands[cat] = b
		}
	}

	agg := Aggregate{CoreBands: coreBands}
	for _, cat := range coreOrder {
		b, ok := coreBands[cat]
		if !ok {
			agg.MissingCores = append(agg.MissingCores, cat)
			continue
		}
		agg.CoreSum += b
	}
	if len(agg.MissingCores) > 0 && o.strict {
		return Aggregate{}, ErrIncompleteAggregate
	}

	sort.Ints(electives)
	for i := 0; i < len(electives) && i < 2; i++ {
		agg.BestElectiveSum += electives[i]
	}
	agg.Aggregate = agg.CoreSum + agg.BestElectiveSum
	return agg, nil
}
