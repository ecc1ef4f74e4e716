package data

import (
	"fmt"
	"strconv"
)

// RelativeModelingTime is the feature holding a sample's position within its
// session, in [0,1].
const RelativeModelingTime = "relative_modeling_time"

type ValueKind int

const (
	Numeric ValueKind = iota
	Nominal
)

func (k ValueKind) String() string {
	if k == Nominal {
		return "nominal"
	}
	return "numeric"
}

// Value is a single feature value.
type Value struct {
	Kind   ValueKind
	Number float64
	Label  string
}

func NumericValue(f float64) Value {
	return Value{Kind: Numeric, Number: f}
}

func NominalValue(s string) Value {
	return Value{Kind: Nominal, Label: s}
}

func (v Value) String() string {
	if v.Kind == Nominal {
		return v.Label
	}
	return strconv.FormatFloat(v.Number, 'g', -1, 64)
}

// WrongValueType is returned when a feature is requested with a kind other
// than the one it is stored as.
type WrongValueType struct {
	Feature  string
	Expected ValueKind
	Actual   ValueKind
}

func (e *WrongValueType) Error() string {
	return fmt.Sprintf("feature %s is %s, not %s", e.Feature, e.Actual, e.Expected)
}

type MissingFeature struct {
	Feature string
}

func (e *MissingFeature) Error() string {
	return fmt.Sprintf("feature %s not present on sample", e.Feature)
}

// Sample is one observation within a modeling session.
type Sample struct {
	Class    Expertise
	Features map[string]Value
}

func (s *Sample) Numeric(name string) (float64, error) {
	v, ok := s.Features[name]
	if !ok {
		return 0, &MissingFeature{Feature: name}
	}
	if v.Kind != Numeric {
		return 0, &WrongValueType{Feature: name, Expected: Numeric, Actual: v.Kind}
	}
	return v.Number, nil
}

func (s *Sample) Nominal(name string) (string, error) {
	v, ok := s.Features[name]
	if !ok {
		return "", &MissingFeature{Feature: name}
	}
	if v.Kind != Nominal {
		return "", &WrongValueType{Feature: name, Expected: Nominal, Actual: v.Kind}
	}
	return v.Label, nil
}

// RelativeTime is shorthand for Numeric(RelativeModelingTime).
func (s *Sample) RelativeTime() (float64, error) {
	return s.Numeric(RelativeModelingTime)
}
