package data

import (
	"strings"

	"github.com/pkg/errors"
)

// Expertise is the skill level a sample is labelled with.
type Expertise int

const (
	// Unknown marks a sample that could not be classified. It is never a
	// ground-truth label and is not part of Names().
	Unknown Expertise = iota
	Novice
	Expert
)

// The order of this list is the class index order used by trained models.
var expertiseNames = []string{"novice", "expert"}

// Names returns the label names in class index order.
func Names() []string {
	names := make([]string, len(expertiseNames))
	copy(names, expertiseNames)
	return names
}

// FromIndex maps a model's raw class index back to a label.
func FromIndex(i int) (Expertise, error) {
	if i < 0 || i >= len(expertiseNames) {
		return Unknown, errors.Errorf("class index out of range: %d", i)
	}
	return Expertise(i + 1), nil
}

func FromString(name string) (Expertise, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, candidate := range expertiseNames {
		if candidate == n {
			return Expertise(i + 1), nil
		}
	}
	return Unknown, errors.Errorf("unknown expertise: %q", name)
}

// Index returns the class index of e, or -1 for Unknown.
func (e Expertise) Index() int {
	if e <= Unknown || int(e) > len(expertiseNames) {
		return -1
	}
	return int(e) - 1
}

func (e Expertise) String() string {
	if i := e.Index(); i >= 0 {
		return expertiseNames[i]
	}
	return "unknown"
}

func (e Expertise) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

func (e *Expertise) UnmarshalText(text []byte) error {
	if string(text) == "unknown" {
		*e = Unknown
		return nil
	}
	v, err := FromString(string(text))
	if err != nil {
		return err
	}
	*e = v
	return nil
}
