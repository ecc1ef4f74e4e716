package data

// Session is the time-ordered run of samples recorded for one model.
// Sessions are immutable once loaded.
type Session struct {
	ModelID  string
	TaskName string
	Samples  []*Sample
}

func (s *Session) Len() int {
	return len(s.Samples)
}

// SampleClass is the class the whole session is expected to carry, taken from
// its first sample.
func (s *Session) SampleClass() Expertise {
	if len(s.Samples) == 0 {
		return Unknown
	}
	return s.Samples[0].Class
}

type Attribute struct {
	Name string
	Kind ValueKind
}

// Dataset is a set of sessions sharing one attribute schema.
type Dataset struct {
	Attributes []Attribute
	Sessions   []*Session
}

// NumericFeatures returns the names of numeric attributes in schema order.
// These make up the feature vectors handed to models.
func (d *Dataset) NumericFeatures() []string {
	var names []string
	for _, a := range d.Attributes {
		if a.Kind == Numeric {
			names = append(names, a.Name)
		}
	}
	return names
}

func (d *Dataset) Samples() []*Sample {
	var samples []*Sample
	for _, s := range d.Sessions {
		samples = append(samples, s.Samples...)
	}
	return samples
}

func (d *Dataset) Session(modelID string) *Session {
	for _, s := range d.Sessions {
		if s.ModelID == modelID {
			return s
		}
	}
	return nil
}
