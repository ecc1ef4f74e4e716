package classifier

import (
	"testing"

	"github.com/jbeshir/expertise-predictor/data"
)

type testStrategy struct {
	NameValue     string
	ConstructFunc func() Model
}

func newTestStrategy(t *testing.T) *testStrategy {
	return &testStrategy{
		NameValue: "test",
		ConstructFunc: func() Model {
			t.Error("Construct should not be called")
			return nil
		},
	}
}

func (s *testStrategy) Name() string {
	return s.NameValue
}

func (s *testStrategy) Construct() Model {
	return s.ConstructFunc()
}

func newTestDataset(classes ...data.Expertise) *data.Dataset {
	ds := &data.Dataset{
		Attributes: []data.Attribute{
			{Name: data.RelativeModelingTime, Kind: data.Numeric},
			{Name: "activities", Kind: data.Numeric},
			{Name: "tool", Kind: data.Nominal},
		},
	}
	session := &data.Session{ModelID: "m1", TaskName: "task"}
	for i, c := range classes {
		session.Samples = append(session.Samples, &data.Sample{
			Class: c,
			Features: map[string]data.Value{
				data.RelativeModelingTime: data.NumericValue(float64(i) / float64(len(classes))),
				"activities":              data.NumericValue(float64(c.Index())),
				"tool":                    data.NominalValue("pencil"),
			},
		})
	}
	ds.Sessions = []*data.Session{session}
	return ds
}
