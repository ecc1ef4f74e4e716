package testhelpers

import (
	"testing"
)

type Model struct {
	FitFunc             func(x [][]float64, y []int) error
	PredictFunc         func(x []float64) (int, error)
	MarshalBinaryFunc   func() ([]byte, error)
	UnmarshalBinaryFunc func(b []byte) error
}

func NewModel(t *testing.T) *Model {
	return &Model{
		FitFunc: func(x [][]float64, y []int) error {
			t.Error("Fit should not be called")
			return nil
		},
		PredictFunc: func(x []float64) (int, error) {
			t.Error("Predict should not be called")
			return 0, nil
		},
		MarshalBinaryFunc: func() ([]byte, error) {
			t.Error("MarshalBinary should not be called")
			return nil, nil
		},
		UnmarshalBinaryFunc: func(b []byte) error {
			t.Error("UnmarshalBinary should not be called")
			return nil
		},
	}
}

func (m *Model) Fit(x [][]float64, y []int) error {
	return m.FitFunc(x, y)
}

func (m *Model) Predict(x []float64) (int, error) {
	return m.PredictFunc(x)
}

func (m *Model) MarshalBinary() ([]byte, error) {
	return m.MarshalBinaryFunc()
}

func (m *Model) UnmarshalBinary(b []byte) error {
	return m.UnmarshalBinaryFunc(b)
}
