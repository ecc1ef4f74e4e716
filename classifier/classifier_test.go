package classifier

import (
	"context"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/golang/snappy"
	"github.com/jbeshir/expertise-predictor/data"
	"github.com/jbeshir/expertise-predictor/filestore"
	"github.com/jbeshir/expertise-predictor/testhelpers"
	"github.com/pkg/errors"
)

// newEchoModel returns a model that predicts the class index stored in the
// second feature.
func newEchoModel(t *testing.T) *testhelpers.Model {
	m := testhelpers.NewModel(t)
	m.FitFunc = func(x [][]float64, y []int) error {
		return nil
	}
	m.PredictFunc = func(x []float64) (int, error) {
		return int(x[1]), nil
	}
	return m
}

func TestClassifier_Train(t *testing.T) {
	t.Parallel()

	ds := newTestDataset(data.Novice, data.Expert, data.Expert)

	calledFit := false
	m := newEchoModel(t)
	m.FitFunc = func(x [][]float64, y []int) error {
		calledFit = true
		wantX := [][]float64{{0, 0}, {1.0 / 3, 1}, {2.0 / 3, 1}}
		if !reflect.DeepEqual(x, wantX) {
			t.Errorf("Expected vectors %v, was %v", wantX, x)
		}
		if !reflect.DeepEqual(y, []int{0, 1, 1}) {
			t.Errorf("Expected labels [0 1 1], was %v", y)
		}
		return nil
	}

	s := newTestStrategy(t)
	s.ConstructFunc = func() Model { return m }

	c := New(s, nil)
	if err := c.Train(context.Background(), ds); err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	if !calledFit {
		t.Error("Expected Fit to be called, was not called")
	}
	if !c.Trained() {
		t.Error("Expected classifier to be trained")
	}
	if !reflect.DeepEqual(c.Features(), []string{data.RelativeModelingTime, "activities"}) {
		t.Errorf("Unexpected features: %v", c.Features())
	}

	e, err := c.Classify(context.Background(), ds.Sessions[0].Samples[1])
	if err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	if e != data.Expert {
		t.Errorf("Expected expert, was %s", e)
	}
}

func TestClassifier_TrainError(t *testing.T) {
	t.Parallel()

	ds := newTestDataset(data.Novice, data.Expert)

	m := testhelpers.NewModel(t)
	m.FitFunc = func(x [][]float64, y []int) error {
		return errors.New("bluh")
	}
	s := newTestStrategy(t)
	s.ConstructFunc = func() Model { return m }

	c := New(s, nil)
	err := c.Train(context.Background(), ds)
	modelErr, ok := err.(*ModelError)
	if !ok {
		t.Fatalf("Expected *ModelError, was %T (%v)", err, err)
	}
	if modelErr.Op != "train" {
		t.Errorf("Expected op train, was %s", modelErr.Op)
	}
	if c.Trained() {
		t.Error("Expected classifier to stay untrained after failed training")
	}
}

func TestClassifier_TrainKeepsPreviousModel(t *testing.T) {
	t.Parallel()

	ds := newTestDataset(data.Novice, data.Expert)

	good := newEchoModel(t)
	bad := testhelpers.NewModel(t)
	bad.FitFunc = func(x [][]float64, y []int) error {
		return errors.New("bluh")
	}

	s := newTestStrategy(t)
	s.ConstructFunc = func() Model { return good }
	c := New(s, nil)
	if err := c.Train(context.Background(), ds); err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}

	s.ConstructFunc = func() Model { return bad }
	if err := c.Train(context.Background(), ds); err == nil {
		t.Fatal("Expected error, got nil error")
	}

	e, err := c.Classify(context.Background(), ds.Sessions[0].Samples[0])
	if err != nil || e != data.Novice {
		t.Errorf("Expected previous model to classify novice, got %s (%v)", e, err)
	}
}

func TestClassifier_TrainInvalidDataset(t *testing.T) {
	t.Parallel()

	s := newTestStrategy(t)
	c := New(s, nil)

	noFeatures := &data.Dataset{Attributes: []data.Attribute{{Name: "tool", Kind: data.Nominal}}}
	if _, ok := c.Train(context.Background(), noFeatures).(*ModelError); !ok {
		t.Error("Expected *ModelError for dataset without numeric features")
	}

	empty := newTestDataset()
	if _, ok := c.Train(context.Background(), empty).(*ModelError); !ok {
		t.Error("Expected *ModelError for dataset without samples")
	}

	unlabelled := newTestDataset(data.Novice)
	unlabelled.Sessions[0].Samples[0].Class = data.Unknown
	if _, ok := c.Train(context.Background(), unlabelled).(*ModelError); !ok {
		t.Error("Expected *ModelError for dataset with unlabelled sample")
	}
}

func TestClassifier_ClassifyErrors(t *testing.T) {
	t.Parallel()

	ds := newTestDataset(data.Novice, data.Expert)
	s := newTestStrategy(t)
	c := New(s, nil)

	e, err := c.Classify(context.Background(), ds.Sessions[0].Samples[0])
	if errors.Cause(err) != ErrNotTrained {
		t.Errorf("Expected ErrNotTrained, was %v", err)
	}
	if e != data.Unknown {
		t.Errorf("Expected Unknown, was %s", e)
	}

	m := newEchoModel(t)
	s.ConstructFunc = func() Model { return m }
	if err := c.Train(context.Background(), ds); err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}

	wrongType := &data.Sample{
		Class: data.Novice,
		Features: map[string]data.Value{
			data.RelativeModelingTime: data.NumericValue(0.5),
			"activities":              data.NominalValue("many"),
		},
	}
	_, err = c.Classify(context.Background(), wrongType)
	if _, ok := errors.Cause(err).(*data.WrongValueType); !ok {
		t.Errorf("Expected *data.WrongValueType cause, was %v", err)
	}

	m.PredictFunc = func(x []float64) (int, error) {
		return 7, nil
	}
	if _, err := c.Classify(context.Background(), ds.Sessions[0].Samples[0]); err == nil {
		t.Error("Expected error for out of range class index, got nil error")
	}
}

func TestClassifier_ClassifyBatch(t *testing.T) {
	t.Parallel()

	ds := newTestDataset(data.Novice, data.Expert, data.Expert, data.Novice)
	ds.Sessions[0].Samples[2].Features["activities"] = data.NominalValue("many")

	m := newEchoModel(t)
	m.PredictFunc = func(x []float64) (int, error) {
		if x[0] == 0.75 {
			return 0, errors.New("bluh")
		}
		return int(x[1]), nil
	}
	s := newTestStrategy(t)
	s.ConstructFunc = func() Model { return m }

	c := New(s, nil)
	if err := c.Train(context.Background(), newTestDataset(data.Novice, data.Expert)); err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}

	got := c.ClassifyBatch(context.Background(), ds.Sessions[0].Samples)
	want := []data.Expertise{data.Novice, data.Expert, data.Unknown, data.Unknown}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, was %v", want, got)
	}
}

func TestClassifier_SaveLoad(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fs := filestore.NewMemStore()
	ds := newTestDataset(data.Novice, data.Expert)

	trained := newEchoModel(t)
	trained.MarshalBinaryFunc = func() ([]byte, error) {
		return []byte("weights"), nil
	}
	s := newTestStrategy(t)
	s.ConstructFunc = func() Model { return trained }

	c := New(s, fs)
	if err := c.Save(ctx, "model.bin"); errors.Cause(err) != ErrNotTrained {
		t.Errorf("Expected ErrNotTrained saving untrained model, was %v", err)
	}
	if err := c.Train(ctx, ds); err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	if err := c.Save(ctx, "models/model.bin"); err != nil {
		t.Fatalf("Unexpected error from Save: %s", err)
	}

	calledUnmarshal := false
	loaded := newEchoModel(t)
	loaded.UnmarshalBinaryFunc = func(b []byte) error {
		calledUnmarshal = true
		if string(b) != "weights" {
			t.Errorf("Expected model bytes 'weights', was '%s'", b)
		}
		return nil
	}
	s2 := newTestStrategy(t)
	s2.ConstructFunc = func() Model { return loaded }

	c2 := New(s2, fs)
	if err := c2.Load(ctx, "models/model.bin"); err != nil {
		t.Fatalf("Unexpected error from Load: %s", err)
	}
	if !calledUnmarshal {
		t.Error("Expected UnmarshalBinary to be called, was not called")
	}
	if !reflect.DeepEqual(c2.Features(), c.Features()) {
		t.Errorf("Expected features %v, was %v", c.Features(), c2.Features())
	}
	if e, err := c2.Classify(ctx, ds.Sessions[0].Samples[1]); err != nil || e != data.Expert {
		t.Errorf("Expected expert from loaded model, got %s (%v)", e, err)
	}
}

func TestClassifier_LoadErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fs := filestore.NewMemStore()

	encode := func(env modelEnvelope) []byte {
		payload, _ := json.Marshal(&env)
		return snappy.Encode(nil, payload)
	}

	_ = fs.Save(ctx, "garbage.bin", []byte("not snappy"))
	_ = fs.Save(ctx, "strategy.bin", encode(modelEnvelope{Version: modelFormatVersion, Strategy: "forest", Labels: data.Names()}))
	_ = fs.Save(ctx, "labels.bin", encode(modelEnvelope{Version: modelFormatVersion, Strategy: "test", Labels: []string{"expert", "novice"}}))
	_ = fs.Save(ctx, "version.bin", encode(modelEnvelope{Version: 99, Strategy: "test", Labels: data.Names()}))

	for _, path := range []string{"missing.bin", "garbage.bin", "strategy.bin", "labels.bin", "version.bin"} {
		c := New(newTestStrategy(t), fs)
		err := c.Load(ctx, path)
		modelErr, ok := err.(*ModelError)
		if !ok {
			t.Errorf("%s: expected *ModelError, was %T (%v)", path, err, err)
			continue
		}
		if modelErr.Op != "load" {
			t.Errorf("%s: expected op load, was %s", path, modelErr.Op)
		}
		if c.Trained() {
			t.Errorf("%s: expected classifier to stay untrained", path)
		}
	}
}

func TestClassifier_Evaluate(t *testing.T) {
	t.Parallel()

	ds := newTestDataset(data.Novice, data.Expert, data.Expert, data.Novice)

	m := newEchoModel(t)
	m.PredictFunc = func(x []float64) (int, error) {
		switch x[0] {
		case 0.25:
			return 0, nil
		case 0.5:
			return 0, errors.New("bluh")
		}
		return int(x[1]), nil
	}
	s := newTestStrategy(t)
	s.ConstructFunc = func() Model { return m }

	c := New(s, nil)
	if _, err := c.Evaluate(context.Background(), ds); errors.Cause(err) != ErrNotTrained {
		t.Errorf("Expected ErrNotTrained, was %v", err)
	}
	if err := c.Train(context.Background(), ds); err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}

	eval, err := c.Evaluate(context.Background(), ds)
	if err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	if eval.Total != 4 || eval.Correct != 2 || eval.Unclassified != 1 {
		t.Errorf("Unexpected counts: %+v", eval)
	}
	if eval.Accuracy() != 0.5 {
		t.Errorf("Expected accuracy 0.5, was %g", eval.Accuracy())
	}
	wantConfusion := [][]int{{2, 0}, {1, 0}}
	if !reflect.DeepEqual(eval.Confusion, wantConfusion) {
		t.Errorf("Expected confusion %v, was %v", wantConfusion, eval.Confusion)
	}

	summary := eval.Summary()
	for _, want := range []string{"Correctly classified instances   2", "Confusion matrix:", "NOVICE", "EXPERT"} {
		if !strings.Contains(strings.ToUpper(summary), strings.ToUpper(want)) {
			t.Errorf("Expected summary to contain %q, got:\n%s", want, summary)
		}
	}
}
