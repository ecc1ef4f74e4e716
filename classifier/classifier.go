package classifier

import (
	"context"
	"encoding/json"

	"github.com/golang/snappy"
	"github.com/jbeshir/expertise-predictor/data"
	"github.com/jbeshir/moonbird-auth-frontend/ctxlogrus"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const modelFormatVersion = 1

// Classifier labels samples with a model built by its Strategy.
//
// A Classifier is meant to have a single owner: Train and Load replace the
// model in place and must not run concurrently with each other or with
// classification.
type Classifier struct {
	Strategy  Strategy
	FileStore FileStore

	model    Model
	features []string
}

type modelEnvelope struct {
	Version  int
	Strategy string
	Labels   []string
	Features []string
	Model    []byte
}

func New(strategy Strategy, fs FileStore) *Classifier {
	return &Classifier{
		Strategy:  strategy,
		FileStore: fs,
	}
}

func (c *Classifier) Trained() bool {
	return c.model != nil
}

// Features returns the numeric features the current model was trained on, in
// vector order.
func (c *Classifier) Features() []string {
	return c.features
}

// Train builds a fresh model from every sample in ds. On failure the
// previous model, if any, is kept.
func (c *Classifier) Train(ctx context.Context, ds *data.Dataset) error {
	ctx = ctxlogrus.WithFields(ctx, logrus.Fields{
		"strategy": c.Strategy.Name(),
	})
	l := ctxlogrus.Get(ctx)

	features := ds.NumericFeatures()
	if len(features) == 0 {
		return modelError("train", errors.New("dataset has no numeric features"))
	}

	samples := ds.Samples()
	if len(samples) == 0 {
		return modelError("train", errors.New("dataset has no samples"))
	}

	x := make([][]float64, 0, len(samples))
	y := make([]int, 0, len(samples))
	for i, s := range samples {
		v, err := featureVector(s, features)
		if err != nil {
			return modelError("train", errors.Wrapf(err, "sample %d", i))
		}
		class := s.Class.Index()
		if class < 0 {
			return modelError("train", errors.Errorf("sample %d has no ground truth", i))
		}
		x = append(x, v)
		y = append(y, class)
	}

	l.Infof("Training on %d samples with %d features", len(x), len(features))
	m := c.Strategy.Construct()
	if err := m.Fit(x, y); err != nil {
		return modelError("train", err)
	}

	c.model = m
	c.features = features
	return nil
}

func (c *Classifier) Classify(ctx context.Context, sample *data.Sample) (data.Expertise, error) {
	if !c.Trained() {
		return data.Unknown, modelError("classify", ErrNotTrained)
	}

	v, err := featureVector(sample, c.features)
	if err != nil {
		return data.Unknown, modelError("classify", err)
	}

	class, err := c.model.Predict(v)
	if err != nil {
		return data.Unknown, modelError("classify", err)
	}

	e, err := data.FromIndex(class)
	if err != nil {
		return data.Unknown, modelError("classify", err)
	}
	return e, nil
}

// ClassifyBatch classifies each sample in order. A sample that can't be
// classified is logged and recorded as data.Unknown, so the result always
// lines up with samples.
func (c *Classifier) ClassifyBatch(ctx context.Context, samples []*data.Sample) []data.Expertise {
	l := ctxlogrus.Get(ctx)

	classifications := make([]data.Expertise, len(samples))
	for i, s := range samples {
		e, err := c.Classify(ctx, s)
		if err != nil {
			l.Warnf("Unable to classify sample %d: %s", i, err)
		}
		classifications[i] = e
	}
	return classifications
}

func (c *Classifier) Save(ctx context.Context, path string) error {
	if !c.Trained() {
		return modelError("save", ErrNotTrained)
	}

	raw, err := c.model.MarshalBinary()
	if err != nil {
		return modelError("save", err)
	}

	payload, err := json.Marshal(&modelEnvelope{
		Version:  modelFormatVersion,
		Strategy: c.Strategy.Name(),
		Labels:   data.Names(),
		Features: c.features,
		Model:    raw,
	})
	if err != nil {
		return modelError("save", errors.Wrap(err, "couldn't encode model"))
	}

	err = c.FileStore.Save(ctx, path, snappy.Encode(nil, payload))
	if err != nil {
		return modelError("save", err)
	}

	ctxlogrus.Get(ctx).Infof("Saved %s model to %s", c.Strategy.Name(), path)
	return nil
}

func (c *Classifier) Load(ctx context.Context, path string) error {
	content, err := c.FileStore.Load(ctx, path)
	if err != nil {
		return modelError("load", err)
	}

	payload, err := snappy.Decode(nil, content)
	if err != nil {
		return modelError("load", errors.Wrap(err, "couldn't decompress model"))
	}

	var env modelEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return modelError("load", errors.Wrap(err, "couldn't decode model"))
	}
	if env.Version != modelFormatVersion {
		return modelError("load", errors.Errorf("unsupported model format version %d", env.Version))
	}
	if env.Strategy != c.Strategy.Name() {
		return modelError("load", errors.Errorf("model was built by %s, not %s", env.Strategy, c.Strategy.Name()))
	}
	if !sameLabels(env.Labels, data.Names()) {
		return modelError("load", errors.Errorf("model labels %v don't match %v", env.Labels, data.Names()))
	}

	m := c.Strategy.Construct()
	if err := m.UnmarshalBinary(env.Model); err != nil {
		return modelError("load", err)
	}

	c.model = m
	c.features = env.Features
	return nil
}

func featureVector(s *data.Sample, features []string) ([]float64, error) {
	v := make([]float64, len(features))
	for i, f := range features {
		n, err := s.Numeric(f)
		if err != nil {
			return nil, err
		}
		v[i] = n
	}
	return v, nil
}

func sameLabels(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
