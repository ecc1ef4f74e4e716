package datasource

import (
	"bytes"
	"context"
	"encoding/csv"
	"math"
	"strconv"
	"strings"

	"github.com/jbeshir/expertise-predictor/data"
	"github.com/jbeshir/moonbird-auth-frontend/ctxlogrus"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	columnModelID   = "model_id"
	columnTaskName  = "task_name"
	columnExpertise = "expertise"
)

type FileStore interface {
	Load(ctx context.Context, path string) ([]byte, error)
	Save(ctx context.Context, path string, content []byte) error
}

// Loader reads datasets of the form
//
//	model_id,task_name,expertise,<feature>,<feature>,...
//
// one row per sample, rows of a session in time order. Every feature column
// whose values all parse as numbers is numeric; the rest are nominal.
type Loader struct {
	FileStore FileStore
}

func (l *Loader) Load(ctx context.Context, path string) (*data.Dataset, error) {
	ctx = ctxlogrus.WithFields(ctx, logrus.Fields{
		"dataset": path,
	})
	log := ctxlogrus.Get(ctx)

	content, err := l.FileStore.Load(ctx, path)
	if err != nil {
		return nil, err
	}

	ds, err := Parse(content)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't parse dataset %s", path)
	}

	log.Debugf("Loaded %d sessions, %d samples", len(ds.Sessions), len(ds.Samples()))
	return ds, nil
}

func Parse(content []byte) (*data.Dataset, error) {
	r := csv.NewReader(bytes.NewReader(content))
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("empty dataset")
	}

	header := records[0]
	idCol, taskCol, classCol := -1, -1, -1
	var featureCols []int
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case columnModelID:
			idCol = i
		case columnTaskName:
			taskCol = i
		case columnExpertise:
			classCol = i
		default:
			featureCols = append(featureCols, i)
		}
	}
	if idCol < 0 || classCol < 0 {
		return nil, errors.Errorf("header must contain %s and %s", columnModelID, columnExpertise)
	}

	rows := records[1:]
	ds := new(data.Dataset)
	for _, col := range featureCols {
		ds.Attributes = append(ds.Attributes, data.Attribute{
			Name: strings.TrimSpace(header[col]),
			Kind: columnKind(rows, col),
		})
	}

	hasTime := false
	for _, a := range ds.Attributes {
		if a.Name == data.RelativeModelingTime {
			hasTime = true
			if a.Kind != data.Numeric {
				return nil, errors.Errorf("%s must be numeric", data.RelativeModelingTime)
			}
		}
	}
	if !hasTime {
		return nil, errors.Errorf("missing %s column", data.RelativeModelingTime)
	}

	sessions := make(map[string]*data.Session)
	for n, row := range rows {
		class, err := data.FromString(row[classCol])
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", n+2)
		}

		sample := &data.Sample{
			Class:    class,
			Features: make(map[string]data.Value, len(featureCols)),
		}
		for i, col := range featureCols {
			a := ds.Attributes[i]
			if a.Kind == data.Numeric {
				f, _ := parseNumber(row[col])
				sample.Features[a.Name] = data.NumericValue(f)
			} else {
				sample.Features[a.Name] = data.NominalValue(row[col])
			}
		}

		id := row[idCol]
		s, ok := sessions[id]
		if !ok {
			s = &data.Session{ModelID: id}
			if taskCol >= 0 {
				s.TaskName = row[taskCol]
			}
			sessions[id] = s
			ds.Sessions = append(ds.Sessions, s)
		}
		s.Samples = append(s.Samples, sample)
	}

	for _, s := range ds.Sessions {
		if err := validateSession(s); err != nil {
			return nil, err
		}
	}

	return ds, nil
}

func columnKind(rows [][]string, col int) data.ValueKind {
	for _, row := range rows {
		if _, err := parseNumber(row[col]); err != nil {
			return data.Nominal
		}
	}
	return data.Numeric
}

// parseNumber accepts finite numbers only.
func parseNumber(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.Errorf("non-finite value %q", s)
	}
	return f, nil
}

func validateSession(s *data.Session) error {
	previous := 0.0
	for i, sample := range s.Samples {
		t, err := sample.RelativeTime()
		if err != nil {
			return errors.Wrapf(err, "session %s sample %d", s.ModelID, i)
		}
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return errors.Errorf("session %s sample %d: relative time %g is not finite", s.ModelID, i, t)
		}
		if t < 0 || t > 1 {
			return errors.Errorf("session %s sample %d: relative time %g outside [0,1]", s.ModelID, i, t)
		}
		if t < previous {
			return errors.Errorf("session %s sample %d: relative time decreases from %g to %g", s.ModelID, i, previous, t)
		}
		previous = t
	}
	return nil
}
