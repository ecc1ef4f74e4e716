package datasource

import (
	"io"

	"github.com/gocarina/gocsv"
	"github.com/jbeshir/expertise-predictor/data"
	"github.com/pkg/errors"
)

type PredictionRow struct {
	ModelID      string  `csv:"model_id"`
	TaskName     string  `csv:"task_name"`
	Index        int     `csv:"index"`
	RelativeTime float64 `csv:"relative_modeling_time"`
	Expected     string  `csv:"expected"`
	Predicted    string  `csv:"predicted"`
	Correct      bool    `csv:"correct"`
}

// PredictionRows lines predictions up with the session's samples. Samples
// without a numeric relative time get -1.
func PredictionRows(session *data.Session, predictions []data.Expertise) ([]*PredictionRow, error) {
	if len(predictions) != session.Len() {
		return nil, errors.Errorf("%d predictions for %d samples in session %s", len(predictions), session.Len(), session.ModelID)
	}

	rows := make([]*PredictionRow, 0, session.Len())
	for i, sample := range session.Samples {
		t, err := sample.RelativeTime()
		if err != nil {
			t = -1
		}
		rows = append(rows, &PredictionRow{
			ModelID:      session.ModelID,
			TaskName:     session.TaskName,
			Index:        i,
			RelativeTime: t,
			Expected:     sample.Class.String(),
			Predicted:    predictions[i].String(),
			Correct:      predictions[i] == sample.Class,
		})
	}
	return rows, nil
}

func ExportPredictions(w io.Writer, rows []*PredictionRow) error {
	if err := gocsv.Marshal(rows, w); err != nil {
		return errors.Wrap(err, "couldn't write predictions")
	}
	return nil
}
