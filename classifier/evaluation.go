package classifier

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/jbeshir/expertise-predictor/data"
	"github.com/olekukonko/tablewriter"
)

// Evaluation holds per-sample scoring of a model against a labelled dataset.
// Confusion is indexed [actual][predicted] in data.Names() order.
type Evaluation struct {
	Labels       []string
	Confusion    [][]int
	Total        int
	Correct      int
	Unclassified int
}

func newEvaluation() *Evaluation {
	labels := data.Names()
	confusion := make([][]int, len(labels))
	for i := range confusion {
		confusion[i] = make([]int, len(labels))
	}
	return &Evaluation{
		Labels:    labels,
		Confusion: confusion,
	}
}

// Evaluate classifies every sample of ds with the current model.
func (c *Classifier) Evaluate(ctx context.Context, ds *data.Dataset) (*Evaluation, error) {
	if !c.Trained() {
		return nil, modelError("evaluate", ErrNotTrained)
	}

	eval := newEvaluation()
	for _, s := range ds.Samples() {
		actual := s.Class.Index()
		if actual < 0 {
			continue
		}
		eval.Total++

		predicted, err := c.Classify(ctx, s)
		if err != nil {
			eval.Unclassified++
			continue
		}
		eval.Confusion[actual][predicted.Index()]++
		if predicted == s.Class {
			eval.Correct++
		}
	}

	return eval, nil
}

func (e *Evaluation) Accuracy() float64 {
	if e.Total == 0 {
		return 0
	}
	return float64(e.Correct) / float64(e.Total)
}

// Summary renders overall statistics followed by the confusion matrix.
func (e *Evaluation) Summary() string {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "Evaluation statistics:")
	fmt.Fprintf(&buf, "Correctly classified instances   %d  (%.4f%%)\n", e.Correct, 100*e.Accuracy())
	fmt.Fprintf(&buf, "Incorrectly classified instances %d\n", e.Total-e.Correct-e.Unclassified)
	fmt.Fprintf(&buf, "Unclassified instances           %d\n", e.Unclassified)
	fmt.Fprintf(&buf, "Total number of instances        %d\n", e.Total)
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "Confusion matrix:")

	table := tablewriter.NewWriter(&buf)
	table.SetHeader(append([]string{"actual \\ predicted"}, e.Labels...))
	for i, row := range e.Confusion {
		cells := []string{e.Labels[i]}
		for _, n := range row {
			cells = append(cells, strconv.Itoa(n))
		}
		table.Append(cells)
	}
	table.Render()

	return buf.String()
}
