package main

import (
	"fmt"
	"path"
	"strconv"

	"github.com/jbeshir/expertise-predictor/charts"
	"github.com/jbeshir/expertise-predictor/data"
	"github.com/jbeshir/expertise-predictor/evaluator"
	"github.com/jbeshir/moonbird-auth-frontend/ctxlogrus"
	"github.com/montanaflynn/stats"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	chart "github.com/wcharczuk/go-chart"
)

var accuracyCmd = &cobra.Command{
	Use:   "accuracy",
	Short: "Print windowed accuracy per session and window size",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, afero.NewOsFs())
		if err != nil {
			return err
		}
		return a.accuracy(cmd)
	},
}

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Render accuracy and correctness charts as PNG files",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, afero.NewOsFs())
		if err != nil {
			return err
		}
		return a.chart(cmd)
	},
}

func init() {
	accuracyCmd.Flags().String("session", "", "Only score this session")
	accuracyCmd.Flags().Float64("support", -1, "Minimum support, overriding the configured one")

	chartCmd.Flags().String("session", "", "Only chart this session")
	chartCmd.Flags().String("kind", "all", "Chart kind: accuracy, correctness or all")
	chartCmd.Flags().String("out", "charts", "Output directory, relative to the storage root")
}

type sessionAccuracy struct {
	session    *data.Session
	accuracies []*float64
}

func (a *app) accuracy(cmd *cobra.Command) error {
	ctx := commandContext(cmd)

	minSupport := a.cfg.Evaluation.MinSupport
	if s, _ := cmd.Flags().GetFloat64("support"); s >= 0 {
		if s > 1 {
			return errors.Errorf("support must be within [0, 1], was %g", s)
		}
		minSupport = s
	}

	ds, err := a.loadDataset(ctx)
	if err != nil {
		return err
	}
	modelID, _ := cmd.Flags().GetString("session")
	sessions, err := selectSessions(ds, modelID)
	if err != nil {
		return err
	}
	c, err := a.loadClassifier(ctx)
	if err != nil {
		return err
	}

	sizes := a.cfg.Evaluation.WindowSizes
	var results []sessionAccuracy
	for _, s := range sessions {
		predictions := c.ClassifyBatch(ctx, s.Samples)
		result := sessionAccuracy{session: s}
		for _, ws := range sizes {
			acc, err := evaluator.WindowedAccuracy(predictions, s, ws, minSupport)
			if errors.Cause(err) == evaluator.ErrDivisionUndefined {
				result.accuracies = append(result.accuracies, nil)
				continue
			}
			if err != nil {
				return err
			}
			result.accuracies = append(result.accuracies, &acc)
		}
		results = append(results, result)
	}

	return writeAccuracyTable(a, sizes, results)
}

func writeAccuracyTable(a *app, sizes []int, results []sessionAccuracy) error {
	header := []string{"session", "expected", "task"}
	for _, ws := range sizes {
		header = append(header, fmt.Sprintf("ws = %d", ws))
	}

	table := tablewriter.NewWriter(a.out)
	table.SetHeader(header)
	for _, r := range results {
		row := []string{r.session.ModelID, r.session.SampleClass().String(), r.session.TaskName}
		for _, acc := range r.accuracies {
			if acc == nil {
				row = append(row, "undefined")
			} else {
				row = append(row, strconv.FormatFloat(*acc, 'f', 3, 64))
			}
		}
		table.Append(row)
	}

	means := []string{"mean", "", ""}
	deviations := []string{"std dev", "", ""}
	for i := range sizes {
		var defined stats.Float64Data
		for _, r := range results {
			if r.accuracies[i] != nil {
				defined = append(defined, *r.accuracies[i])
			}
		}
		mean, err := stats.Mean(defined)
		if err != nil {
			means = append(means, "-")
			deviations = append(deviations, "-")
			continue
		}
		sd, err := stats.StandardDeviation(defined)
		if err != nil {
			return errors.Wrap(err, "couldn't summarise accuracies")
		}
		means = append(means, strconv.FormatFloat(mean, 'f', 3, 64))
		deviations = append(deviations, strconv.FormatFloat(sd, 'f', 3, 64))
	}
	table.Append(means)
	table.Append(deviations)
	table.Render()
	return nil
}

func (a *app) chart(cmd *cobra.Command) error {
	ctx := commandContext(cmd)

	kind, _ := cmd.Flags().GetString("kind")
	var kinds []string
	switch kind {
	case "all":
		kinds = []string{"accuracy", "correctness"}
	case "accuracy", "correctness":
		kinds = []string{kind}
	default:
		return errors.Errorf("unknown chart kind %q", kind)
	}
	outDir, _ := cmd.Flags().GetString("out")

	ds, err := a.loadDataset(ctx)
	if err != nil {
		return err
	}
	modelID, _ := cmd.Flags().GetString("session")
	sessions, err := selectSessions(ds, modelID)
	if err != nil {
		return err
	}
	c, err := a.loadClassifier(ctx)
	if err != nil {
		return err
	}

	sizes := a.cfg.Evaluation.WindowSizes
	support := a.cfg.Evaluation.MinSupport
	for _, s := range sessions {
		ctx := ctxlogrus.WithFields(ctx, logrus.Fields{
			"session": s.ModelID,
		})
		l := ctxlogrus.Get(ctx)
		predictions := c.ClassifyBatch(ctx, s.Samples)

		for _, k := range kinds {
			var graph *chart.Chart
			if k == "accuracy" {
				curves, err := evaluator.AccuracyCurve(ctx, predictions, s, sizes)
				if err != nil {
					return err
				}
				graph, err = charts.AccuracyChart(s, curves, a.cfg.Chart)
				if err == charts.ErrNoData {
					l.Warnf("No %s chart for session, too few samples", k)
					continue
				} else if err != nil {
					return err
				}
			} else {
				intervals, err := evaluator.CorrectnessIntervals(ctx, predictions, s, sizes, support)
				if err != nil {
					return err
				}
				graph, err = charts.CorrectnessChart(s, intervals, sizes, support, a.cfg.Chart)
				if err == charts.ErrNoData {
					l.Warnf("No %s chart for session, too few samples", k)
					continue
				} else if err != nil {
					return err
				}
			}

			p := path.Join(outDir, fmt.Sprintf("%s-%s.png", s.ModelID, k))
			if err := charts.Export(ctx, a.store, p, graph); err != nil {
				return err
			}
			l.Infof("Wrote %s chart to %s", k, p)
		}
	}
	return nil
}
