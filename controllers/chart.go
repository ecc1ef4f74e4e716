package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/jbeshir/expertise-predictor/charts"
	"github.com/jbeshir/expertise-predictor/evaluator"
	"github.com/jbeshir/moonbird-auth-frontend/ctxlogrus"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	chart "github.com/wcharczuk/go-chart"
)

const (
	ChartKindAccuracy    = "accuracy"
	ChartKindCorrectness = "correctness"
)

type Chart struct {
	SessionLister   SessionLister
	PredictionMaker PredictionMaker
	WindowSizes     []int
	MinSupport      float64
	Size            charts.Size
}

type ChartInput struct {
	SessionStr string
	KindStr    string
	WindowStr  string
	SupportStr string
}

type WebChartResponder interface {
	OnContextError(w http.ResponseWriter, err error)
	OnError(ctx context.Context, w http.ResponseWriter, err error)
	OnChart(ctx context.Context, w http.ResponseWriter, graph *chart.Chart)
}

func (c *Chart) HandleFunc(cm ContextMaker, resp WebChartResponder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, err := cm.MakeContext(r)
		if err != nil {
			resp.OnContextError(w, err)
			return
		}

		input := &ChartInput{
			SessionStr: r.FormValue("session"),
			KindStr:    r.FormValue("kind"),
			WindowStr:  r.FormValue("window"),
			SupportStr: r.FormValue("support"),
		}
		graph, err := c.handle(ctx, input)
		if err != nil {
			resp.OnError(ctx, w, err)
		} else {
			resp.OnChart(ctx, w, graph)
		}
	}
}

func (c *Chart) handle(ctx context.Context, input *ChartInput) (*chart.Chart, error) {
	kind := strings.ToLower(strings.TrimSpace(input.KindStr))
	if kind == "" {
		kind = ChartKindAccuracy
	}
	if kind != ChartKindAccuracy && kind != ChartKindCorrectness {
		return nil, &InputError{Param: "kind", Err: errors.Errorf("expected %s or %s, was %q", ChartKindAccuracy, ChartKindCorrectness, input.KindStr)}
	}

	ctx = ctxlogrus.WithFields(ctx, logrus.Fields{
		"controller": "Chart",
		"kind":       kind,
	})

	id, err := sessionID(input.SessionStr)
	if err != nil {
		return nil, err
	}
	sizes, err := windowSizes(input.WindowStr, c.WindowSizes)
	if err != nil {
		return nil, err
	}
	support, err := minSupport(input.SupportStr, c.MinSupport)
	if err != nil {
		return nil, err
	}

	session, err := c.SessionLister.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	predictions := c.PredictionMaker.Predict(ctx, session)

	if kind == ChartKindAccuracy {
		curves, err := evaluator.AccuracyCurve(ctx, predictions, session, sizes)
		if err != nil {
			return nil, err
		}
		return charts.AccuracyChart(session, curves, c.Size)
	}

	intervals, err := evaluator.CorrectnessIntervals(ctx, predictions, session, sizes, support)
	if err != nil {
		return nil, err
	}
	return charts.CorrectnessChart(session, intervals, sizes, support, c.Size)
}
