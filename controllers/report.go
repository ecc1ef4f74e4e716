package controllers

import (
	"context"
	"net/http"

	"github.com/jbeshir/expertise-predictor/data"
	"github.com/jbeshir/expertise-predictor/evaluator"
	"github.com/jbeshir/moonbird-auth-frontend/ctxlogrus"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Report struct {
	SessionLister   SessionLister
	PredictionMaker PredictionMaker
	WindowSizes     []int
	MinSupport      float64
}

type ReportInput struct {
	SessionStr string
	WindowStr  string
	SupportStr string
}

type WindowAccuracy struct {
	WindowSize int      `json:"window_size"`
	Accuracy   *float64 `json:"accuracy,omitempty"`
	Undefined  bool     `json:"undefined,omitempty"`
}

type ReportResult struct {
	ModelID     string           `json:"model_id"`
	TaskName    string           `json:"task_name,omitempty"`
	Expected    data.Expertise   `json:"expected"`
	Samples     int              `json:"samples"`
	MinSupport  float64          `json:"min_support"`
	Windows     []WindowAccuracy `json:"windows"`
	Predictions []data.Expertise `json:"predictions"`
}

type WebReportResponder interface {
	OnContextError(w http.ResponseWriter, err error)
	OnError(ctx context.Context, w http.ResponseWriter, err error)
	OnResult(ctx context.Context, w http.ResponseWriter, r *ReportResult)
}

func (c *Report) HandleFunc(cm ContextMaker, resp WebReportResponder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, err := cm.MakeContext(r)
		if err != nil {
			resp.OnContextError(w, err)
			return
		}

		input := &ReportInput{
			SessionStr: r.FormValue("session"),
			WindowStr:  r.FormValue("window"),
			SupportStr: r.FormValue("support"),
		}
		result, err := c.handle(ctx, input)
		if err != nil {
			resp.OnError(ctx, w, err)
		} else {
			resp.OnResult(ctx, w, result)
		}
	}
}

func (c *Report) handle(ctx context.Context, input *ReportInput) (*ReportResult, error) {
	ctx = ctxlogrus.WithFields(ctx, logrus.Fields{
		"controller": "Report",
	})
	l := ctxlogrus.Get(ctx)

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

	result := &ReportResult{
		ModelID:     session.ModelID,
		TaskName:    session.TaskName,
		Expected:    session.SampleClass(),
		Samples:     session.Len(),
		MinSupport:  support,
		Predictions: predictions,
	}
	for _, ws := range sizes {
		window := WindowAccuracy{WindowSize: ws}
		accuracy, err := evaluator.WindowedAccuracy(predictions, session, ws, support)
		switch {
		case err == nil:
			window.Accuracy = &accuracy
		case errors.Cause(err) == evaluator.ErrDivisionUndefined:
			l.Infof("Window size %d too large for session %s of %d samples", ws, id, session.Len())
			window.Undefined = true
		default:
			return nil, err
		}
		result.Windows = append(result.Windows, window)
	}

	return result, nil
}
