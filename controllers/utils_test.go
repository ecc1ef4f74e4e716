package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/jbeshir/expertise-predictor/data"
	chart "github.com/wcharczuk/go-chart"
)

func newTestSession() *data.Session {
	classes := []data.Expertise{data.Expert, data.Expert, data.Expert, data.Expert, data.Expert, data.Expert}
	session := &data.Session{ModelID: "m1", TaskName: "orders"}
	for i, class := range classes {
		session.Samples = append(session.Samples, &data.Sample{
			Class: class,
			Features: map[string]data.Value{
				data.RelativeModelingTime: data.NumericValue(float64(i+1) / float64(len(classes))),
			},
		})
	}
	return session
}

func newTestSessionLister(t *testing.T) *testSessionLister {
	return &testSessionLister{
		GetSessionFunc: func(ctx context.Context, modelID string) (*data.Session, error) {
			t.Error("GetSession should not be called")
			return nil, nil
		},
	}
}

type testSessionLister struct {
	GetSessionFunc func(ctx context.Context, modelID string) (*data.Session, error)
}

func (l *testSessionLister) GetSession(ctx context.Context, modelID string) (*data.Session, error) {
	return l.GetSessionFunc(ctx, modelID)
}

func newTestPredictionMaker(t *testing.T) *testPredictionMaker {
	return &testPredictionMaker{
		PredictFunc: func(ctx context.Context, session *data.Session) []data.Expertise {
			t.Error("Predict should not be called")
			return nil
		},
	}
}

type testPredictionMaker struct {
	PredictFunc func(ctx context.Context, session *data.Session) []data.Expertise
}

func (pm *testPredictionMaker) Predict(ctx context.Context, session *data.Session) []data.Expertise {
	return pm.PredictFunc(ctx, session)
}

func newTestWebReportResponder(t *testing.T) *testWebReportResponder {
	return &testWebReportResponder{
		OnContextErrorFunc: func(w http.ResponseWriter, err error) {
			t.Error("OnContextError should not be called")
		},
		OnErrorFunc: func(ctx context.Context, w http.ResponseWriter, err error) {
			t.Error("OnError should not be called")
		},
		OnResultFunc: func(ctx context.Context, w http.ResponseWriter, r *ReportResult) {
			t.Error("OnResult should not be called")
		},
	}
}

type testWebReportResponder struct {
	OnContextErrorFunc func(w http.ResponseWriter, err error)
	OnErrorFunc        func(ctx context.Context, w http.ResponseWriter, err error)
	OnResultFunc       func(ctx context.Context, w http.ResponseWriter, r *ReportResult)
}

func (r *testWebReportResponder) OnContextError(w http.ResponseWriter, err error) {
	r.OnContextErrorFunc(w, err)
}

func (r *testWebReportResponder) OnError(ctx context.Context, w http.ResponseWriter, err error) {
	r.OnErrorFunc(ctx, w, err)
}

func (r *testWebReportResponder) OnResult(ctx context.Context, w http.ResponseWriter, result *ReportResult) {
	r.OnResultFunc(ctx, w, result)
}

func newTestWebChartResponder(t *testing.T) *testWebChartResponder {
	return &testWebChartResponder{
		OnContextErrorFunc: func(w http.ResponseWriter, err error) {
			t.Error("OnContextError should not be called")
		},
		OnErrorFunc: func(ctx context.Context, w http.ResponseWriter, err error) {
			t.Error("OnError should not be called")
		},
		OnChartFunc: func(ctx context.Context, w http.ResponseWriter, graph *chart.Chart) {
			t.Error("OnChart should not be called")
		},
	}
}

type testWebChartResponder struct {
	OnContextErrorFunc func(w http.ResponseWriter, err error)
	OnErrorFunc        func(ctx context.Context, w http.ResponseWriter, err error)
	OnChartFunc        func(ctx context.Context, w http.ResponseWriter, graph *chart.Chart)
}

func (r *testWebChartResponder) OnContextError(w http.ResponseWriter, err error) {
	r.OnContextErrorFunc(w, err)
}

func (r *testWebChartResponder) OnError(ctx context.Context, w http.ResponseWriter, err error) {
	r.OnErrorFunc(ctx, w, err)
}

func (r *testWebChartResponder) OnChart(ctx context.Context, w http.ResponseWriter, graph *chart.Chart) {
	r.OnChartFunc(ctx, w, graph)
}
