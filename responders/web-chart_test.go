package responders

import (
	"bytes"
	"context"
	"io/ioutil"
	"net/http/httptest"
	"testing"

	chart "github.com/wcharczuk/go-chart"
)

func TestWebChartResponder_OnChart(t *testing.T) {
	t.Parallel()

	r := &WebChartResponder{}

	graph := &chart.Chart{
		Width:  200,
		Height: 100,
		Series: []chart.Series{
			chart.ContinuousSeries{XValues: []float64{0, 1}, YValues: []float64{0, 1}},
		},
	}

	recorder := httptest.NewRecorder()
	r.OnChart(context.Background(), recorder, graph)

	result := recorder.Result()
	if result.StatusCode != 200 {
		t.Errorf("Expected a status code of 200, got %d", result.StatusCode)
	}
	if ct := result.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected PNG content type, got %s", ct)
	}

	content, _ := ioutil.ReadAll(result.Body)
	if !bytes.HasPrefix(content, []byte("\x89PNG")) {
		t.Error("Expected body to be a PNG")
	}
}

func TestWebChartResponder_OnChart_RenderError(t *testing.T) {
	t.Parallel()

	r := &WebChartResponder{}

	recorder := httptest.NewRecorder()
	r.OnChart(context.Background(), recorder, &chart.Chart{})

	result := recorder.Result()
	if result.StatusCode != 500 {
		t.Errorf("Expected a status code of 500, got %d", result.StatusCode)
	}
}
