package responders

import (
	"bytes"
	"context"
	"net/http"

	"github.com/jbeshir/expertise-predictor/charts"
	"github.com/jbeshir/moonbird-auth-frontend/ctxlogrus"
	chart "github.com/wcharczuk/go-chart"
)

type WebChartResponder struct {
	WebSimpleResponder
}

// OnChart renders fully before writing anything, so a render failure can still
// be reported with an error status.
func (r *WebChartResponder) OnChart(ctx context.Context, w http.ResponseWriter, graph *chart.Chart) {
	var buf bytes.Buffer
	if err := charts.WritePNG(&buf, graph); err != nil {
		r.OnError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if _, err := buf.WriteTo(w); err != nil {
		ctxlogrus.Get(ctx).Warnf("Unable to write chart: %s", err)
	}
}
