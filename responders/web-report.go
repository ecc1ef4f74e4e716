package responders

import (
	"context"
	"encoding/json"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jbeshir/expertise-predictor/controllers"
	"github.com/jbeshir/moonbird-auth-frontend/ctxlogrus"
)

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"DerefFloat64": func(f *float64) float64 { return *f },
	"ChartURL": chartURL,
}).Parse(
	`<html>
<head>
	<title>{{.ModelID}} expertise report</title>
</head>
<body class="report-page">
<h1 class="report-session">{{.ModelID}}</h1>
<div class="report-summary">
	<span class="report-expected">{{.Expected}}</span>
	{{if .TaskName}}<span class="report-task">{{.TaskName}}</span>{{end}}
	<span class="report-samples">{{.Samples}}</span> samples, min support <span class="report-support">{{.MinSupport}}</span>
</div>
<table class="report-windows">
	<tr><th>Window size</th><th>Accuracy</th></tr>
	{{range .Windows}}
	<tr class="report-window">
		<td class="report-window-size">{{.WindowSize}}</td>
		{{if .Accuracy}}<td class="report-window-accuracy">{{printf "%.3f" (DerefFloat64 .Accuracy)}}</td>{{end}}
		{{if .Undefined}}<td class="report-window-undefined">not enough samples</td>{{end}}
	</tr>
	{{end}}
</table>
<img class="report-chart" src="{{ChartURL "accuracy" .}}" />
<img class="report-chart" src="{{ChartURL "correctness" .}}" />
</body>
</html>`))

// chartURL links a chart drawn with the same window sizes and support as the
// report. The chart endpoint takes a single window override, so a report over
// several sizes links the configured set.
func chartURL(kind string, r *controllers.ReportResult) string {
	v := make(url.Values)
	v.Set("session", r.ModelID)
	v.Set("kind", kind)
	v.Set("support", strconv.FormatFloat(r.MinSupport, 'g', -1, 64))
	if len(r.Windows) == 1 {
		v.Set("window", strconv.Itoa(r.Windows[0].WindowSize))
	}
	return "/chart?" + v.Encode()
}

// WebReportResponder renders a report as an HTML page.
type WebReportResponder struct {
	WebSimpleResponder
}

func (r *WebReportResponder) OnResult(ctx context.Context, w http.ResponseWriter, result *controllers.ReportResult) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := reportTemplate.Execute(w, result)
	if err != nil {
		ctxlogrus.Get(ctx).Errorf("Unable to render report page: %s", err)
	}
}

// JSONReportResponder writes a report as a JSON document.
type JSONReportResponder struct {
	WebSimpleResponder
}

func (r *JSONReportResponder) OnResult(ctx context.Context, w http.ResponseWriter, result *controllers.ReportResult) {
	content, err := json.Marshal(result)
	if err != nil {
		r.OnError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(content); err != nil {
		ctxlogrus.Get(ctx).Warnf("Unable to write report: %s", err)
	}
}
