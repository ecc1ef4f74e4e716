package main

import (
	"fmt"
	"net/http"

	"github.com/jbeshir/expertise-predictor/cache"
	"github.com/jbeshir/expertise-predictor/classifier"
	"github.com/jbeshir/expertise-predictor/controllers"
	"github.com/jbeshir/expertise-predictor/responders"
	"github.com/jbeshir/moonbird-auth-frontend/ctxlogrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve session reports and charts over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, afero.NewOsFs())
		if err != nil {
			return err
		}

		mux, err := a.newServeMux(cmd)
		if err != nil {
			return err
		}

		addr := fmt.Sprintf(":%s", a.cfg.Server.Port)
		ctxlogrus.Get(commandContext(cmd)).Infof("Listening on %s", addr)
		return http.ListenAndServe(addr, mux)
	},
}

// newServeMux loads the model and dataset once; handlers only classify
// afterwards, so the classifier is shared read-only.
func (a *app) newServeMux(cmd *cobra.Command) (*http.ServeMux, error) {
	ctx := commandContext(cmd)

	ds, err := a.loadDataset(ctx)
	if err != nil {
		return nil, err
	}
	c, err := a.loadClassifier(ctx)
	if err != nil {
		return nil, err
	}
	predictionCache, err := cache.NewLRU(a.cfg.Server.CacheSize)
	if err != nil {
		return nil, err
	}

	sessions := &DatasetSessionLister{Dataset: ds}
	pm := &classifier.PredictionMaker{
		Classifier:   c,
		CacheStorage: predictionCache,
		ModelKey:     a.cfg.ModelPath,
	}
	cm := &RequestContextMaker{}
	simple := responders.WebSimpleResponder{ExposeErrors: a.cfg.Server.ExposeErrors}
	evaluation := a.cfg.Evaluation

	report := &controllers.Report{
		SessionLister:   sessions,
		PredictionMaker: pm,
		WindowSizes:     evaluation.WindowSizes,
		MinSupport:      evaluation.MinSupport,
	}
	chart := &controllers.Chart{
		SessionLister:   sessions,
		PredictionMaker: pm,
		WindowSizes:     evaluation.WindowSizes,
		MinSupport:      evaluation.MinSupport,
		Size:            a.cfg.Chart,
	}
	purge := &controllers.CachePurge{Cache: predictionCache}
	chartLimiter := rate.NewLimiter(rate.Limit(a.cfg.Server.ChartRate), a.cfg.Server.ChartBurst)

	mux := http.NewServeMux()
	mux.HandleFunc("/report", report.HandleFunc(cm, &responders.WebReportResponder{WebSimpleResponder: simple}))
	mux.HandleFunc("/api/report", report.HandleFunc(cm, &responders.JSONReportResponder{WebSimpleResponder: simple}))
	mux.HandleFunc("/chart", limited(chartLimiter, chart.HandleFunc(cm, &responders.WebChartResponder{WebSimpleResponder: simple})))
	mux.HandleFunc("/cache/purge", postOnly(purge.HandleFunc(cm, &simple)))
	return mux, nil
}

// limited rejects requests beyond the limiter's rate.
func limited(limiter *rate.Limiter, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}

func postOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		next(w, r)
	}
}
