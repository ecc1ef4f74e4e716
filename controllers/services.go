package controllers

import (
	"context"
	"net/http"

	"github.com/jbeshir/expertise-predictor/data"
)

type ContextMaker interface {
	MakeContext(r *http.Request) (context.Context, error)
}

type SessionLister interface {
	GetSession(ctx context.Context, modelID string) (*data.Session, error)
}

type PredictionMaker interface {
	Predict(ctx context.Context, session *data.Session) []data.Expertise
}
