package main

import (
	"context"

	"github.com/jbeshir/expertise-predictor/controllers"
	"github.com/jbeshir/expertise-predictor/data"
	"github.com/pkg/errors"
)

// DatasetSessionLister serves sessions from a dataset loaded at startup.
type DatasetSessionLister struct {
	Dataset *data.Dataset
}

func (l *DatasetSessionLister) GetSession(ctx context.Context, modelID string) (*data.Session, error) {
	s := l.Dataset.Session(modelID)
	if s == nil {
		return nil, errors.Wrapf(controllers.ErrUnknownSession, "no session %q", modelID)
	}
	return s, nil
}
