package classifier

import (
	"context"

	"github.com/jbeshir/expertise-predictor/data"
	"github.com/jbeshir/moonbird-auth-frontend/ctxlogrus"
)

type BatchClassifier interface {
	ClassifyBatch(ctx context.Context, samples []*data.Sample) []data.Expertise
}

// PredictionMaker classifies whole sessions, remembering results per model
// and session.
type PredictionMaker struct {
	Classifier   BatchClassifier
	CacheStorage CacheStorage
	ModelKey     string
}

func (pm *PredictionMaker) Predict(ctx context.Context, session *data.Session) []data.Expertise {
	l := ctxlogrus.Get(ctx)

	cacheKey := pm.ModelKey + "/" + session.ModelID
	var predictions []data.Expertise
	err := pm.CacheStorage.Get(ctx, cacheKey, &predictions)
	if err == nil && len(predictions) == session.Len() {
		return predictions
	}
	if err != nil {
		l.Debug("Can't read predictions from cache: " + err.Error())
	}

	predictions = pm.Classifier.ClassifyBatch(ctx, session.Samples)

	// We ignore failures in writing to cache.
	cacheWriteErr := pm.CacheStorage.Set(ctx, cacheKey, predictions)
	if cacheWriteErr != nil {
		l.Warn("Can't write predictions to cache: " + cacheWriteErr.Error())
	}

	return predictions
}
