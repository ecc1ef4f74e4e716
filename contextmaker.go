package main

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/jbeshir/moonbird-auth-frontend/ctxlogrus"
	"github.com/sirupsen/logrus"
)

// RequestContextMaker tags each request's logger with a fresh request ID.
type RequestContextMaker struct{}

func (cm *RequestContextMaker) MakeContext(r *http.Request) (context.Context, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}

	return ctxlogrus.WithFields(r.Context(), logrus.Fields{
		"request_id": id.String(),
		"method":     r.Method,
		"path":       r.URL.Path,
	}), nil
}
