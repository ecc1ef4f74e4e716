package controllers

import (
	"context"
	"net/http"

	"github.com/jbeshir/moonbird-auth-frontend/ctxlogrus"
	"github.com/sirupsen/logrus"
)

type CachePurger interface {
	Len() int
	Purge(ctx context.Context) error
}

// CachePurge drops cached predictions, so sessions are classified afresh.
type CachePurge struct {
	Cache CachePurger
}

type WebCachePurgeResponder interface {
	OnContextError(w http.ResponseWriter, err error)
	OnError(ctx context.Context, w http.ResponseWriter, err error)
	OnSuccess(w http.ResponseWriter)
}

func (c *CachePurge) HandleFunc(cm ContextMaker, resp WebCachePurgeResponder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, err := cm.MakeContext(r)
		if err != nil {
			resp.OnContextError(w, err)
			return
		}

		err = c.handle(ctx)
		if err != nil {
			resp.OnError(ctx, w, err)
		} else {
			resp.OnSuccess(w)
		}
	}
}

func (c *CachePurge) handle(ctx context.Context) error {
	ctx = ctxlogrus.WithFields(ctx, logrus.Fields{
		"controller": "CachePurge",
	})

	entries := c.Cache.Len()
	err := c.Cache.Purge(ctx)
	if err != nil {
		return err
	}

	ctxlogrus.Get(ctx).Infof("Purged %d cached predictions", entries)
	return nil
}
