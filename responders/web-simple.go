package responders

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jbeshir/expertise-predictor/controllers"
	"github.com/jbeshir/moonbird-auth-frontend/ctxlogrus"
	"github.com/pkg/errors"
)

type WebSimpleResponder struct {
	ExposeErrors bool
}

func (r *WebSimpleResponder) OnContextError(w http.ResponseWriter, err error) {
	if r.ExposeErrors {
		http.Error(w, fmt.Sprintf("Internal Server Error: %s", err), 500)
	} else {
		http.Error(w, "Internal Server Error", 500)
	}
}

// OnError maps input problems to 400 and unknown sessions to 404. Their
// messages are always shown, since they describe the request rather than the
// server.
func (r *WebSimpleResponder) OnError(ctx context.Context, w http.ResponseWriter, err error) {
	l := ctxlogrus.Get(ctx)

	cause := errors.Cause(err)
	if _, ok := cause.(*controllers.InputError); ok {
		l.Info(err)
		http.Error(w, fmt.Sprintf("Bad Request: %s", err), 400)
		return
	}
	if cause == controllers.ErrUnknownSession {
		l.Info(err)
		http.Error(w, fmt.Sprintf("Not Found: %s", err), 404)
		return
	}

	l.Error(err)
	if r.ExposeErrors {
		http.Error(w, fmt.Sprintf("Internal Server Error: %s", err), 500)
	} else {
		http.Error(w, "Internal Server Error", 500)
	}
}

func (r *WebSimpleResponder) OnSuccess(w http.ResponseWriter) {
	fmt.Fprintln(w, "Done")
}
