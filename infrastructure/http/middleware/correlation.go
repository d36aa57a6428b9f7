package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/taskana/taskana/infrastructure/service/logger"
)

const CorrelationIDHeader = "X-Correlation-ID"

// CorrelationIDMiddleware ensures every request carries a correlation ID, in
// the request context for log lines and echoed on the response header.
func CorrelationIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cid := r.Header.Get(CorrelationIDHeader)
		if cid == "" {
			cid = uuid.NewString()
		}

		w.Header().Set(CorrelationIDHeader, cid)

		ctx := logger.WithCorrelationID(r.Context(), cid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
