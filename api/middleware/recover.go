// ABOUTME: Panic recovery middleware for the HTTP router
// ABOUTME: Logs the panic and answers 500 with the standard {"error"} body

package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"recipe-finder-api/core/interfaces"
)

// Recoverer answers a panicking handler with 500 {"error":"Unknown error"}
func Recoverer(logger interfaces.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				// Aborting the connection is the server's own signal
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.Error("Recovered from handler panic", map[string]interface{}{
					"request_id": GetRequestID(r),
					"method":     r.Method,
					"path":       r.URL.Path,
					"panic":      fmt.Sprint(rec),
					"stack":      string(debug.Stack()),
				})

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"error":"Unknown error"}`))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
