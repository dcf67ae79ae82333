package middleware

import (
	"crypto/subtle"
	"net/http"
)

// AdminGate guards admin listing endpoints with a shared secret passed as a
// query parameter. An empty configured secret leaves the endpoints open,
// matching the optional gating contract.
func AdminGate(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret != "" {
				provided := r.URL.Query().Get("secret")
				if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusUnauthorized)
					w.Write([]byte(`{"success":false,"error":"unauthorized"}`))
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
