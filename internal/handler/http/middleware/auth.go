package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/sanadhr/payroll-backend-go/internal/domain/auth"
	"github.com/sanadhr/payroll-backend-go/internal/handler/http/response"
)

// AuthRequired rejects requests without a verified access token carrying a
// company_id claim. Runs after jwtauth.Verifier.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.HandleError(w, auth.ErrUnauthorized)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrUnauthorized)
				return
			}

			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != "access" {
				response.HandleError(w, auth.ErrUnauthorized)
				return
			}

			companyID, ok := claims["company_id"].(string)
			if !ok || companyID == "" {
				response.HandleError(w, auth.ErrUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
