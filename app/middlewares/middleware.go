package middlewares

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/bekmuradov/uzmarket/app/helpers"
	"github.com/bekmuradov/uzmarket/app/models"
	"github.com/bekmuradov/uzmarket/app/repositories"
	"github.com/unrolled/render"
)

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s (%v)", r.Method, r.URL.Path, time.Since(start))
	})
}

// TokenAuthMiddleware resolves an "Authorization: Token <key>" header into
// the request context. Requests without a token pass through anonymous;
// RequireAuth decides whether that is acceptable.
func TokenAuthMiddleware(tokenRepo repositories.TokenRepositoryImpl) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			key := strings.TrimSpace(strings.TrimPrefix(header, "Token"))
			if key == header {
				key = strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
			}
			if key == "" || key == header {
				next.ServeHTTP(w, r)
				return
			}

			token, err := tokenRepo.FindByKey(r.Context(), key)
			if err != nil {
				log.Printf("TokenAuthMiddleware: error looking up token: %v", err)
				next.ServeHTTP(w, r)
				return
			}
			if token == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), helpers.ContextKeyUserID, token.UserID)
			ctx = context.WithValue(ctx, helpers.ContextKeyUser, &token.User)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func RequireAuth(rnd *render.Render) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := r.Context().Value(helpers.ContextKeyUserID).(string)
			if !ok || userID == "" {
				_ = rnd.JSON(w, http.StatusUnauthorized, map[string]string{
					"detail": "Authentication credentials were not provided.",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func RequireAdmin(rnd *render.Render) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := r.Context().Value(helpers.ContextKeyUser).(*models.User)
			if !ok || user == nil {
				_ = rnd.JSON(w, http.StatusUnauthorized, map[string]string{
					"detail": "Authentication credentials were not provided.",
				})
				return
			}
			if user.Role != models.RoleAdmin {
				log.Printf("RequireAdmin: user %s (%s) attempted an admin operation", user.ID, user.PhoneNumber)
				_ = rnd.JSON(w, http.StatusForbidden, map[string]string{
					"detail": "You do not have permission to perform this action.",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
