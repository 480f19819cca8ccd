package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"org-calendar-api/internal/auth"
	"org-calendar-api/internal/model"
)

type ctxKey string

const UserIDKey ctxKey = "uid"

// ViewerFrom returns the authenticated viewer id, or "" for anonymous calls.
func ViewerFrom(ctx context.Context) string {
	uid, _ := ctx.Value(UserIDKey).(string)
	return uid
}

func WithViewer(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, UserIDKey, model.CanonicalID(uid))
}

// Auth authenticates gRPC calls that carry a bearer token. Calls without one
// go through anonymously; a bad token is rejected.
func Auth(secret string) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return next(ctx, req)
		}

		// token from Authorization: Bearer <jwt>
		raw := ""
		if vals := md.Get("authorization"); len(vals) > 0 {
			raw = auth.BearerToken(vals[0])
		}
		if raw == "" {
			return next(ctx, req)
		}

		claims, err := auth.ParseToken(raw, secret)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, "bad token")
		}
		return next(WithViewer(ctx, claims.UserID), req)
	}
}

// Viewer is the HTTP counterpart of Auth.
func Viewer(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := auth.BearerToken(r.Header.Get("Authorization"))
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}
			claims, err := auth.ParseToken(raw, secret)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "bad token")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithViewer(r.Context(), claims.UserID)))
		})
	}
}

// RequireViewer rejects requests that Viewer left anonymous.
func RequireViewer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ViewerFrom(r.Context()) == "" {
			writeError(w, http.StatusUnauthorized, "no token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
