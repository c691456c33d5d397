package middleware

import (
	"net/http"

	"github.com/buckii/bi-forecast-sub000/internal/domain"
	"github.com/buckii/bi-forecast-sub000/pkg/apiErrors"
	"github.com/buckii/bi-forecast-sub000/pkg/log"
)

const (
	RoleAdmin  = 1
	RoleMember = 2
)

// RoleMiddleware restricts a route to the listed role IDs
func RoleMiddleware(allowedRoles []int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userClaims, ok := r.Context().Value(ContextKeyUser).(*domain.Claims)
			if !ok {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "user is not authenticated", nil)
				return
			}

			allowed := false
			for _, role := range allowedRoles {
				if userClaims.UserRoleID == role {
					allowed = true
					break
				}
			}

			if !allowed {
				log.L.WithFields(log.Fields{
					"user_id": userClaims.UserID,
					"role_id": userClaims.UserRoleID,
					"path":    r.URL.Path,
				}).Warn("access denied by role")
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "you do not have permission to access this resource", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func AdminOnly() func(http.Handler) http.Handler {
	return RoleMiddleware([]int{RoleAdmin})
}

func AllRoles() func(http.Handler) http.Handler {
	return RoleMiddleware([]int{RoleAdmin, RoleMember})
}
