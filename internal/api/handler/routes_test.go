package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/buckii/bi-forecast-sub000/internal/domain"
	"github.com/buckii/bi-forecast-sub000/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dispatchWithRole(t *testing.T, route http.Handler, middlewares []func(http.Handler) http.Handler, roleID int) *httptest.ResponseRecorder {
	t.Helper()

	handler := route
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/cache/prefetch", nil)
	claims := &domain.Claims{UserID: 7, UserRoleID: roleID, CompanyID: "comp-1"}
	req = req.WithContext(context.WithValue(req.Context(), middleware.ContextKeyUser, claims))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	return recorder
}

func TestTransactionsRoutes_PrefetchIsAdminOnly(t *testing.T) {
	routes := Transactions(nil)

	for _, route := range routes {
		if route.Path != "/v1/cache/prefetch" {
			continue
		}

		blocked := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("member reached the prefetch handler")
		})
		recorder := dispatchWithRole(t, blocked, route.Middlewares, middleware.RoleMember)
		assert.Equal(t, http.StatusForbidden, recorder.Code)

		var adminReached bool
		passthrough := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			adminReached = true
		})
		recorder = dispatchWithRole(t, passthrough, route.Middlewares, middleware.RoleAdmin)
		assert.Equal(t, http.StatusOK, recorder.Code)
		require.True(t, adminReached)
		return
	}

	t.Fatal("prefetch route not registered")
}
