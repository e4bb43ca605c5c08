package router

import (
	"net/http"
	"strings"

	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/internal/tenancy"
)

const companyHeader = "X-Company-Id"

// requireCompanyID enforces the multi-tenancy header for API requests.
func requireCompanyID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		companyID := strings.TrimSpace(r.Header.Get(companyHeader))
		if companyID == "" {
			http.Error(w, "missing X-Company-Id", http.StatusBadRequest)
			return
		}
		ctx := tenancy.WithCompanyID(r.Context(), companyID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
