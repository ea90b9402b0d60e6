package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_RecordsRoutePattern(t *testing.T) {
	m := New()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/reimbursements/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for i := 0; i < 2; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/reimbursements/5", nil))
	}

	got := testutil.ToFloat64(m.httpRequests.WithLabelValues(http.MethodGet, "/reimbursements/{id}", "418"))
	assert.Equal(t, float64(2), got)
	assert.Equal(t, float64(0), testutil.ToFloat64(m.httpInFlight))
}

func TestDomainCounters(t *testing.T) {
	m := New()

	m.ReimbursementCreated("food")
	m.ReimbursementResolved("approved")
	m.ReimbursementResolved("approved")
	m.LoginAttempt("failure")
	m.SessionsPurged(3)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.reimbursementsCreated.WithLabelValues("food")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.reimbursementsResolved.WithLabelValues("approved")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.logins.WithLabelValues("failure")))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.sessionsPurged))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	m := New()
	m.ReimbursementCreated("travel")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `ers_reimbursements_created_total{type="travel"} 1`))
}
