package metrics

import (
	"database/sql"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestCounters(t *testing.T) {
	m := New()

	m.ObserveRequest("GET", "/expenses", "200", 0.01)
	m.ObserveRequest("GET", "/expenses", "200", 0.02)
	m.ObserveRequest("POST", "/login", "401", 0.3)
	m.ReportBuilt("month")
	m.ExpenseWritten("create")
	m.ExpenseWritten("create")
	m.Registered()
	m.LoginAttempt(true)
	m.LoginAttempt(false)
	m.LoginAttempt(false)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/expenses", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.requestsTotal.WithLabelValues("POST", "/login", "401")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.reportsBuilt.WithLabelValues("month")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.reportsBuilt.WithLabelValues("year")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.expensesWritten.WithLabelValues("create")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.registrations))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.logins.WithLabelValues("success")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.logins.WithLabelValues("failure")))
}

func TestInstancesDoNotShareState(t *testing.T) {
	a, b := New(), New()
	a.Registered()

	assert.Equal(t, float64(1), testutil.ToFloat64(a.registrations))
	assert.Equal(t, float64(0), testutil.ToFloat64(b.registrations))
}

func TestHandler(t *testing.T) {
	m := New()
	conn, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer conn.Close()
	m.WatchDB(conn, "test")
	m.ReportBuilt("today")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `expense_tracker_reports_built_total{window="today"} 1`)
	assert.Contains(t, string(body), "go_sql_open_connections")
	assert.Contains(t, string(body), "go_goroutines")
}
