package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNewRegistersCollectors(t *testing.T) {
	m := New()
	m.Advances.Inc()
	m.MountedViews.Set(3)
	m.RejectedMsgs.WithLabelValues("rate_limited").Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Advances))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.MountedViews))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RejectedMsgs.WithLabelValues("rate_limited")))
}

func TestSeparateInstancesDoNotCollide(t *testing.T) {
	assert.NotPanics(t, func() {
		New()
		New()
	})
}

func TestHandler(t *testing.T) {
	m := New()
	m.Selections.Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "slideshow_manual_selections_total 1")
}
