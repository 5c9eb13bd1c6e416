package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCountersIncrement(t *testing.T) {
	before := testutil.ToFloat64(recommendationsTotal.WithLabelValues("회의"))
	IncRecommendation("회의")
	if got := testutil.ToFloat64(recommendationsTotal.WithLabelValues("회의")); got != before+1 {
		t.Fatalf("expected %v, got %v", before+1, got)
	}

	jobs := testutil.ToFloat64(coachingJobsTotal.WithLabelValues("deleted_unrecoverable"))
	IncJobsDeletedUnrecoverable()
	if got := testutil.ToFloat64(coachingJobsTotal.WithLabelValues("deleted_unrecoverable")); got != jobs+1 {
		t.Fatalf("job counter not incremented")
	}

	fb := testutil.ToFloat64(coachingFallbackTotal)
	IncCoachingFallback()
	if got := testutil.ToFloat64(coachingFallbackTotal); got != fb+1 {
		t.Fatalf("fallback counter not incremented")
	}
}

func TestHandlerRendersSeries(t *testing.T) {
	gin.SetMode(gin.TestMode)
	IncClarification(true)
	ObserveCoachingDurationMs(-5)

	r := gin.New()
	r.GET("/metrics", Handler())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{`clarifications_total{needed="true"}`, "coaching_duration_ms_bucket"} {
		if !strings.Contains(body, want) {
			t.Fatalf("missing %q in %s", want, body)
		}
	}
}
