package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordCartOperation(t *testing.T) {
	before := testutil.ToFloat64(cartOperations.WithLabelValues("add"))

	RecordCartOperation("add")
	RecordCartOperation("add")

	assert.Equal(t, before+2, testutil.ToFloat64(cartOperations.WithLabelValues("add")))
}

func TestRecordPersistFailure(t *testing.T) {
	before := testutil.ToFloat64(cartPersistFailures.WithLabelValues("save"))

	RecordPersistFailure("save")

	assert.Equal(t, before+1, testutil.ToFloat64(cartPersistFailures.WithLabelValues("save")))
}

func TestRecordUpstream(t *testing.T) {
	before := testutil.ToFloat64(upstreamRequests.WithLabelValues("districts", "ok"))

	RecordUpstream("districts", "ok")

	assert.Equal(t, before+1, testutil.ToFloat64(upstreamRequests.WithLabelValues("districts", "ok")))
}

func TestHandlerExposesCollectors(t *testing.T) {
	RecordHTTPRequest("GET", "/api/cart", "200", 10*time.Millisecond)
	ObservePersist(time.Millisecond)

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "foodorder_http_requests_total")
	assert.Contains(t, w.Body.String(), "foodorder_cart_persist_duration_seconds")
}

func TestTimer(t *testing.T) {
	timer := StartTimer()
	time.Sleep(time.Millisecond)
	assert.GreaterOrEqual(t, timer.Duration(), time.Millisecond)
}
