package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/search", "200"))
	RecordAPIRequest("GET", "/api/search", "200", 5*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/search", "200"))
	assert.Equal(t, before+1, after)
}

func TestRecordSearch(t *testing.T) {
	hits := testutil.ToFloat64(SearchCacheHits)
	misses := testutil.ToFloat64(SearchCacheMisses)

	RecordSearch(time.Millisecond, 3, false)
	RecordSearch(0, 3, true)

	assert.Equal(t, hits+1, testutil.ToFloat64(SearchCacheHits))
	assert.Equal(t, misses+1, testutil.ToFloat64(SearchCacheMisses))
}

func TestTrackActiveRequest(t *testing.T) {
	start := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	assert.Equal(t, start+1, testutil.ToFloat64(APIActiveRequests))
	TrackActiveRequest(false)
	assert.Equal(t, start, testutil.ToFloat64(APIActiveRequests))
}
