package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/restaurants/:id", "404"))
	RecordRequest("GET", "/restaurants/:id", 404, 3*time.Millisecond)
	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/restaurants/:id", "404"))

	assert.Equal(t, before+1, after)
}

func TestRecordPick(t *testing.T) {
	before := testutil.ToFloat64(PicksTotal.WithLabelValues("top"))
	RecordPick("top")
	RecordPick("top")
	assert.Equal(t, before+2, testutil.ToFloat64(PicksTotal.WithLabelValues("top")))
}
