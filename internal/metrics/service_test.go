package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewService(reg)

	s.IncTranscriptsParsed()
	s.IncLegsParsed("x01")
	s.IncLegsParsed("x01")
	s.IncLegsParsed("cricket")
	s.IncParseWarnings("line", 3)
	s.IncStatsMerged(4)
	s.ObserveParseDuration(0.02)

	assert.Equal(t, 1.0, testutil.ToFloat64(s.TranscriptsParsed))
	assert.Equal(t, 2.0, testutil.ToFloat64(s.LegsParsed.WithLabelValues("x01")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.LegsParsed.WithLabelValues("cricket")))
	assert.Equal(t, 3.0, testutil.ToFloat64(s.ParseWarnings.WithLabelValues("line")))
	assert.Equal(t, 4.0, testutil.ToFloat64(s.StatsMerged))

	rec := httptest.NewRecorder()
	NewMetricsHandler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `darts_legs_parsed_total{format="x01"} 2`)
}
