package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/gatekeeper/internal/common"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserve_CountsByCode(t *testing.T) {
	m := New()

	m.Observe("grpc", "VerifyToken", nil, time.Millisecond)
	m.Observe("grpc", "VerifyToken", common.ErrActionForbidden, time.Millisecond)
	m.Observe("grpc", "VerifyToken", common.ErrActionForbidden, time.Millisecond)
	m.Observe("http", "sign_in", common.ErrInvalidCredentials, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("grpc", "VerifyToken", common.CodeOK)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("grpc", "VerifyToken", common.CodeActionForbidden)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("http", "sign_in", common.CodeInvalidCredentials)))
	assert.Equal(t, 2, testutil.CollectAndCount(m.latency))
}

func TestObserve_NilReceiver(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.Observe("grpc", "Ping", nil, 0) })
}

func TestHandler_ExposesCounters(t *testing.T) {
	m := New()
	m.Observe("grpc", "SignIn", nil, time.Millisecond)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `gatekeeper_requests_total{code="ok",op="SignIn",transport="grpc"} 1`)
}
