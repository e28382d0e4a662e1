package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielpatrickdp/hecatestia/go-controller/internal/engine"
	"github.com/danielpatrickdp/hecatestia/go-controller/internal/protocol"
)

type cannedResponder string

func (c cannedResponder) Respond(context.Context, string, int) (string, error) {
	return string(c), nil
}

func newTestServer(t *testing.T, r engine.Responder) (*httptest.Server, *engine.Queue) {
	t.Helper()
	e, err := engine.New()
	require.NoError(t, err)
	q := engine.NewQueue(e, 8)
	ts := httptest.NewServer(New(q, r, nil).Router())
	t.Cleanup(func() {
		ts.Close()
		q.Close()
	})
	return ts, q
}

func post(t *testing.T, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	res, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer res.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	return res, out
}

func TestExecuteEndpoint(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	res, out := post(t, ts.URL+"/api/execute", `{"entrada":"hec"}`)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, true, out["exito"])
	assert.Equal(t, "HEC", out["comando"])
	assert.Equal(t, "activar_nodo", out["accion"])

	res, out = post(t, ts.URL+"/api/execute", `{"entrada":"nada"}`)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, false, out["exito"])
	assert.Nil(t, out["comando"])
	assert.Equal(t, protocol.GuidanceNotice, out["mensaje"])
}

func TestExecuteRejectsBadBody(t *testing.T) {
	ts, _ := newTestServer(t, nil)
	res, out := post(t, ts.URL+"/api/execute", `{`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.NotEmpty(t, out["error"])

	res, _ = post(t, ts.URL+"/api/execute", ``)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestStatusEndpoint(t *testing.T) {
	ts, _ := newTestServer(t, nil)
	post(t, ts.URL+"/api/execute", `{"entrada":"01"}`)
	post(t, ts.URL+"/api/execute", `{"entrada":"1"}`)

	res, err := http.Get(ts.URL + "/api/status")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var sum engine.Summary
	require.NoError(t, json.NewDecoder(res.Body).Decode(&sum))
	assert.Equal(t, 20, sum.XP)
	assert.Equal(t, 2, sum.Stats.Frequency[protocol.HEC])
	assert.Equal(t, "abierta", string(sum.Status))
}

func TestConverseEndpoint(t *testing.T) {
	ts, _ := newTestServer(t, cannedResponder("Aquí estoy."))
	res, out := post(t, ts.URL+"/api/converse", `{"pregunta":"¿estás?"}`)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "respuesta_ia", out["accion"])
	assert.Equal(t, "Aquí estoy.", out["mensaje"])

	bare, _ := newTestServer(t, nil)
	res2, err := http.Post(bare.URL+"/api/converse", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	res2.Body.Close()
	assert.Equal(t, http.StatusNotFound, res2.StatusCode)
}

func TestClosedQueueIsUnavailable(t *testing.T) {
	ts, q := newTestServer(t, nil)
	q.Close()
	res, _ := post(t, ts.URL+"/api/execute", `{"entrada":"HEC"}`)
	assert.Equal(t, http.StatusServiceUnavailable, res.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	ts, _ := newTestServer(t, nil)
	post(t, ts.URL+"/api/execute", `{"entrada":"HEC"}`)

	res, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	buf := new(strings.Builder)
	_, err = io.Copy(buf, res.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "hecate_commands_total")
}
