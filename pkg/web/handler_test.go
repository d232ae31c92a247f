package web_test

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nspcc-dev/eos-pingdemo/pkg/web"
	"github.com/nspcc-dev/eos-pingdemo/pkg/widget"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type testInvoker struct {
	calls   atomic.Int32
	started chan struct{}
	results chan error
}

func (x *testInvoker) Ping(context.Context, widget.Target) error {
	x.calls.Add(1)
	x.started <- struct{}{}
	return <-x.results
}

func newTestHandler(t *testing.T) (http.Handler, *widget.Widget, *testInvoker) {
	gin.SetMode(gin.TestMode)

	inv := &testInvoker{
		started: make(chan struct{}, 10),
		results: make(chan error),
	}

	w, err := widget.New(widget.Prm{
		Target: widget.Target{
			Contract:      "ping.ctr",
			Actor:         "tester",
			Authorization: []string{"tester"},
		},
		Invoker: inv,
	})
	require.NoError(t, err)
	t.Cleanup(w.Close)

	return web.NewHandler(w, zaptest.NewLogger(t)), w, inv
}

func settle(t *testing.T, w *widget.Widget, inv *testInvoker, res error) {
	<-inv.started
	inv.results <- res

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, w.Wait(ctx))
}

func requireView(t *testing.T, exp widget.View, data []byte) {
	expData, err := json.Marshal(exp)
	require.NoError(t, err)
	require.JSONEq(t, string(expData), string(data))
}

func TestHandler_Page(t *testing.T) {
	h, _, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	require.Contains(t, rec.Body.String(), `<button data-action="ping">Ping EOS</button>`)
}

func TestHandler_PageLabel(t *testing.T) {
	h, w, inv := newTestHandler(t)

	require.True(t, w.Trigger())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Contains(t, rec.Body.String(), `<span style="color: gray">Pinging EOS...</span>`)

	settle(t, w, inv, errors.New("any"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Contains(t, rec.Body.String(), `<span style="color: red">Ping unsuccessful</span>`)
	require.NotContains(t, rec.Body.String(), "any")
}

func TestHandler_Ping(t *testing.T) {
	h, w, inv := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ping", nil))
	require.Equal(t, http.StatusAccepted, rec.Code)
	requireView(t, widget.Render(widget.Loading), rec.Body.Bytes())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ping", nil))
	require.Equal(t, http.StatusConflict, rec.Code)
	requireView(t, widget.Render(widget.Loading), rec.Body.Bytes())

	settle(t, w, inv, nil)
	require.EqualValues(t, 1, inv.calls.Load())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/view", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	requireView(t, widget.Render(widget.Success), rec.Body.Bytes())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_Healthz(t *testing.T) {
	h, _, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

// readView reads data of the next "view" event of the stream.
func readView(t *testing.T, r *bufio.Reader) []byte {
	var event string

	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)

		line = strings.TrimRight(line, "\n")

		switch {
		case strings.HasPrefix(line, "event:"):
			event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			require.Equal(t, "view", event)
			return []byte(strings.TrimSpace(strings.TrimPrefix(line, "data:")))
		}
	}
}

func TestHandler_Events(t *testing.T) {
	h, w, inv := newTestHandler(t)

	srv := httptest.NewServer(h)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/events")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	r := bufio.NewReader(resp.Body)

	requireView(t, widget.Render(widget.Idle), readView(t, r))

	require.True(t, w.Trigger())
	requireView(t, widget.Render(widget.Loading), readView(t, r))

	settle(t, w, inv, nil)
	requireView(t, widget.Render(widget.Success), readView(t, r))

	require.True(t, w.Trigger())
	requireView(t, widget.Render(widget.Loading), readView(t, r))

	settle(t, w, inv, errors.New("any"))
	requireView(t, widget.Render(widget.Failure), readView(t, r))
}
