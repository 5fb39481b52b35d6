package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/blokus-go/internal/testutil"
)

func onlyRecord(t *testing.T, logs *testutil.LogCapture) map[string]any {
	t.Helper()
	records := logs.Records()
	require.Len(t, records, 1)
	return records[0]
}

func TestLoggingRecordsRouteAndGame(t *testing.T) {
	logger, logs := testutil.CaptureLogger()

	r := mux.NewRouter()
	r.Use(Logging(logger))
	r.HandleFunc("/games/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("missing"))
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/games/ABC", nil))

	line := onlyRecord(t, logs)
	assert.Equal(t, "WARN", line["level"])
	assert.Equal(t, "/games/{id}", line["route"])
	assert.Equal(t, "ABC", line["game_id"])
	assert.EqualValues(t, 404, line["status"])
	assert.EqualValues(t, 7, line["size"])
}

func TestLoggingWithoutRouter(t *testing.T) {
	logger, logs := testutil.CaptureLogger()

	h := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	line := onlyRecord(t, logs)
	assert.Equal(t, "INFO", line["level"])
	assert.EqualValues(t, 200, line["status"])
	assert.NotContains(t, line, "game_id")
}

func TestRecovery(t *testing.T) {
	logger, logs := testutil.CaptureLogger()

	var recovered any
	h := Recovery(logger, func(w http.ResponseWriter, r *http.Request, err any) {
		recovered = err
		w.WriteHeader(http.StatusTeapot)
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/games", nil))

	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.Equal(t, "boom", recovered)
	assert.Contains(t, logs.Messages(), "panic recovered")
}
