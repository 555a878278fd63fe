package httpserver_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	httpserver "travel_atlas/internal/adapters/http_server"
)

func TestTimeout_ReturnsProblem(t *testing.T) {
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	})
	rec := httptest.NewRecorder()
	httpserver.Timeout(10*time.Millisecond)(slow).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":503`) {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestLogger_RecordsStatusAndSize(t *testing.T) {
	var buf bytes.Buffer
	h := httpserver.Logger(zerolog.New(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/cities?q=ro", nil))

	line := buf.String()
	for _, want := range []string{`"status":418`, `"bytes":15`, `"route":"/v1/cities"`, `"query":"q=ro"`} {
		if !strings.Contains(line, want) {
			t.Fatalf("log line %s missing %s", line, want)
		}
	}
}
