package cli

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listingadmin/listing_admin/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Port: "3000",
		Env:  "test",
		Backend: config.BackendConfig{
			BaseURL:       "http://127.0.0.1:1",
			PublicBaseURL: "http://127.0.0.1:1",
		},
	}
}

func TestNewApp_Routes(t *testing.T) {
	a, err := newApp(testConfig())
	require.NoError(t, err)

	testCases := []struct {
		path string
		code int
	}{
		{path: "/", code: http.StatusOK},
		{path: "/healthz", code: http.StatusOK},
		{path: "/admin/orders", code: http.StatusOK},
		{path: "/admin/products/abc", code: http.StatusBadRequest},
		{path: "/admin/categories", code: http.StatusBadGateway},
		{path: "/admin/unknown", code: http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			a.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
			assert.Equal(t, tc.code, w.Code)
			assert.Len(t, w.Header().Get("X-Request-ID"), 8)
		})
	}
}

func TestHTTPServer_ShutdownEndsEventStreams(t *testing.T) {
	a, err := newApp(testConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	srv := newHTTPServer(ctx, "0", a.router)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = srv.Serve(ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/admin/events")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer shutdownCancel()
	start := time.Now()
	require.NoError(t, srv.Shutdown(shutdownCtx))
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestCheckCommand(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/categories", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer backend.Close()

	t.Chdir(t.TempDir())
	t.Setenv("API_BASE_URL", backend.URL)
	t.Setenv("ENV", "test")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"check"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, Execute())
	assert.Contains(t, out.String(), `"reachable": true`)
	assert.Contains(t, out.String(), backend.URL)
}
