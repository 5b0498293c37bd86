package bootstrap_test

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"sync"
	"testing"
	"time"

	"go-empedge/internal/bootstrap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingAuditLogger struct {
	mu      sync.Mutex
	entries []bootstrap.AuditLog
}

func (l *recordingAuditLogger) Log(_ context.Context, entry bootstrap.AuditLog) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
}

func freePort(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())
	return strconv.Itoa(port)
}

func TestStartHTTPServer_ShutdownRunsHooks(t *testing.T) {
	port := freePort(t)
	audit := &recordingAuditLogger{}
	ctx, cancel := context.WithCancel(context.Background())

	var hookCalls []string
	done := make(chan error, 1)
	go func() {
		done <- bootstrap.StartHTTPServer(ctx,
			http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) }),
			bootstrap.ServerConfig{Port: port, ReadTimeout: time.Second, WriteTimeout: time.Second},
			audit,
			func(context.Context) error { hookCalls = append(hookCalls, "db"); return nil },
			func(context.Context) error { hookCalls = append(hookCalls, "logger"); return nil },
		)
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://127.0.0.1:" + port + "/")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusTeapot
	}, 5*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("server did not stop")
	}

	assert.Equal(t, []string{"db", "logger"}, hookCalls)
	require.Len(t, audit.entries, 1)
	assert.Equal(t, "SERVER_SHUTDOWN", audit.entries[0].Action)
}

func TestStartHTTPServer_HookErrorIsReturned(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	hookErr := errors.New("close pool: already closed")
	err := bootstrap.StartHTTPServer(ctx,
		http.NotFoundHandler(),
		bootstrap.ServerConfig{Port: freePort(t)},
		bootstrap.NewStdoutAuditLogger(),
		func(context.Context) error { return hookErr },
	)

	assert.ErrorIs(t, err, hookErr)
}

func TestStartHTTPServer_ListenError(t *testing.T) {
	ln, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer ln.Close()
	port := strconv.Itoa(ln.Addr().(*net.TCPAddr).Port)

	err = bootstrap.StartHTTPServer(context.Background(),
		http.NotFoundHandler(),
		bootstrap.ServerConfig{Port: port},
		bootstrap.NewStdoutAuditLogger(),
	)

	assert.Error(t, err)
}
