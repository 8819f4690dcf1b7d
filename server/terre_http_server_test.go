package server

import (
	"syscall"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTerreHttpServer_DefaultPort(t *testing.T) {
	muxRouter := mux.NewRouter()
	router := NewRouter(&MockBusinessHandler{}, &MockSessionHandler{}, &MockConciergeHandler{}, muxRouter, "")

	assert.Equal(t, "8080", NewTerreHttpServer(router, muxRouter, "").port)
	assert.Equal(t, "9090", NewTerreHttpServer(router, muxRouter, "9090").port)
}

func TestTerreHttpServer_StartAndStop(t *testing.T) {
	muxRouter := mux.NewRouter()
	router := NewRouter(&MockBusinessHandler{}, &MockSessionHandler{}, &MockConciergeHandler{}, muxRouter, "")
	srv := NewTerreHttpServer(router, muxRouter, "0")

	stopped := make(chan struct{})
	srv.OnStop(func() { close(stopped) })

	done := make(chan struct{})
	go func() {
		srv.Start()
		close(done)
	}()

	select {
	case <-srv.Ready():
	case <-time.After(5 * time.Second):
		t.Fatal("server never became ready")
	}

	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGTERM))

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	select {
	case <-stopped:
	default:
		t.Fatal("stop hook did not run")
	}
}
