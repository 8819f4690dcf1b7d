package server

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type TerreHttpServer struct {
	router    *Router
	muxRouter *mux.Router
	port      string
	onStop    []func()
	ready     chan struct{}
}

func NewTerreHttpServer(router *Router, muxRouter *mux.Router, port string) *TerreHttpServer {
	if port == "" {
		port = "8080"
	}
	return &TerreHttpServer{
		router:    router,
		muxRouter: muxRouter,
		port:      port,
		ready:     make(chan struct{}),
	}
}

// Ready is closed once the listener accepts connections.
func (s *TerreHttpServer) Ready() <-chan struct{} {
	return s.ready
}

// OnStop registers a function run after the server has shut down.
func (s *TerreHttpServer) OnStop(fn func()) {
	s.onStop = append(s.onStop, fn)
}

// Start serves until SIGINT or SIGTERM, then shuts down gracefully.
func (s *TerreHttpServer) Start() {
	s.router.RegisterRoutes()

	srv := &http.Server{
		Addr:              ":" + s.port,
		Handler:           s.muxRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		log.Fatalf("[TerreHttpServer] Listen(): %v", err)
	}
	close(s.ready)

	go func() {
		log.Infof("[TerreHttpServer] Starting server on :%s", s.port)
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[TerreHttpServer] Serve(): %v", err)
		}
	}()

	<-stop
	log.Infof("[TerreHttpServer] Shutting down the server...")

	// Concierge replies can take a while; give them time to finish.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("[TerreHttpServer] Server forced to shutdown: %v", err)
	}
	for _, fn := range s.onStop {
		fn()
	}

	log.Infof("[TerreHttpServer] Server exiting")
}
