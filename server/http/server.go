package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/w-h-a/qa/server"
)

type httpServer struct {
	options server.Options
	srv     *http.Server
}

func (s *httpServer) Run() error {
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *httpServer) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func NewServer(opts ...server.Option) server.Server {
	options := server.NewOptions(opts...)

	router := mux.NewRouter()

	if routes, ok := RoutesFrom(options.Context); ok {
		for key, handler := range routes {
			method, path, found := strings.Cut(key, " ")
			if !found {
				panic("route key must be \"METHOD /path\": " + key)
			}
			router.HandleFunc(path, handler).Methods(method)
		}
	}

	var handler http.Handler = router

	if ms, ok := MiddlewareFrom(options.Context); ok {
		// Wrap in reverse so the first middleware listed is outermost.
		for i := len(ms) - 1; i >= 0; i-- {
			handler = ms[i](handler)
		}
	}

	handler = otelhttp.NewHandler(handler, "qa.http")

	return &httpServer{
		options: options,
		srv: &http.Server{
			Addr:              options.Address,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}
