package http

import (
	"context"
	"net/http"

	"github.com/w-h-a/qa/server"
)

type middlewareKey struct{}

func WithMiddleware(ms ...func(h http.Handler) http.Handler) server.Option {
	return func(o *server.Options) {
		o.Context = context.WithValue(o.Context, middlewareKey{}, ms)
	}
}

func MiddlewareFrom(ctx context.Context) ([]func(h http.Handler) http.Handler, bool) {
	ms, ok := ctx.Value(middlewareKey{}).([]func(h http.Handler) http.Handler)
	return ms, ok
}

type routesKey struct{}

// RouteMap binds method+path pairs to handlers, for example
// "POST /api/v1/chat".
type RouteMap map[string]http.HandlerFunc

func WithRoutes(routes RouteMap) server.Option {
	return func(o *server.Options) {
		o.Context = context.WithValue(o.Context, routesKey{}, routes)
	}
}

func RoutesFrom(ctx context.Context) (RouteMap, bool) {
	routes, ok := ctx.Value(routesKey{}).(RouteMap)
	return routes, ok
}
