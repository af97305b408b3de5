package main

import (
	"log"

	"github.com/alecthomas/kong"

	toolhandler "github.com/w-h-a/qa/cmd/toolserver/handler/tool"
	"github.com/w-h-a/qa/server"
	httpserver "github.com/w-h-a/qa/server/http"
	"github.com/w-h-a/qa/tool_handler/add"
	"github.com/w-h-a/qa/tool_handler/multiply"
)

var (
	cfg struct {
		Address string `help:"Address for the tool server" default:":8081"`
	}
)

func main() {
	// Parse inputs
	_ = kong.Parse(&cfg)

	handler := toolhandler.NewHandler(
		add.NewToolHandler(),
		multiply.NewToolHandler(),
	)

	srv := httpserver.NewServer(
		server.WithAddress(cfg.Address),
		httpserver.WithRoutes(httpserver.RouteMap{
			"POST /tools": handler.Handle,
		}),
	)

	log.Printf("tool server listening on %s", cfg.Address)

	if err := srv.Run(); err != nil {
		log.Fatalf("tool server failed: %v", err)
	}
}
