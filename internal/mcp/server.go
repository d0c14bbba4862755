// Package mcp exposes the culling operations as MCP tools, so rounds can be
// driven by scripts and agents as well as the web UI.
package mcp

import (
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/avenclark/photosift/internal/app"
)

const serverInstructions = `photosift narrows an image directory down through
successive culling rounds. Round 1 candidates come from scanning the active
project's source directory; each later round's candidates are exactly the
images kept in the round before it. Use toggle_selection to keep or drop a
candidate, finish_round to export the current round's kept set, and
next_round to advance. Advancing with force=false fails when the next round
already holds selections; retry with force=true after confirming, which
clears them.`

// Config contains server configuration.
type Config struct {
	App    *app.App
	Logger *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "photosift",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.App)

	return server
}
