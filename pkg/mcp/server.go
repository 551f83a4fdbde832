// Package mcp exposes the site toolkit to AI tools over the Model Context
// Protocol: outline extraction, content search, and slide progress, all
// read-mostly operations over already-built site state.
package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"sitekit/pkg/config"
	"sitekit/pkg/progress"
)

const (
	serverName    = "sitekit"
	serverVersion = "1.0.0"
)

// ServerConfig holds configuration for the MCP server
type ServerConfig struct {
	AppConfig  *config.AppConfig
	ConfigPath string
	Transport  string // "stdio" or "sse"
	Port       int
	Logger     *logrus.Logger
}

// Server wraps the MCP server with sitekit-specific functionality
type Server struct {
	mcpServer     *server.MCPServer
	cfg           *ServerConfig
	log           *logrus.Entry
	progressStore progress.Store
}

// NewServer creates a new MCP server instance. The progress database is
// opened once for the server's lifetime; call Shutdown to release it.
func NewServer(cfg *ServerConfig) (*Server, error) {
	if cfg.AppConfig == nil {
		return nil, fmt.Errorf("AppConfig is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}

	mcpServer := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithLogging(),
	)

	logEntry := cfg.Logger.WithField("component", "mcp")

	store, err := progress.NewBadgerStore(cfg.AppConfig.StateDir, logEntry)
	if err != nil {
		return nil, fmt.Errorf("opening progress store: %w", err)
	}

	s := &Server{
		mcpServer:     mcpServer,
		cfg:           cfg,
		log:           logEntry,
		progressStore: store,
	}

	// Register all tools
	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	// list_sections - List all configured content sections
	listSectionsTool := mcp.NewTool("list_sections",
		mcp.WithDescription("List all configured content sections of the site"),
	)
	s.mcpServer.AddTool(listSectionsTool, s.handleListSections)

	// get_outline - Extract a document outline from markdown or HTML
	getOutlineTool := mcp.NewTool("get_outline",
		mcp.WithDescription("Extract the heading outline of a document. Returns the flat heading sequence with unique anchors and the nested outline tree."),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("The document content to outline"),
		),
		mcp.WithString("format",
			mcp.Description("Content format: 'markdown' (default) or 'html'"),
		),
		mcp.WithNumber("min_level",
			mcp.Description("Minimum heading level to include (default: 1)"),
		),
		mcp.WithNumber("max_level",
			mcp.Description("Maximum heading level to include (default: 6)"),
		),
	)
	s.mcpServer.AddTool(getOutlineTool, s.handleGetOutline)

	// search_content - Search the built site's index
	searchContentTool := mcp.NewTool("search_content",
		mcp.WithDescription("Search the built site's content index using case-insensitive text matching"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search query"),
		),
		mcp.WithString("section",
			mcp.Description("Limit search to a specific section (optional)"),
		),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum number of results to return (default: 10, max: 100)"),
		),
	)
	s.mcpServer.AddTool(searchContentTool, s.handleSearchContent)

	// get_progress - Read slide deck progress
	getProgressTool := mcp.NewTool("get_progress",
		mcp.WithDescription("Get the recorded reading progress for a slide deck"),
		mcp.WithString("deck_id",
			mcp.Required(),
			mcp.Description("The deck identifier (output-relative page path)"),
		),
	)
	s.mcpServer.AddTool(getProgressTool, s.handleGetProgress)

	// set_progress - Record slide deck progress
	setProgressTool := mcp.NewTool("set_progress",
		mcp.WithDescription("Record the current slide for a slide deck"),
		mcp.WithString("deck_id",
			mcp.Required(),
			mcp.Description("The deck identifier (output-relative page path)"),
		),
		mcp.WithNumber("slide_index",
			mcp.Required(),
			mcp.Description("Zero-based index of the current slide"),
		),
		mcp.WithNumber("slide_count",
			mcp.Description("Total slides in the deck (0 if unknown)"),
		),
	)
	s.mcpServer.AddTool(setProgressTool, s.handleSetProgress)

	s.log.Infof("Registered %d MCP tools", 5)
}

// Run starts the MCP server with the configured transport
func (s *Server) Run() error {
	switch s.cfg.Transport {
	case "stdio":
		s.log.Info("Starting MCP server with stdio transport")
		return server.ServeStdio(s.mcpServer)
	case "sse":
		addr := fmt.Sprintf(":%d", s.cfg.Port)
		s.log.Infof("Starting MCP server with SSE transport on %s", addr)
		sseServer := server.NewSSEServer(s.mcpServer)
		return sseServer.Start(addr)
	default:
		return fmt.Errorf("unknown transport: %s (supported: stdio, sse)", s.cfg.Transport)
	}
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down MCP server...")
	return s.progressStore.Close()
}
