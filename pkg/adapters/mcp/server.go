package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/gatefold"
	"github.com/aretw0/gatefold/internal/compiler"
	"github.com/aretw0/gatefold/pkg/domain"
	"github.com/aretw0/gatefold/pkg/ports"
	"github.com/aretw0/lifecycle"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	modelsURI      = "gatefold://models"
	modelURIPrefix = modelsURI + "/"
)

// LowerResponse is the structured result of the lowering tools.
type LowerResponse struct {
	Model *domain.Model `json:"model" jsonschema_description:"The lowered model"`
	Text  string        `json:"text" jsonschema_description:"The lowered model in source notation"`
}

// Engine defines the interface required by the MCP server to interact with gatefold.
type Engine interface {
	ports.Lowerer
}

// Server wraps the gatefold Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("gatefold-mcp", strings.TrimSpace(gatefold.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
		return nil
	})

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		slog.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("CORS Middleware", "method", r.Method, "path", r.URL.Path)
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: lower_source
	lowerTool := mcp.NewTool("lower_source",
		mcp.WithDescription("Lower a strand displacement model written in source notation to plain strands."),
		mcp.WithString("source", mcp.Required(), mcp.Description("Model source text")),
		mcp.WithOutputSchema[LowerResponse](),
	)
	s.mcpServer.AddTool(lowerTool, mcp.NewStructuredToolHandler(s.handleLowerSource))

	// TOOL: get_model
	getTool := mcp.NewTool("get_model",
		mcp.WithDescription("Lower a model from the library by its ID."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Model ID as returned by list_models")),
		mcp.WithOutputSchema[LowerResponse](),
	)
	s.mcpServer.AddTool(getTool, mcp.NewStructuredToolHandler(s.handleGetModel))

	// TOOL: list_models
	s.mcpServer.AddTool(mcp.NewTool("list_models",
		mcp.WithDescription("List the IDs of the models in the library."),
	), s.handleListModels)
}

func (s *Server) handleLowerSource(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (LowerResponse, error) {
	src, _ := args["source"].(string)
	if strings.TrimSpace(src) == "" {
		return LowerResponse{}, fmt.Errorf("source is required")
	}

	m, err := s.engine.Lower(ctx, []byte(src))
	if err != nil {
		slog.Warn("MCP lower_source failed", "error", err)
		return LowerResponse{}, fmt.Errorf("lower failed: %w", err)
	}
	return LowerResponse{Model: m, Text: compiler.Format(m)}, nil
}

func (s *Server) handleGetModel(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (LowerResponse, error) {
	id, _ := args["id"].(string)
	if id == "" {
		return LowerResponse{}, fmt.Errorf("id is required")
	}

	m, err := s.engine.LowerByID(ctx, id)
	if err != nil {
		return LowerResponse{}, fmt.Errorf("get model failed: %w", err)
	}
	return LowerResponse{Model: m, Text: compiler.Format(m)}, nil
}

func (s *Server) handleListModels(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ids, err := s.engine.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
	}
	jsonBytes, _ := json.Marshal(ids)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) registerResources() {
	// EXPOSE: gatefold://models
	s.mcpServer.AddResource(mcp.NewResource(modelsURI, "Model Library",
		mcp.WithMIMEType("application/json"),
	), s.readModels)

	// EXPOSE: gatefold://models/{id}
	s.mcpServer.AddResourceTemplate(mcp.NewResourceTemplate(modelURIPrefix+"{id}", "Lowered Model",
		mcp.WithTemplateMIMEType("application/json"),
	), s.readModel)
}

func (s *Server) readModels(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	ids, err := s.engine.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}
	jsonBytes, _ := json.Marshal(ids)

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      modelsURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}

func (s *Server) readModel(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := request.Params.URI
	id := strings.TrimPrefix(uri, modelURIPrefix)
	if id == uri || id == "" {
		return nil, fmt.Errorf("invalid model URI %q", uri)
	}

	m, err := s.engine.LowerByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to lower %s: %w", id, err)
	}
	jsonBytes, _ := json.Marshal(m)

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
