// Package mcp exposes the analyzer as Model Context Protocol tools over
// stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"sort"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/standardbeagle/smellscan/internal/analysis"
	"github.com/standardbeagle/smellscan/internal/config"
	sdebug "github.com/standardbeagle/smellscan/internal/debug"
	"github.com/standardbeagle/smellscan/internal/scan"
	"github.com/standardbeagle/smellscan/internal/version"
)

// ServerName identifies the server to MCP clients.
const ServerName = "smellscan-mcp-server"

// Server serves the analysis tools.
type Server struct {
	server  *mcp.Server
	cfg     *config.Config
	opts    scan.Options
	scanner *scan.Scanner

	handlers map[string]toolHandler
}

// NewServer builds a server that analyzes with cfg's thresholds and resolves
// relative paths against cfg.Project.Root.
func NewServer(cfg *config.Config) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("mcp server requires a configuration")
	}
	opts := scan.OptionsFromConfig(cfg)
	s := &Server{
		cfg:      cfg,
		opts:     opts,
		scanner:  scan.New(opts),
		handlers: make(map[string]toolHandler),
	}

	s.server = mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: version.Info(),
	}, nil)
	s.registerTools()
	return s, nil
}

func (s *Server) registerTools() {
	s.addTool(&mcp.Tool{
		Name:        "analyze_code",
		Description: "Detect code smells in a source snippet: long functions, deep nesting, duplicate code, dead code, bad naming and cyclomatic complexity.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"code": {
					Type:        "string",
					Description: "Source code to analyze",
				},
				"filename": {
					Type:        "string",
					Description: "File name used to detect the language and label results (e.g. 'app.js')",
				},
				"language": {
					Type:        "string",
					Description: "Language name, overrides detection from filename (e.g. 'javascript', 'ts', 'go')",
				},
				"detectors": {
					Type:        "array",
					Description: "Detectors to run; names, aliases and prefixes are accepted. Default: all",
					Items:       &jsonschema.Schema{Type: "string"},
				},
			},
			Required: []string{"code"},
		},
	}, s.handleAnalyzeCode)

	s.addTool(&mcp.Tool{
		Name:        "analyze_files",
		Description: "Detect code smells in files or directories of the workspace. Directories are walked with the configured include/exclude globs.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"paths": {
					Type:        "array",
					Description: "Files or directories, absolute or relative to the project root",
					Items:       &jsonschema.Schema{Type: "string"},
				},
				"detectors": {
					Type:        "array",
					Description: "Detectors to run. Default: all",
					Items:       &jsonschema.Schema{Type: "string"},
				},
			},
			Required: []string{"paths"},
		},
	}, s.handleAnalyzeFiles)

	s.addTool(&mcp.Tool{
		Name:        "list_detectors",
		Description: "List the available detectors and the active thresholds.",
		InputSchema: &jsonschema.Schema{
			Type:       "object",
			Properties: map[string]*jsonschema.Schema{},
		},
	}, s.handleListDetectors)
}

type toolHandler = func(context.Context, *mcp.CallToolRequest) (*mcp.CallToolResult, error)

// addTool registers tool with panic recovery and records its handler for
// in-process calls.
func (s *Server) addTool(tool *mcp.Tool, handler toolHandler) {
	h := s.withRecovery(tool.Name, handler)
	s.handlers[tool.Name] = h
	s.server.AddTool(tool, h)
}

// CallTool invokes a registered tool in process, bypassing the transport.
func (s *Server) CallTool(ctx context.Context, name string, params any) (*mcp.CallToolResult, error) {
	h, ok := s.handlers[name]
	if !ok {
		return createErrorResponse(name, fmt.Errorf("unknown tool: %s", name))
	}
	args, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal params: %w", err)
	}
	return h(ctx, &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{Name: name, Arguments: args},
	})
}

// Tools returns the registered tool names.
func (s *Server) Tools() []string {
	names := make([]string, 0, len(s.handlers))
	for name := range s.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// withRecovery turns a handler panic into an error result.
func (s *Server) withRecovery(operation string, handler toolHandler) toolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (result *mcp.CallToolResult, err error) {
		defer func() {
			if r := recover(); r != nil {
				sdebug.LogMCP("PANIC RECOVERED in %s: %v\n%s", operation, r, debug.Stack())
				result, err = createErrorResponse(operation, fmt.Errorf("internal error: %v", r))
			}
		}()
		return handler(ctx, req)
	}
}

// scannerFor returns the shared, caching scanner, or a one-off scanner
// restricted to kinds.
func (s *Server) scannerFor(kinds []analysis.IssueKind) *scan.Scanner {
	if len(kinds) == 0 {
		return s.scanner
	}
	opts := s.opts
	opts.Analysis.Enabled = kinds
	opts.CacheEntries = 0
	return scan.New(opts)
}

// Start serves over stdio until ctx is cancelled or the client disconnects.
// Debug output is silenced because stdout carries protocol traffic.
func (s *Server) Start(ctx context.Context) error {
	sdebug.SetMCPMode(true)
	sdebug.LogMCP("starting MCP server with stdio transport")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
