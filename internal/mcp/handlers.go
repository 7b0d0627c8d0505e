package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/standardbeagle/smellscan/internal/analysis"
	"github.com/standardbeagle/smellscan/internal/debug"
	"github.com/standardbeagle/smellscan/internal/parser"
	"github.com/standardbeagle/smellscan/internal/report"
	"github.com/standardbeagle/smellscan/internal/scan"
)

// AnalyzeCodeParams are the analyze_code arguments
type AnalyzeCodeParams struct {
	Code      string   `json:"code"`
	Filename  string   `json:"filename,omitempty"`
	Language  string   `json:"language,omitempty"`
	Detectors []string `json:"detectors,omitempty"`
}

// AnalyzeFilesParams are the analyze_files arguments
type AnalyzeFilesParams struct {
	Paths     []string `json:"paths"`
	Detectors []string `json:"detectors,omitempty"`
}

// AnalyzeResponse is the result of both analyze tools
type AnalyzeResponse struct {
	Results  []scan.FileReport `json:"results"`
	Summary  *report.Summary   `json:"summary,omitempty"`
	Warnings []string          `json:"warnings,omitempty"`
}

// DetectorListing is the list_detectors result
type DetectorListing struct {
	Detectors  []analysis.DetectorInfo `json:"detectors"`
	Languages  []string                `json:"languages"`
	Thresholds map[string]int          `json:"thresholds"`
}

func decodeParams(req *mcp.CallToolRequest, v any) error {
	if req == nil || req.Params == nil || len(req.Params.Arguments) == 0 {
		return nil
	}
	if err := json.Unmarshal(req.Params.Arguments, v); err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}
	return nil
}

// resolveKinds resolves detector names; fuzzy matches come back as warnings.
func resolveKinds(names []string) ([]analysis.IssueKind, []string, error) {
	return analysis.ResolveDetectors(strings.Join(names, ","))
}

func (s *Server) handleAnalyzeCode(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params AnalyzeCodeParams
	if err := decodeParams(req, &params); err != nil {
		return createErrorResponse("analyze_code", err)
	}
	if strings.TrimSpace(params.Code) == "" {
		return createErrorResponse("analyze_code", errors.New("code is required"))
	}
	if limit := s.opts.MaxFileSize; limit > 0 && int64(len(params.Code)) > limit {
		return createErrorResponse("analyze_code", fmt.Errorf("code size %d exceeds limit %d", len(params.Code), limit))
	}

	kinds, warnings, err := resolveKinds(params.Detectors)
	if err != nil {
		return createErrorResponse("analyze_code", err)
	}

	debug.LogMCP("analyze_code: %d bytes, filename=%q language=%q", len(params.Code), params.Filename, params.Language)
	r, err := s.scannerFor(kinds).AnalyzeSource(params.Filename, params.Language, []byte(params.Code))
	if err != nil {
		return createErrorResponse("analyze_code", err)
	}

	return createJSONResponse(AnalyzeResponse{
		Results:  []scan.FileReport{r},
		Warnings: warnings,
	})
}

func (s *Server) handleAnalyzeFiles(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params AnalyzeFilesParams
	if err := decodeParams(req, &params); err != nil {
		return createErrorResponse("analyze_files", err)
	}
	if len(params.Paths) == 0 {
		return createErrorResponse("analyze_files", errors.New("paths is required"))
	}

	kinds, warnings, err := resolveKinds(params.Detectors)
	if err != nil {
		return createErrorResponse("analyze_files", err)
	}

	paths := make([]string, len(params.Paths))
	for i, p := range params.Paths {
		paths[i] = s.resolvePath(p)
	}

	debug.LogMCP("analyze_files: %v", paths)
	reports, err := s.scannerFor(kinds).Run(ctx, paths)
	if err != nil {
		return createErrorResponse("analyze_files", err)
	}
	if reports == nil {
		reports = []scan.FileReport{}
	}

	summary := report.Summarize(reports)
	return createJSONResponse(AnalyzeResponse{
		Results:  reports,
		Summary:  &summary,
		Warnings: warnings,
	})
}

func (s *Server) handleListDetectors(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	opts := s.scanner.Analyzer().Options()
	return createJSONResponse(DetectorListing{
		Detectors: analysis.Detectors(),
		Languages: parser.LanguageNames(),
		Thresholds: map[string]int{
			"long_function.threshold":         opts.LongFunctionThreshold,
			"deep_nesting.threshold":          opts.NestingThreshold,
			"duplicate_code.min_lines":        opts.Duplicate.MinLines,
			"duplicate_code.min_chars":        opts.Duplicate.MinChars,
			"duplicate_blocks.min_statements": opts.BlockMinStatements,
			"complexity.warn_at":              opts.Complexity.WarnAt,
			"complexity.note_at":              opts.Complexity.NoteAt,
		},
	})
}

// resolvePath anchors relative paths at the project root.
func (s *Server) resolvePath(p string) string {
	if filepath.IsAbs(p) || s.cfg.Project.Root == "" {
		return filepath.Clean(p)
	}
	return filepath.Join(s.cfg.Project.Root, p)
}
