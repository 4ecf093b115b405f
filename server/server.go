package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/jonathanfischer97/juliadoc-mcp/cache"
	"github.com/jonathanfischer97/juliadoc-mcp/project"
	"github.com/jonathanfischer97/juliadoc-mcp/runner"
	"github.com/jonathanfischer97/juliadoc-mcp/script"
	"github.com/jonathanfischer97/juliadoc-mcp/symbols"
)

// Runner executes an interpreter script and returns its trimmed stdout.
type Runner interface {
	Run(ctx context.Context, s script.Script) (string, error)
}

// Options configures a Server.
type Options struct {
	// Runner executes interpreter scripts. Required.
	Runner Runner
	// TTL bounds cached response lifetime. Defaults to cache.DefaultTTL.
	TTL time.Duration
	// Clock overrides the cache clock (useful for tests).
	Clock cache.Clock
	// Logger defaults to a no-op logger.
	Logger *zap.Logger
	// Version is reported in the MCP handshake.
	Version string
}

// Server dispatches documentation tool calls.
type Server struct {
	runner  Runner
	cache   *cache.TTLCache[string]
	index   *symbols.Index
	logger  *zap.Logger
	version string
}

// New creates a Server with an empty cache and symbol index.
func New(opts Options) (*Server, error) {
	if opts.Runner == nil {
		return nil, errors.New("server: runner is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	var cacheOpts []cache.Option[string]
	if opts.Clock != nil {
		cacheOpts = append(cacheOpts, cache.WithClock[string](opts.Clock))
	}
	idx, err := symbols.New()
	if err != nil {
		return nil, err
	}
	version := opts.Version
	if version == "" {
		version = "dev"
	}
	return &Server{
		runner:  opts.Runner,
		cache:   cache.New[string](ttl, cacheOpts...),
		index:   idx,
		logger:  logger.Named("server"),
		version: version,
	}, nil
}

// Register adds the five documentation tools to s.
func (d *Server) Register(s *mcp.Server) {
	getDoc := getDocTool()
	s.AddTool(&getDoc, d.handleGetDoc)

	listPackage := listPackageTool()
	s.AddTool(&listPackage, d.handleListPackage)

	exploreProject := exploreProjectTool()
	s.AddTool(&exploreProject, d.handleExploreProject)

	getSource := getSourceTool()
	s.AddTool(&getSource, d.handleGetSource)

	searchSymbols := searchSymbolsTool()
	s.AddTool(&searchSymbols, d.handleSearchSymbols)
}

// Run serves the tools over stdio until ctx is cancelled or the client
// disconnects.
func (d *Server) Run(ctx context.Context) error {
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "juliadoc-mcp",
		Version: d.version,
	}, &mcp.ServerOptions{HasTools: true})
	d.Register(s)
	return s.Run(ctx, &mcp.StdioTransport{})
}

// Close releases the symbol index.
func (d *Server) Close() error {
	return d.index.Close()
}

type getDocArgs struct {
	Path              string `json:"path"`
	DetailLevel       string `json:"detail_level"`
	IncludeUnexported bool   `json:"include_unexported"`
}

func (d *Server) handleGetDoc(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args getDocArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(err), nil
	}
	level, err := script.ParseDetailLevel(args.DetailLevel)
	if err != nil {
		return errorResult(fmt.Errorf("%w: %q", err, args.DetailLevel)), nil
	}

	key := cache.Key("get-doc", args.Path, map[string]any{
		"detail_level":       string(level),
		"include_unexported": args.IncludeUnexported,
	})
	return d.cached(ctx, key, func() (script.Script, error) {
		return script.GetDoc(args.Path, level, args.IncludeUnexported)
	}, nil), nil
}

type listPackageArgs struct {
	Path              string `json:"path"`
	IncludeUnexported bool   `json:"include_unexported"`
}

func (d *Server) handleListPackage(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args listPackageArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(err), nil
	}

	key := cache.Key("list-package", args.Path, map[string]any{
		"include_unexported": args.IncludeUnexported,
	})
	return d.cached(ctx, key, func() (script.Script, error) {
		return script.ListPackage(args.Path, args.IncludeUnexported)
	}, func(output string) {
		n, err := d.index.IndexListing(args.Path, output)
		if err != nil {
			d.logger.Warn("symbol indexing failed",
				zap.String("package", args.Path),
				zap.Error(err))
			return
		}
		d.logger.Debug("indexed symbols",
			zap.String("package", args.Path),
			zap.Int("count", n))
	}), nil
}

type exploreProjectArgs struct {
	Path string `json:"path"`
}

func (d *Server) handleExploreProject(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args exploreProjectArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(err), nil
	}

	key := cache.Key("explore-project", args.Path, nil)
	if output, ok := d.cache.Get(key); ok {
		return textResult(output), nil
	}

	s, err := script.ExploreProject(args.Path)
	if err != nil {
		return errorResult(err), nil
	}
	output, err := d.runner.Run(ctx, s)
	if errors.Is(err, runner.ErrInterpreterNotFound) {
		// No interpreter is no obstacle here: the manifest is plain TOML.
		m, loadErr := project.Load(args.Path)
		if loadErr != nil {
			return errorResult(loadErr), nil
		}
		output, err = m.Render(), nil
	}
	if err != nil {
		return errorResult(err), nil
	}
	d.cache.Set(key, output)
	return textResult(output), nil
}

type getSourceArgs struct {
	Path string `json:"path"`
}

func (d *Server) handleGetSource(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args getSourceArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(err), nil
	}

	key := cache.Key("get-source", args.Path, nil)
	return d.cached(ctx, key, func() (script.Script, error) {
		return script.GetSource(args.Path)
	}, nil), nil
}

type searchSymbolsArgs struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

func (d *Server) handleSearchSymbols(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args searchSymbolsArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(err), nil
	}
	if args.Query == "" {
		return errorResult(errors.New("query must not be empty")), nil
	}
	if d.index.Len() == 0 {
		return textResult("No symbols indexed yet. Call list-package first to populate the index."), nil
	}

	entries, err := d.index.Search(args.Query, args.Limit)
	if err != nil {
		return errorResult(err), nil
	}
	return textResult(symbols.Render(entries)), nil
}

// cached runs the build-then-execute pipeline behind the response cache.
// onSuccess, if set, observes fresh (non-cached) successful output.
func (d *Server) cached(ctx context.Context, key string, build func() (script.Script, error), onSuccess func(string)) *mcp.CallToolResult {
	if output, ok := d.cache.Get(key); ok {
		d.logger.Debug("cache hit", zap.String("key", key))
		return textResult(output)
	}

	s, err := build()
	if err != nil {
		return errorResult(err)
	}
	output, err := d.runner.Run(ctx, s)
	if err != nil {
		return errorResult(err)
	}
	d.cache.Set(key, output)
	if onSuccess != nil {
		onSuccess(output)
	}
	return textResult(output)
}

func parseArgs(req *mcp.CallToolRequest, v any) error {
	raw := json.RawMessage(req.Params.Arguments)
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// errorResult reports a failure as tool output rather than a protocol
// error, so the caller sees the message and the hint it carries.
func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
		IsError: true,
	}
}
