package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/pflag"

	"github.com/leonardcser/uipath-mcp/internal/config"
	"github.com/leonardcser/uipath-mcp/internal/logger"
	"github.com/leonardcser/uipath-mcp/internal/menu"
	"github.com/leonardcser/uipath-mcp/internal/menucache"
	"github.com/leonardcser/uipath-mcp/internal/resolver"
	"github.com/leonardcser/uipath-mcp/internal/snapshot"
	tools "github.com/leonardcser/uipath-mcp/internal/tools"
)

func main() {
	configPath := pflag.String("config", "", "path to the YAML configuration file")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}
	if lvl, ok := logger.ParseLevel(cfg.Log.Level); ok {
		logger.SetLevel(lvl)
	}
	if cfg.Log.Path != "" {
		err = logger.Init(cfg.Log.Path)
	} else {
		err = logger.InitFromEnv()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Close()

	logger.Infof("Starting UI Path MCP server")

	store, err := snapshot.Open(cfg.Snapshot.DB, snapshot.Options{Bucket: cfg.Snapshot.Bucket})
	if err != nil {
		logger.Errorf("Failed to open snapshot store: %v", err)
		panic(err)
	}
	defer store.Close()
	logger.Infof("Opened snapshot store at %s", cfg.Snapshot.DB)

	provider := snapshot.NewProvider(store)
	res := resolver.New(provider, resolver.WithMaxDepth(cfg.Resolver.MaxDepth))
	scanner := menu.NewScanner(provider,
		menu.WithMaxDepth(cfg.Menu.MaxDepth),
		menu.WithCacheTimeout(cfg.Cache.Timeout),
	)
	cache := menucache.New(menucache.Options{
		MaxSize:        cfg.Cache.MaxSize,
		DefaultTimeout: cfg.Cache.Timeout,
	})
	loader := menucache.NewLoader(cache, scanner)
	logger.Infof("Initialized resolver and menu cache (size %d, timeout %s)", cfg.Cache.MaxSize, cfg.Cache.Timeout)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	go cache.RunJanitor(ctx, cfg.Cache.CleanupInterval)

	s := server.NewMCPServer(
		"UI Path MCP",
		"0.1.0",
		server.WithRecovery(),
		server.WithToolCapabilities(false),
	)
	logger.Infof("Created MCP server instance")

	elementArg := mcp.WithString("element", mcp.Required(),
		mcp.Description("Element path (macos://ui/...) or an opaque element id returned by another tool"))

	toolResolve := mcp.NewTool("ui-resolve",
		mcp.WithDescription(multiline(
			"Resolves a UI element path against the application's accessibility tree",
			"\nFunctionality:",
			"- Takes an element path or opaque element id",
			"- Skips structural wrapper elements that are not named in the path",
			"- Returns the element's role, attributes and opaque id; path-decode shows the path behind an id",
			"\nUsage notes:",
			"- Paths look like macos://ui/AXApplication[@bundleId=\"com.apple.calculator\"]/AXWindow/AXButton[@AXDescription=\"1\"]",
			"- Fails when the path matches more than one element; add attributes, a sibling index such as [2], or a position such as AXButton#3",
		)),
		elementArg,
	)
	s.AddTool(toolResolve, tools.ResolveHandler(res, provider))
	logger.Infof("Registered ui-resolve tool")

	toolChildren := mcp.NewTool("ui-children",
		mcp.WithDescription(multiline(
			"Lists the direct children of a UI element",
			"\nFunctionality:",
			"- Returns each child's role, attributes and opaque id",
			"- Children that a sibling's path would also match get a #position so every id is unique",
		)),
		elementArg,
	)
	s.AddTool(toolChildren, tools.ChildrenHandler(res))
	logger.Infof("Registered ui-children tool")

	toolMenu := mcp.NewTool("menu-items",
		mcp.WithDescription(multiline(
			"Lists or searches an application's menu items",
			"\nFunctionality:",
			"- Menu paths look like \"File > Save As...\"",
			"- Modes: all, exact, partial (case-insensitive containment), suggest (ranked similarity)",
			"- Returns an opaque element id for every item",
			"\nUsage notes:",
			"- Menu hierarchies are cached per application; pass refresh=true after the menus change",
		)),
		mcp.WithString("application", mcp.Required(), mcp.Description("Application bundle identifier")),
		mcp.WithString("query", mcp.Description("Menu path or fragment to look for")),
		mcp.WithString("mode", mcp.Description("all, exact, partial or suggest (default partial with a query, all without)")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of items to return")),
		mcp.WithBoolean("refresh", mcp.Description("Rescan the menus instead of using the cache")),
	)
	s.AddTool(toolMenu, tools.MenuItemsHandler(loader, cfg.Menu.Suggestions))
	logger.Infof("Registered menu-items tool")

	toolCache := mcp.NewTool("menu-cache",
		mcp.WithDescription(multiline(
			"Inspects or manages the menu hierarchy cache",
			"\nActions:",
			"- stats: hit, miss, expiry and eviction counters",
			"- info: entries in least to most recently used order",
			"- invalidate: drop one application (requires application)",
			"- invalidate-all: drop everything and reset the counters",
			"- cleanup: remove expired entries now",
		)),
		mcp.WithString("action", mcp.Required(), mcp.Description("stats, info, invalidate, invalidate-all or cleanup")),
		mcp.WithString("application", mcp.Description("Application bundle identifier for invalidate")),
	)
	s.AddTool(toolCache, tools.MenuCacheHandler(cache))
	logger.Infof("Registered menu-cache tool")

	toolEncode := mcp.NewTool("path-encode",
		mcp.WithDescription("Encodes an element path as an opaque id that is safe to embed in JSON"),
		mcp.WithString("path", mcp.Required(), mcp.Description("Element path to encode")),
	)
	s.AddTool(toolEncode, tools.PathEncodeHandler())

	toolDecode := mcp.NewTool("path-decode",
		mcp.WithDescription("Decodes an opaque element id back to its element path"),
		mcp.WithString("id", mcp.Required(), mcp.Description("Opaque element id")),
	)
	s.AddTool(toolDecode, tools.PathDecodeHandler())
	logger.Infof("Registered path codec tools")

	logger.Infof("Starting MCP server on stdio")
	if err := server.ServeStdio(s); err != nil {
		logger.Errorf("server error: %v", err)
	}
}

// multiline joins lines with newlines for tool descriptions.
func multiline(lines ...string) string { return strings.Join(lines, "\n") }
