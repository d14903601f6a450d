package menu

import (
	"context"
	"errors"
	"time"

	"go.trai.ch/zerr"

	"github.com/leonardcser/uipath-mcp/internal/elementpath"
	"github.com/leonardcser/uipath-mcp/internal/logger"
	"github.com/leonardcser/uipath-mcp/internal/resolver"
)

// DefaultScanDepth is the deepest menu path, in components, a Scanner explores.
const DefaultScanDepth = 5

// ErrNoMenuBar is returned when an application exposes no menu bar.
var ErrNoMenuBar = zerr.New("application has no menu bar")

// ScanOption configures a Scanner.
type ScanOption func(*Scanner)

// WithMaxDepth limits how many components a scanned path may have.
func WithMaxDepth(n int) ScanOption {
	return func(s *Scanner) {
		if n >= 1 {
			s.maxDepth = n
		}
	}
}

// WithCacheTimeout sets the CacheTimeout stamped on scanned hierarchies.
func WithCacheTimeout(d time.Duration) ScanOption {
	return func(s *Scanner) { s.timeout = d }
}

// Scanner builds menu hierarchies by walking an application's menu bar.
type Scanner struct {
	provider resolver.TreeProvider
	resolver *resolver.Resolver
	maxDepth int
	timeout  time.Duration
}

// NewScanner creates a Scanner reading from provider.
func NewScanner(provider resolver.TreeProvider, opts ...ScanOption) *Scanner {
	s := &Scanner{
		provider: provider,
		resolver: resolver.New(provider),
		maxDepth: DefaultScanDepth,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Scan walks the menu bar of appID and returns its hierarchy.
func (s *Scanner) Scan(ctx context.Context, appID string) (*Hierarchy, error) {
	bar, err := s.menuBar(ctx, appID)
	if err != nil {
		return nil, err
	}

	items, err := s.provider.Children(ctx, bar)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read menu bar items")
	}

	w := &walk{scanner: s, menus: make(map[string][]string)}
	for _, item := range items {
		role, attrs, err := s.describe(ctx, item)
		if err != nil {
			return nil, err
		}
		title := attrs["AXTitle"]
		if role != "AXMenuBarItem" || title == "" {
			continue
		}
		if _, dup := w.menus[title]; !dup {
			w.order = append(w.order, title)
			w.menus[title] = nil
		}
		w.depth = max(w.depth, 1)
		if err := w.items(ctx, item, title, []string{title}); err != nil {
			return nil, err
		}
	}

	logger.Debugf("Scanned menus of %s: %d menus, depth %d", appID, len(w.order), w.depth)
	return NewHierarchy(appID, w.order, w.menus, w.depth, s.timeout), nil
}

func (s *Scanner) menuBar(ctx context.Context, appID string) (resolver.Element, error) {
	path, err := elementpath.New(
		elementpath.MustSegment(elementpath.ApplicationRole, map[string]string{"bundleId": appID}),
		elementpath.MustSegment("AXMenuBar", nil),
	)
	if err != nil {
		return nil, err
	}
	bars, err := s.resolver.ResolveAll(ctx, path)
	if errors.Is(err, resolver.ErrElementNotFound) {
		return nil, zerr.With(zerr.Wrap(ErrNoMenuBar, "scan menus"), "application", appID)
	}
	if err != nil {
		return nil, err
	}
	// Extra menu bars (status items) follow the application's own.
	return bars[0], nil
}

func (s *Scanner) describe(ctx context.Context, el resolver.Element) (string, map[string]string, error) {
	role, err := s.provider.Role(ctx, el)
	if err != nil {
		return "", nil, zerr.Wrap(err, "failed to read menu element role")
	}
	attrs, err := s.provider.Attributes(ctx, el)
	if err != nil {
		return "", nil, zerr.Wrap(err, "failed to read menu element attributes")
	}
	return role, attrs, nil
}

type walk struct {
	scanner *Scanner
	order   []string
	menus   map[string][]string
	depth   int
}

// items records every titled AXMenuItem below el (through its AXMenu
// children) and recurses into submenus up to the scanner's depth.
func (w *walk) items(ctx context.Context, el resolver.Element, top string, prefix []string) error {
	if len(prefix) >= w.scanner.maxDepth {
		return nil
	}
	menus, err := w.scanner.provider.Children(ctx, el)
	if err != nil {
		return zerr.Wrap(err, "failed to read menu children")
	}
	for _, m := range menus {
		role, err := w.scanner.provider.Role(ctx, m)
		if err != nil {
			return zerr.Wrap(err, "failed to read menu element role")
		}
		if role != "AXMenu" {
			continue
		}
		entries, err := w.scanner.provider.Children(ctx, m)
		if err != nil {
			return zerr.Wrap(err, "failed to read menu items")
		}
		for _, entry := range entries {
			role, attrs, err := w.scanner.describe(ctx, entry)
			if err != nil {
				return err
			}
			title := attrs["AXTitle"]
			// Separators are untitled menu items.
			if role != "AXMenuItem" || title == "" {
				continue
			}
			components := append(append([]string(nil), prefix...), title)
			w.menus[top] = append(w.menus[top], BuildPath(components))
			w.depth = max(w.depth, len(components))
			if err := w.items(ctx, entry, top, components); err != nil {
				return err
			}
		}
	}
	return nil
}
