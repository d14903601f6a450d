package menu

import (
	"strings"

	"go.trai.ch/zerr"

	"github.com/leonardcser/uipath-mcp/internal/elementpath"
)

// Separator joins menu path components.
const Separator = " > "

// ErrInvalidMenuPath is returned for empty paths or paths with empty components.
var ErrInvalidMenuPath = zerr.New("invalid menu path")

// ParsePath splits s into its components. Components are returned verbatim;
// an empty component (including one produced by a leading or trailing
// separator) makes the path invalid.
func ParsePath(s string) ([]string, error) {
	if s == "" {
		return nil, invalidPath(s, "empty path")
	}
	parts := strings.Split(s, Separator)
	for i, p := range parts {
		if p == "" {
			return nil, zerr.With(invalidPath(s, "empty component"), "component", i)
		}
	}
	return parts, nil
}

// BuildPath joins components with Separator. BuildPath(nil) is "".
func BuildPath(components []string) string {
	return strings.Join(components, Separator)
}

// ValidatePath reports whether s is a well-formed menu path.
func ValidatePath(s string) error {
	_, err := ParsePath(s)
	return err
}

// ElementPath converts a menu path into the element path of its menu item
// under the application identified by appID.
func ElementPath(appID, menuPath string) (elementpath.Path, error) {
	components, err := ParsePath(menuPath)
	if err != nil {
		return elementpath.Path{}, err
	}
	segs := []elementpath.Segment{
		elementpath.MustSegment(elementpath.ApplicationRole, map[string]string{"bundleId": appID}),
		elementpath.MustSegment("AXMenuBar", nil),
		elementpath.MustSegment("AXMenuBarItem", map[string]string{"AXTitle": components[0]}),
	}
	for _, c := range components[1:] {
		segs = append(segs,
			elementpath.MustSegment("AXMenu", nil),
			elementpath.MustSegment("AXMenuItem", map[string]string{"AXTitle": c}),
		)
	}
	return elementpath.New(segs...)
}

func invalidPath(s, reason string) error {
	return zerr.With(zerr.Wrap(ErrInvalidMenuPath, reason), "path", s)
}
