package resolver_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"

	"github.com/leonardcser/uipath-mcp/internal/elementpath"
	"github.com/leonardcser/uipath-mcp/internal/resolver"
	"github.com/leonardcser/uipath-mcp/internal/resolver/mocks"
)

type node struct {
	role     string
	attrs    map[string]string
	children []*node
}

func n(role string, attrs map[string]string, children ...*node) *node {
	return &node{role: role, attrs: attrs, children: children}
}

// fakeTree is a synthetic TreeProvider that counts Children calls.
type fakeTree struct {
	apps          map[string]*node
	childrenCalls int
	failChildren  error
}

func (f *fakeTree) RootElement(_ context.Context, appID string) (resolver.Element, error) {
	root, ok := f.apps[appID]
	if !ok {
		return nil, errors.New("no such application")
	}
	return root, nil
}

func (f *fakeTree) Children(_ context.Context, el resolver.Element) ([]resolver.Element, error) {
	f.childrenCalls++
	if f.failChildren != nil {
		return nil, f.failChildren
	}
	kids := el.(*node).children
	out := make([]resolver.Element, len(kids))
	for i, k := range kids {
		out[i] = k
	}
	return out, nil
}

func (f *fakeTree) Attributes(_ context.Context, el resolver.Element) (map[string]string, error) {
	return el.(*node).attrs, nil
}

func (f *fakeTree) Role(_ context.Context, el resolver.Element) (string, error) {
	return el.(*node).role, nil
}

type fixture struct {
	tree    *fakeTree
	root    *node
	window  *node
	ok      *node
	toolbar *node
	cancelA *node
	cancelB *node
	sameA   *node
	sameB   *node
}

func newFixture() *fixture {
	f := &fixture{}
	f.ok = n("AXButton", map[string]string{"AXTitle": "OK"})
	f.cancelA = n("AXButton", map[string]string{"AXTitle": "Cancel"})
	f.cancelB = n("AXButton", map[string]string{"AXTitle": "Cancel"})
	f.sameA = n("AXButton", map[string]string{"AXTitle": "Same"})
	f.sameB = n("AXButton", map[string]string{"AXTitle": "Same"})
	f.toolbar = n("AXToolbar", nil, f.cancelB)
	f.window = n("AXWindow", map[string]string{"AXTitle": "Main"},
		n("AXGroup", nil,
			n("AXGroup", nil, f.ok),
			f.cancelA,
		),
		f.toolbar,
		n("AXGroup", map[string]string{"AXIdentifier": "list"},
			n("AXStaticText", map[string]string{"AXValue": "header"}),
			f.sameA,
			f.sameB,
		),
	)
	f.root = n("AXApplication", map[string]string{"bundleId": "com.example.app", "AXTitle": "Example"}, f.window)
	f.tree = &fakeTree{apps: map[string]*node{"com.example.app": f.root}}
	return f
}

const app = `macos://ui/AXApplication[@bundleId="com.example.app"]`

func TestResolve_ApplicationRootShortCircuits(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockTreeProvider(ctrl)
	root := &node{role: "AXApplication"}

	// Children, Role and Attributes must never be called.
	provider.EXPECT().RootElement(gomock.Any(), "com.example.app").Return(root, nil).Times(1)

	r := resolver.New(provider)
	got, err := r.ResolveString(context.Background(), app)
	require.NoError(t, err)
	assert.Same(t, root, got.Element)
	assert.Equal(t, app, got.Path.String())
}

func TestResolve_TwoSegmentsNeverReturnRoot(t *testing.T) {
	f := newFixture()
	r := resolver.New(f.tree)

	got, err := r.ResolveString(context.Background(), app+`/AXWindow`)
	require.NoError(t, err)
	assert.Same(t, f.window, got.Element)
	assert.Positive(t, f.tree.childrenCalls)

	_, err = r.ResolveString(context.Background(), app+`/AXApplication`)
	assert.ErrorIs(t, err, resolver.ErrElementNotFound)
}

func TestResolve_TwoSegmentPathSearchesWithMock(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockTreeProvider(ctrl)
	root := &node{role: "AXApplication"}
	win := &node{role: "AXWindow"}

	provider.EXPECT().RootElement(gomock.Any(), "com.example.app").Return(root, nil)
	provider.EXPECT().Children(gomock.Any(), root).Return([]resolver.Element{win}, nil)
	provider.EXPECT().Role(gomock.Any(), win).Return("AXWindow", nil)
	provider.EXPECT().Attributes(gomock.Any(), win).Return(map[string]string{}, nil)

	got, err := resolver.New(provider).ResolveString(context.Background(), app+`/AXWindow`)
	require.NoError(t, err)
	assert.Same(t, win, got.Element)
}

func TestResolve_SkipsStructuralWrappers(t *testing.T) {
	f := newFixture()
	r := resolver.New(f.tree)

	got, err := r.ResolveString(context.Background(), app+`/AXWindow[@AXTitle="Main"]/AXButton[@AXTitle="OK"]`)
	require.NoError(t, err)
	assert.Same(t, f.ok, got.Element)
}

func TestResolve_Ambiguous(t *testing.T) {
	f := newFixture()
	r := resolver.New(f.tree)
	path := elementpath.MustParse(app + `/AXWindow/AXButton[@AXTitle="Cancel"]`)

	_, err := r.Resolve(context.Background(), path)
	require.ErrorIs(t, err, resolver.ErrAmbiguousPath)

	var ze *zerr.Error
	require.True(t, errors.As(err, &ze))
	assert.Equal(t, 2, ze.Metadata()["matches"])
	assert.Equal(t, path.String(), ze.Metadata()["path"])

	all, err := r.ResolveAll(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []resolver.Element{f.cancelA, f.cancelB}, all)

	got, err := r.ResolveString(context.Background(), app+`/AXWindow/AXToolbar/AXButton[@AXTitle="Cancel"]`)
	require.NoError(t, err)
	assert.Same(t, f.cancelB, got.Element)
}

func TestResolve_SiblingIndex(t *testing.T) {
	f := newFixture()
	r := resolver.New(f.tree)
	list := app + `/AXWindow/AXGroup[@AXIdentifier="list"]`

	_, err := r.ResolveString(context.Background(), list+`/AXButton[@AXTitle="Same"]`)
	assert.ErrorIs(t, err, resolver.ErrAmbiguousPath)

	got, err := r.ResolveString(context.Background(), list+`/AXButton[@AXTitle="Same"][1]`)
	require.NoError(t, err)
	assert.Same(t, f.sameA, got.Element)

	got, err = r.ResolveString(context.Background(), list+`/AXButton[@AXTitle="Same"][2]`)
	require.NoError(t, err)
	assert.Same(t, f.sameB, got.Element)

	_, err = r.ResolveString(context.Background(), list+`/AXButton[@AXTitle="Same"][3]`)
	assert.ErrorIs(t, err, resolver.ErrElementNotFound)
}

func TestResolve_SiblingIndexCountsMatchesOnly(t *testing.T) {
	first := n("AXButton", nil)
	second := n("AXButton", nil)
	win := n("AXWindow", nil, first, n("AXStaticText", nil), second)
	tree := &fakeTree{apps: map[string]*node{"com.example.app": n("AXApplication", nil, win)}}
	r := resolver.New(tree)

	got, err := r.ResolveString(context.Background(), app+`/AXWindow/AXButton[2]`)
	require.NoError(t, err)
	assert.Same(t, second, got.Element)

	got, err = r.ResolveString(context.Background(), app+`/AXWindow/AXButton#3`)
	require.NoError(t, err)
	assert.Same(t, second, got.Element)

	_, err = r.ResolveString(context.Background(), app+`/AXWindow/AXButton#2`)
	assert.ErrorIs(t, err, resolver.ErrElementNotFound)
}

func TestResolve_AbsolutePosition(t *testing.T) {
	f := newFixture()
	r := resolver.New(f.tree)
	list := app + `/AXWindow/AXGroup[@AXIdentifier="list"]`

	got, err := r.ResolveString(context.Background(), list+`/AXButton#2[@AXTitle="Same"]`)
	require.NoError(t, err)
	assert.Same(t, f.sameA, got.Element)

	got, err = r.ResolveString(context.Background(), list+`/AXButton#3[@AXTitle="Same"]`)
	require.NoError(t, err)
	assert.Same(t, f.sameB, got.Element)

	// Position 1 holds the static text, not a button.
	_, err = r.ResolveString(context.Background(), list+`/AXButton#1[@AXTitle="Same"]`)
	assert.ErrorIs(t, err, resolver.ErrElementNotFound)
}

func TestResolve_SingleSegmentMustBeApplication(t *testing.T) {
	f := newFixture()
	r := resolver.New(f.tree)

	_, err := r.ResolveString(context.Background(), `macos://ui/AXWindow[@AXTitle="Main"]`)
	assert.ErrorIs(t, err, resolver.ErrElementNotFound)
}

func TestResolve_NotFoundReportsSegment(t *testing.T) {
	f := newFixture()
	r := resolver.New(f.tree)

	_, err := r.ResolveString(context.Background(), app+`/AXWindow/AXSlider/AXButton`)
	require.ErrorIs(t, err, resolver.ErrElementNotFound)

	var ze *zerr.Error
	require.True(t, errors.As(err, &ze))
	assert.Equal(t, 2, ze.Metadata()["segment"])
}

func TestResolve_ParseErrorsSurface(t *testing.T) {
	r := resolver.New(newFixture().tree)
	_, err := r.ResolveString(context.Background(), "AXWindow")
	assert.ErrorIs(t, err, elementpath.ErrInvalidPathPrefix)
}

func TestResolve_ProviderErrors(t *testing.T) {
	f := newFixture()
	boom := errors.New("accessibility disabled")
	f.tree.failChildren = boom
	r := resolver.New(f.tree)

	_, err := r.ResolveString(context.Background(), app+`/AXWindow`)
	require.ErrorIs(t, err, boom)

	_, err = r.ResolveString(context.Background(), `macos://ui/AXApplication[@bundleId="missing"]/AXWindow`)
	require.Error(t, err)
	assert.NotErrorIs(t, err, resolver.ErrElementNotFound)
}

func TestResolve_MaxDepth(t *testing.T) {
	f := newFixture()
	r := resolver.New(f.tree, resolver.WithMaxDepth(1))

	_, err := r.ResolveString(context.Background(), app+`/AXWindow/AXButton[@AXTitle="OK"]`)
	assert.ErrorIs(t, err, resolver.ErrElementNotFound)
}

func TestResolve_CancelledContext(t *testing.T) {
	f := newFixture()
	r := resolver.New(f.tree)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.ResolveString(ctx, app+`/AXWindow`)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestApplicationID(t *testing.T) {
	assert.Equal(t, "com.example.app", resolver.ApplicationID(elementpath.MustParse(app)))
	assert.Equal(t, "Example", resolver.ApplicationID(elementpath.MustParse(`macos://ui/AXApplication[@AXTitle="Example"]`)))
	assert.Equal(t, "", resolver.ApplicationID(elementpath.MustParse(`macos://ui/AXWindow`)))
}

func TestChildren_PathsResolveBack(t *testing.T) {
	f := newFixture()
	r := resolver.New(f.tree)
	ctx := context.Background()

	parent, err := r.ResolveString(ctx, app+`/AXWindow/AXGroup[@AXIdentifier="list"]`)
	require.NoError(t, err)

	kids, err := r.Children(ctx, parent)
	require.NoError(t, err)
	require.Len(t, kids, 3)

	assert.Equal(t, parent.Path.String()+`/AXStaticText`, kids[0].Path.String())
	assert.Equal(t, parent.Path.String()+`/AXButton#2[@AXTitle="Same"]`, kids[1].Path.String())
	assert.Equal(t, parent.Path.String()+`/AXButton#3[@AXTitle="Same"]`, kids[2].Path.String())

	for _, k := range kids {
		got, err := r.Resolve(ctx, k.Path)
		require.NoError(t, err, k.Path.String())
		assert.Same(t, k.Element.(*node), got.Element.(*node))
	}
}

func TestChildren_UntitledSiblingResolvesBack(t *testing.T) {
	titled := n("AXButton", map[string]string{"AXTitle": "OK"})
	untitled := n("AXButton", nil)
	win := n("AXWindow", nil, titled, untitled, n("AXStaticText", nil))
	tree := &fakeTree{apps: map[string]*node{"com.example.app": n("AXApplication", nil, win)}}
	r := resolver.New(tree)
	ctx := context.Background()

	parent, err := r.ResolveString(ctx, app+`/AXWindow`)
	require.NoError(t, err)
	kids, err := r.Children(ctx, parent)
	require.NoError(t, err)
	require.Len(t, kids, 3)

	assert.Equal(t, `AXButton[@AXTitle="OK"]`, kids[0].Path.Last().String())
	assert.Equal(t, `AXButton#2`, kids[1].Path.Last().String())
	assert.Equal(t, `AXStaticText`, kids[2].Path.Last().String())

	for _, k := range kids {
		got, err := r.Resolve(ctx, k.Path)
		require.NoError(t, err, k.Path.String())
		assert.Same(t, k.Element.(*node), got.Element.(*node))
	}
}
