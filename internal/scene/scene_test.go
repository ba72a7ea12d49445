package scene

import (
	"testing"

	"github.com/pgdebus/scenewalk/hierarchy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildScene(t *testing.T) (*Graph, *Object, *Object, *Object) {
	t.Helper()
	g := NewGraph("A")
	g.RegisterTag("Circle")
	b := g.NewObject("B")
	c := g.NewObject("C")
	d := g.NewObject("D")
	require.NoError(t, g.Root().AddChild(b))
	require.NoError(t, b.AddChild(c))
	require.NoError(t, b.AddChild(d))
	require.NoError(t, g.Tag(b, "Circle"))
	return g, b, c, d
}

func TestGraph_TagRegistry(t *testing.T) {
	g, b, c, _ := buildScene(t)

	ok, err := b.HasTag("Circle")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.HasTag("Circle")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = b.HasTag("Triangle")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownTag)

	err = g.Tag(b, "Triangle")
	assert.ErrorIs(t, err, ErrUnknownTag)
}

func TestGraph_Tagged(t *testing.T) {
	g, b, _, d := buildScene(t)
	require.NoError(t, g.Tag(d, "Circle"))

	tagged, err := g.Tagged("Circle")
	require.NoError(t, err)
	require.Len(t, tagged, 2)
	assert.Contains(t, tagged, b)
	assert.Contains(t, tagged, d)

	require.NoError(t, g.Untag(d, "Circle"))
	tagged, err = g.Tagged("Circle")
	require.NoError(t, err)
	assert.Equal(t, []*Object{b}, tagged)

	_, err = g.Tagged("Triangle")
	assert.ErrorIs(t, err, ErrUnknownTag)
}

func TestObject_AddChildRejectsCycles(t *testing.T) {
	g, b, _, d := buildScene(t)

	err := b.AddChild(b)
	assert.Error(t, err, "self-parenting must be rejected")

	err = d.AddChild(g.Root())
	assert.Error(t, err, "adding an ancestor as a child must be rejected")

	other := NewGraph("other")
	err = b.AddChild(other.Root())
	assert.Error(t, err, "cross-graph attach must be rejected")
}

func TestObject_AddChildReparents(t *testing.T) {
	g, b, c, _ := buildScene(t)

	require.NoError(t, g.Root().AddChild(c))
	assert.Equal(t, g.Root(), c.ParentObject())
	assert.Len(t, b.ChildObjects(), 1, "C must be gone from B's children")
	assert.Equal(t, "/A/C", hierarchy.PathOf(c))
}

func TestObject_Remove(t *testing.T) {
	g, b, _, _ := buildScene(t)

	require.NoError(t, b.Remove())
	assert.Nil(t, b.ParentObject())
	assert.Empty(t, g.Root().ChildObjects())

	// the whole subtree is unindexed
	tagged, err := g.Tagged("Circle")
	require.NoError(t, err)
	assert.Empty(t, tagged)

	assert.Error(t, g.Root().Remove(), "root removal must be rejected")
}

func TestObject_ImplementsHierarchyNode(t *testing.T) {
	g, b, _, d := buildScene(t)
	d.SetActive(false)

	got, err := hierarchy.FindDescendant(g.Root(), hierarchy.ByName("D"), false, hierarchy.DepthFirst)
	require.NoError(t, err)
	assert.Equal(t, hierarchy.Node(d), got)

	got, err = hierarchy.FindDescendant(g.Root(), hierarchy.ByName("D"), true, hierarchy.DepthFirst)
	require.NoError(t, err)
	assert.Nil(t, got)

	anc, err := hierarchy.FindAncestor(d, hierarchy.ByTag("Circle"))
	require.NoError(t, err)
	assert.Equal(t, hierarchy.Node(b), anc)

	assert.Equal(t, "/A/B/D", hierarchy.PathOf(d))
	assert.Nil(t, g.Root().Parent(), "root Parent must be an untyped nil")
}

func TestGraph_TagsOf(t *testing.T) {
	g, b, _, _ := buildScene(t)
	g.RegisterTag("Red")
	require.NoError(t, g.Tag(b, "Red"))

	assert.Equal(t, []string{"Circle", "Red"}, g.TagsOf(b))
	assert.Empty(t, g.TagsOf(g.Root()))
	assert.Equal(t, []string{"Circle", "Red"}, g.Tags())
}
