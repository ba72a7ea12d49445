// Package scene is an in-memory host tree: a rooted, ordered hierarchy of
// named objects with activation flags and a registered-tag index. It
// plays the role of the external engine that owns the tree; the search
// layer (package hierarchy) only reads it.
package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/RoaringBitmap/roaring"
	"github.com/pgdebus/scenewalk/hierarchy"
)

// ErrUnknownTag is returned when a tag query names a classification that
// was never registered with the graph.
var ErrUnknownTag = errors.New("tag not registered")

// Graph owns a scene tree plus the tag registry. Tag membership is kept
// column-major: one roaring bitmap of object IDs per registered tag, so
// reverse lookups (all objects with tag T) are a bitmap iteration instead
// of a full tree scan.
type Graph struct {
	root    *Object
	nextID  uint32
	objects map[uint32]*Object         // object ID → object (live, attached or detached)
	tags    map[string]*roaring.Bitmap // registered tag → bitmap of object IDs
}

// Object is one vertex of a scene Graph. It implements hierarchy.Node.
type Object struct {
	graph  *Graph
	id     uint32
	name   string
	active bool
	parent *Object
	kids   []*Object
}

// NewGraph creates a graph with a single root object of the given name.
func NewGraph(rootName string) *Graph {
	g := &Graph{
		objects: make(map[uint32]*Object),
		tags:    make(map[string]*roaring.Bitmap),
	}
	g.root = g.NewObject(rootName)
	return g
}

// Root returns the root object.
func (g *Graph) Root() *Object { return g.root }

// NewObject creates a detached object owned by this graph. Objects start
// active; attach with AddChild.
func (g *Graph) NewObject(name string) *Object {
	o := &Object{graph: g, id: g.nextID, name: name, active: true}
	g.nextID++
	g.objects[o.id] = o
	return o
}

// RegisterTag adds a tag to the registry. Registering an existing tag is
// a no-op.
func (g *Graph) RegisterTag(name string) {
	if _, ok := g.tags[name]; !ok {
		g.tags[name] = roaring.New()
	}
}

// TagRegistered reports whether the tag exists in the registry.
func (g *Graph) TagRegistered(name string) bool {
	_, ok := g.tags[name]
	return ok
}

// Tags returns all registered tag names, sorted.
func (g *Graph) Tags() []string {
	out := make([]string, 0, len(g.tags))
	for name := range g.tags {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Tag marks an object with a registered tag.
func (g *Graph) Tag(o *Object, tag string) error {
	bm, ok := g.tags[tag]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTag, tag)
	}
	bm.Add(o.id)
	return nil
}

// Untag removes a tag from an object.
func (g *Graph) Untag(o *Object, tag string) error {
	bm, ok := g.tags[tag]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTag, tag)
	}
	bm.Remove(o.id)
	return nil
}

// Tagged returns every live object carrying the tag, in ID order.
func (g *Graph) Tagged(tag string) ([]*Object, error) {
	bm, ok := g.tags[tag]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTag, tag)
	}
	var out []*Object
	it := bm.Iterator()
	for it.HasNext() {
		if o, ok := g.objects[it.Next()]; ok {
			out = append(out, o)
		}
	}
	return out, nil
}

// TagsOf returns the registered tags carried by o, sorted.
func (g *Graph) TagsOf(o *Object) []string {
	var out []string
	for name, bm := range g.tags {
		if bm.Contains(o.id) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// unindex removes o and its whole subtree from the object map and every
// tag bitmap. Called on Remove.
func (g *Graph) unindex(o *Object) {
	delete(g.objects, o.id)
	for _, bm := range g.tags {
		bm.Remove(o.id)
	}
	for _, k := range o.kids {
		g.unindex(k)
	}
}

// ---------------------------------------------------------------------------
// Object: hierarchy.Node capability
// ---------------------------------------------------------------------------

// Children returns the ordered child sequence. The returned slice is a
// fresh copy; the graph's own child list is never exposed for mutation.
func (o *Object) Children() []hierarchy.Node {
	out := make([]hierarchy.Node, len(o.kids))
	for i, k := range o.kids {
		out[i] = k
	}
	return out
}

// Parent returns the parent node, or nil at the root. The untyped nil is
// deliberate: hierarchy.Node comparisons against nil must succeed.
func (o *Object) Parent() hierarchy.Node {
	if o.parent == nil {
		return nil
	}
	return o.parent
}

// Name returns the display name.
func (o *Object) Name() string { return o.name }

// Active returns the activation flag.
func (o *Object) Active() bool { return o.active }

// HasTag reports tag membership. Querying an unregistered tag is a
// contract violation and returns ErrUnknownTag.
func (o *Object) HasTag(tag string) (bool, error) {
	bm, ok := o.graph.tags[tag]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownTag, tag)
	}
	return bm.Contains(o.id), nil
}

// ---------------------------------------------------------------------------
// Object: host-side mutators
// ---------------------------------------------------------------------------

// SetActive sets the activation flag.
func (o *Object) SetActive(on bool) { o.active = on }

// ParentObject returns the parent as a concrete *Object, nil at the root.
func (o *Object) ParentObject() *Object { return o.parent }

// ChildObjects returns the ordered children as concrete objects.
func (o *Object) ChildObjects() []*Object {
	return append([]*Object(nil), o.kids...)
}

// AddChild appends child to o's children, detaching it from any previous
// parent first (a reparent is an AddChild under the new parent). Adding
// an object to itself or to one of its own descendants is rejected — the
// tree must stay acyclic.
func (o *Object) AddChild(child *Object) error {
	if child == nil {
		return errors.New("scene: nil child")
	}
	if child.graph != o.graph {
		return errors.New("scene: child belongs to a different graph")
	}
	for a := o; a != nil; a = a.parent {
		if a == child {
			return fmt.Errorf("scene: %q is an ancestor of %q, no cycles permitted", child.name, o.name)
		}
	}
	if child.parent != nil {
		child.parent.removeKid(child)
	}
	child.parent = o
	o.kids = append(o.kids, child)
	return nil
}

// Remove detaches o from its parent and drops its whole subtree from the
// graph's indexes. The root cannot be removed.
func (o *Object) Remove() error {
	if o.parent == nil {
		return errors.New("scene: cannot remove the root")
	}
	o.parent.removeKid(o)
	o.parent = nil
	o.graph.unindex(o)
	return nil
}

func (o *Object) removeKid(child *Object) {
	for i, k := range o.kids {
		if k == child {
			o.kids = append(o.kids[:i], o.kids[i+1:]...)
			return
		}
	}
}
