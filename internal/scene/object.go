package scene

import (
	"fmt"
	"image/color"
)

// ID names an animatable entity.
type ID string

const (
	Ground     ID = "ground"
	Key        ID = "key"
	Door       ID = "door"
	HandLeft   ID = "hand_left"
	HandRight  ID = "hand_right"
	TorchLeft  ID = "torch_left"
	TorchRight ID = "torch_right"
)

// BallCount is the number of balls released through the door.
const BallCount = 6

// BallIDs lists the balls in release order.
var BallIDs = func() [BallCount]ID {
	var ids [BallCount]ID
	for i := range ids {
		ids[i] = Ball(i)
	}
	return ids
}()

// Ball returns the id of ball i.
func Ball(i int) ID { return ID(fmt.Sprintf("ball%d", i)) }

// Object is a node of the scene graph. Children are fixed at construction.
type Object struct {
	ID        ID
	Transform Transform
	Visible   bool
	Mesh      *Mesh
	Color     color.RGBA
	Children  []*Object
}

// Walk visits o and its visible descendants with the chain of transforms
// that maps each node's local space into world space. Hidden subtrees are skipped.
func (o *Object) Walk(parent Chain, fn func(o *Object, chain Chain)) {
	if !o.Visible {
		return
	}
	chain := append(parent[:len(parent):len(parent)], o.Transform)
	fn(o, chain)
	for _, c := range o.Children {
		c.Walk(chain, fn)
	}
}

type snapshot struct {
	transform Transform
	visible   bool
}

// Registry owns the fixed set of named scene objects.
// Ids are fixed after Build: objects are only shown, hidden and moved.
type Registry struct {
	objects []*Object
	byID    map[ID]*Object
	initial map[ID]snapshot
}

// Get returns the object with the given id, or nil.
func (r *Registry) Get(id ID) *Object { return r.byID[id] }

// MustGet returns the object with the given id and panics if it is unknown.
func (r *Registry) MustGet(id ID) *Object {
	o := r.byID[id]
	if o == nil {
		panic(fmt.Sprintf("scene: unknown object %q", id))
	}
	return o
}

// Objects returns the top-level objects in construction order.
func (r *Registry) Objects() []*Object { return r.objects }

func (r *Registry) IDs() []ID {
	ids := make([]ID, len(r.objects))
	for i, o := range r.objects {
		ids[i] = o.ID
	}
	return ids
}

// Reset restores every object's transform and visibility to its initial value.
func (r *Registry) Reset() {
	for _, o := range r.objects {
		s := r.initial[o.ID]
		o.Transform = s.transform
		o.Visible = s.visible
	}
}

// Initial returns the transform and visibility an object is reset to.
func (r *Registry) Initial(id ID) (Transform, bool) {
	s, ok := r.initial[id]
	return s.transform, s.visible && ok
}

// Walk visits every visible node in the graph.
func (r *Registry) Walk(fn func(o *Object, chain Chain)) {
	for _, o := range r.objects {
		o.Walk(nil, fn)
	}
}
