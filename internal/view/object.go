package view

import (
	"fmt"
	"sync"

	"github.com/danmuck/forgesync/internal/protocol/schema"
)

// Object is a tracked object: property values keyed by name plus the set
// of properties changed since the last encode.
type Object struct {
	mu      sync.RWMutex
	kind    schema.ObjectKind
	id      int
	values  map[string]any
	changed map[string]struct{}
}

func (o *Object) init(kind schema.ObjectKind, id int) {
	o.kind = kind
	o.id = id
	o.values = make(map[string]any)
	o.changed = make(map[string]struct{})
}

func (o *Object) ObjectKind() schema.ObjectKind { return o.kind }
func (o *Object) ID() int                       { return o.id }

func (o *Object) String() string {
	return fmt.Sprintf("%s#%d", o.kind, o.id)
}

func (o *Object) mustOwn(p Property) {
	if p.Object() != o.kind {
		panic(fmt.Sprintf("view: property %s.%s used on %s", p.Object(), p.Name(), o))
	}
}

// Value returns the stored value of p, or p's default when never set.
func (o *Object) Value(p Property) any {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if v, ok := o.values[p.Name()]; ok {
		return v
	}
	return p.Default()
}

// Set stores v and marks p changed when it differs from the stored value.
func (o *Object) Set(p Property, v any) bool {
	o.mustOwn(p)
	o.mu.Lock()
	defer o.mu.Unlock()
	prev, ok := o.values[p.Name()]
	if !ok {
		prev = p.Default()
	}
	o.values[p.Name()] = v
	if p.Equal(prev, v) {
		return false
	}
	o.changed[p.Name()] = struct{}{}
	return true
}

// Put stores v without marking a change. Decoders use it for remote state.
func (o *Object) Put(p Property, v any) {
	o.mustOwn(p)
	o.mu.Lock()
	defer o.mu.Unlock()
	o.values[p.Name()] = v
}

// Touch marks p changed. Needed after mutating an embedded value in place.
func (o *Object) Touch(p Property) {
	o.mustOwn(p)
	o.mu.Lock()
	defer o.mu.Unlock()
	o.changed[p.Name()] = struct{}{}
}

func (o *Object) IsChanged(p Property) bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	_, ok := o.changed[p.Name()]
	return ok
}

// Changed returns the changed properties in declaration order.
func (o *Object) Changed() []Property {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]Property, 0, len(o.changed))
	for _, p := range declared[o.kind] {
		if _, ok := o.changed[p.Name()]; ok {
			out = append(out, p)
		}
	}
	return out
}

func (o *Object) ClearChanged() {
	o.mu.Lock()
	defer o.mu.Unlock()
	clear(o.changed)
}
