package trackable

// Collection is an ordered, duplicate-free set of references of one kind.
// A nil *Collection means the property was never set.
type Collection struct {
	kind  EntityKind
	ids   []int
	index map[int]struct{}
}

func NewCollection(kind EntityKind, ids ...int) *Collection {
	c := &Collection{kind: kind, index: make(map[int]struct{}, len(ids))}
	for _, id := range ids {
		c.Add(id)
	}
	return c
}

func (c *Collection) Kind() EntityKind {
	if c == nil {
		return KindNone
	}
	return c.kind
}

func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.ids)
}

// Add appends id unless it is already present or negative.
func (c *Collection) Add(id int) bool {
	if id < 0 {
		return false
	}
	if c.index == nil {
		c.index = make(map[int]struct{})
	}
	if _, ok := c.index[id]; ok {
		return false
	}
	c.index[id] = struct{}{}
	c.ids = append(c.ids, id)
	return true
}

func (c *Collection) Remove(id int) bool {
	if c == nil {
		return false
	}
	if _, ok := c.index[id]; !ok {
		return false
	}
	delete(c.index, id)
	for i, v := range c.ids {
		if v == id {
			c.ids = append(c.ids[:i], c.ids[i+1:]...)
			break
		}
	}
	return true
}

func (c *Collection) Contains(id int) bool {
	if c == nil {
		return false
	}
	_, ok := c.index[id]
	return ok
}

// IDs returns a copy of the ids in insertion order.
func (c *Collection) IDs() []int {
	if c == nil {
		return nil
	}
	return append([]int(nil), c.ids...)
}

func (c *Collection) Refs() []Ref {
	if c == nil {
		return nil
	}
	refs := make([]Ref, len(c.ids))
	for i, id := range c.ids {
		refs[i] = Ref{Kind: c.kind, ID: id}
	}
	return refs
}

// Equal reports whether both collections hold the same ids in the same order.
// A nil collection only equals another nil collection.
func (c *Collection) Equal(other *Collection) bool {
	if c == nil || other == nil {
		return c == nil && other == nil
	}
	if c.kind != other.kind || len(c.ids) != len(other.ids) {
		return false
	}
	for i := range c.ids {
		if c.ids[i] != other.ids[i] {
			return false
		}
	}
	return true
}

func (c *Collection) reset(ids []int) {
	c.ids = c.ids[:0]
	clear(c.index)
	for _, id := range ids {
		c.Add(id)
	}
}

// MergeCollection reconciles decoded ids with prev. When prev is non-nil it
// is updated in place and returned so holders keep the same instance.
func MergeCollection(kind EntityKind, prev *Collection, ids []int) *Collection {
	if prev == nil || prev.kind != kind {
		return NewCollection(kind, ids...)
	}
	prev.reset(ids)
	return prev
}

var (
	CardViewCollectionType   Type[*Collection] = collectionType{kind: KindCard}
	PlayerViewCollectionType Type[*Collection] = collectionType{kind: KindPlayer}
)

type collectionType struct {
	kind EntityKind
}

func (t collectionType) Default() *Collection { return nil }

func (t collectionType) Serialize(s Serializer, v *Collection) error {
	if v != nil && v.kind != t.kind {
		return ErrKindMismatch
	}
	return s.WriteCollection(v)
}

func (t collectionType) Deserialize(d Deserializer, prev *Collection) (*Collection, error) {
	return d.ReadCollection(t.kind, prev)
}
