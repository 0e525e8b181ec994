package members

import (
	"reflect"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultCacheSize = 4096

// Cache memoizes member lists per concrete type so repeated introspection of
// the same types costs one lookup. Entries are only ever added and a type's
// entry is idempotent to recompute, so concurrent traversals may share one
// cache without coordination beyond what the backing store provides.
type Cache struct {
	provider Provider
	types    *lru.Cache[reflect.Type, []Descriptor]
}

func NewCache(provider Provider) *Cache {
	types, err := lru.New[reflect.Type, []Descriptor](defaultCacheSize)
	if err != nil {
		panic(err) //size is a positive constant
	}
	return &Cache{provider: provider, types: types}
}

// Of returns the cached member descriptors of t, computing them on first use.
func (c *Cache) Of(t reflect.Type) []Descriptor {
	if t == nil {
		return nil
	}
	if cached, hit := c.types.Get(t); hit {
		return cached
	}
	described := c.provider.Describe(t)
	c.types.Add(t, described)
	return described
}

// Read delegates to the cache's provider.
func (c *Cache) Read(instance reflect.Value, member Descriptor) (reflect.Value, error) {
	return c.provider.Read(instance, member)
}
