package mock

import "github.com/fwojciec/docpeek"

var _ docpeek.Cache = (*Cache)(nil)

// Cache is a mock implementation of docpeek.Cache.
type Cache struct {
	GetFn func(key string) (string, bool)
	SetFn func(key string, text string)
}

func (c *Cache) Get(key string) (string, bool) {
	return c.GetFn(key)
}

func (c *Cache) Set(key string, text string) {
	c.SetFn(key, text)
}
