package model

import "sync"

// Cache keeps one loaded classifier for the whole process. A failed load
// is not remembered, so the next call tries the file again.
type Cache struct {
	path string
	load func(string) (*LogisticRegression, error)

	mu    sync.Mutex
	model *LogisticRegression
}

// NewCache loads from path and rejects artifacts not fitted on features.
func NewCache(path string, features []string) *Cache {
	return &Cache{path: path, load: func(p string) (*LogisticRegression, error) {
		return Load(p, features)
	}}
}

func (c *Cache) Path() string {
	return c.path
}

// Get returns the cached classifier, loading it on first use.
func (c *Cache) Get() (Classifier, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.model != nil {
		return c.model, nil
	}
	m, err := c.load(c.path)
	if err != nil {
		return nil, err
	}
	c.model = m
	return m, nil
}

// Reload re-reads the artifact. The previous model stays in place if the
// new one cannot be loaded.
func (c *Cache) Reload() error {
	m, err := c.load(c.path)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.model = m
	c.mu.Unlock()
	return nil
}
