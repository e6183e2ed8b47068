package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
)

// Category is one job category from categories.json.
type Category struct {
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	Emoji string `json:"emoji,omitempty"`
}

type CategoriesFile struct {
	Categories []Category `json:"categories"`
}

// Registry holds the job category catalog, loaded once at boot.
type Registry struct {
	mu         sync.RWMutex
	categories map[string]*Category
	order      []string
}

func NewRegistry() *Registry {
	return &Registry{
		categories: make(map[string]*Category),
	}
}

func LoadFromFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read categories file: %w", err)
	}

	var file CategoriesFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse categories file: %w", err)
	}

	registry := NewRegistry()
	for i := range file.Categories {
		registry.Register(&file.Categories[i])
	}
	return registry, nil
}

func (r *Registry) Register(cat *Category) {
	r.mu.Lock()
	defer r.mu.Unlock()
	slug := strings.ToLower(cat.Slug)
	if _, ok := r.categories[slug]; !ok {
		r.order = append(r.order, slug)
	}
	r.categories[slug] = cat
}

func (r *Registry) Get(slug string) *Category {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.categories[strings.ToLower(slug)]
}

func (r *Registry) Exists(slug string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.categories[strings.ToLower(slug)]
	return ok
}

// All returns the categories in file order.
func (r *Registry) All() []*Category {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*Category, 0, len(r.order))
	for _, slug := range r.order {
		result = append(result, r.categories[slug])
	}
	return result
}
