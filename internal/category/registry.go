package category

import (
	"errors"
	"fmt"
	"newstagger/internal/model"
)

var ErrUnknownCategory = errors.New("unknown category")

var defaultCategories = []model.Category{
	{ID: "politics", DisplayName: "政治", FeedQuery: "POLITICS"},
	{ID: "economy", DisplayName: "経済", FeedQuery: "BUSINESS"},
	{ID: "it-science", DisplayName: "IT・科学", FeedQuery: "SCIENCE"},
	{ID: "international", DisplayName: "国際", FeedQuery: "WORLD"},
	{ID: "technology", DisplayName: "テクノロジー", FeedQuery: "TECHNOLOGY"},
}

// Registry maps category ids to their feed queries. It is never mutated after
// NewRegistry returns, so it can be shared across goroutines.
type Registry struct {
	ordered []model.Category
	byID    map[string]model.Category
}

func NewRegistry() *Registry {
	r := &Registry{
		ordered: make([]model.Category, len(defaultCategories)),
		byID:    make(map[string]model.Category, len(defaultCategories)),
	}

	copy(r.ordered, defaultCategories)
	for _, c := range r.ordered {
		r.byID[c.ID] = c
	}

	return r
}

func (r *Registry) Resolve(id string) (model.Category, error) {
	c, ok := r.byID[id]
	if !ok {
		return model.Category{}, fmt.Errorf("%w: %q", ErrUnknownCategory, id)
	}
	return c, nil
}

// All returns the categories in display order.
func (r *Registry) All() []model.Category {
	out := make([]model.Category, len(r.ordered))
	copy(out, r.ordered)
	return out
}
