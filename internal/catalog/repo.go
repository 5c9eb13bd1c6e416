package catalog

import (
	"context"
	"errors"
	"sort"

	rec "automation-coach/internal/recommendations"
)

var ErrInvalidTool = errors.New("invalid tool")

// Repo persists the tool catalog.
type Repo interface {
	// ListActive returns active tools ordered by category, then popularity descending.
	ListActive(ctx context.Context) ([]rec.Tool, error)
	CategoryCounts(ctx context.Context) ([]CategoryCount, error)
	Upsert(ctx context.Context, tools []rec.Tool) error
	Count(ctx context.Context) (int, error)
}

// CategoryCount is the number of active tools in a category.
type CategoryCount struct {
	Category rec.Category `json:"category"`
	Count    int          `json:"count"`
}

// SortTools orders tools the way ListActive promises. Name breaks ties so
// every backend returns the same order.
func SortTools(tools []rec.Tool) {
	sort.SliceStable(tools, func(i, j int) bool {
		a, b := tools[i], tools[j]
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		if a.Popularity != b.Popularity {
			return a.Popularity > b.Popularity
		}
		return a.Name < b.Name
	})
}

// CountByCategory groups active tools, largest category first.
func CountByCategory(tools []rec.Tool) []CategoryCount {
	counts := map[rec.Category]int{}
	for _, t := range tools {
		if t.Active {
			counts[t.Category]++
		}
	}
	out := make([]CategoryCount, 0, len(counts))
	for c, n := range counts {
		out = append(out, CategoryCount{Category: c, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	return out
}
