package service

import (
	"bitwise74/catalog-api/internal/search"
	"context"
	"sort"
	"strings"
)

type SearchParams struct {
	Query string
	Sort  string // Absent ranks by relevance
}

// Search returns every video matching the free-text query. An empty query
// matches nothing. Relevance sorting orders by index score and exposes the
// score on each record, any other sort key keeps the text match as a filter
// and orders by that key instead.
func (c *Catalog) Search(ctx context.Context, p SearchParams, viewerID string) ([]Record, error) {
	q := strings.TrimSpace(p.Query)
	if q == "" {
		return []Record{}, nil
	}

	key := SortRelevance
	if strings.TrimSpace(p.Sort) != "" {
		key = ParseSort(p.Sort)
	}

	// Relevance keeps the best scored hits. Any other key has to see every
	// match, the cap applies after ordering by that key.
	var (
		hits []search.Hit
		page *Page
		err  error
	)
	if key == SortRelevance {
		hits, err = c.index.Search(q, c.maxResults)
	} else {
		hits, err = c.index.SearchAll(q)
		page = &Page{Number: 1, Limit: c.maxResults}
	}
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(hits))
	scores := make(map[string]float64, len(hits))
	for i, h := range hits {
		ids[i] = h.ID
		scores[h.ID] = h.Score
	}

	records, err := c.builder.Fetch(ctx, Spec{
		Filter: Filter{IDs: ids},
		Sort:   key,
		Page:   page,
	})
	if err != nil {
		return nil, err
	}

	if key == SortRelevance {
		for i := range records {
			s := scores[records[i].ID]
			records[i].Score = &s
		}

		// Fetch already ordered by created_at then id, a stable sort keeps
		// that as the tie-break
		sort.SliceStable(records, func(i, j int) bool {
			return *records[i].Score > *records[j].Score
		})
	}

	resolveLiked(records, viewerID)
	return records, nil
}
