package service

import (
	"bitwise74/catalog-api/pkg/util"
	"context"
)

type SuggestParams struct {
	ExcludeID string
	Page      string
	Limit     string
}

type SuggestResult struct {
	ListResult
	HasMore bool `json:"hasMore"`
}

// Suggestions returns a page of the newest videos, leaving out ExcludeID
// when it is a well formed ID. Malformed IDs are ignored.
func (c *Catalog) Suggestions(ctx context.Context, p SuggestParams, viewerID string) (*SuggestResult, error) {
	page, err := ParsePage(p.Page, p.Limit, DefaultSuggestionLimit, c.maxLimit)
	if err != nil {
		return nil, err
	}

	var f Filter
	if util.IsID(p.ExcludeID) {
		f.ExcludeID = p.ExcludeID
	}

	res, err := c.paginate(ctx, Spec{Filter: f, Sort: SortDate, Page: &page})
	if err != nil {
		return nil, err
	}

	resolveLiked(res.Videos, viewerID)

	return &SuggestResult{
		ListResult: *res,
		HasMore:    res.CurrentPage < res.TotalPages,
	}, nil
}
