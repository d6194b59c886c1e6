package service

import (
	"strconv"
	"strings"
)

type SortKey string

const (
	SortDate      SortKey = "date_desc"
	SortViews     SortKey = "views_desc"
	SortLikes     SortKey = "likes_desc"
	SortComments  SortKey = "comments_desc"
	SortRelevance SortKey = "relevance"
)

// CategoryAll disables the category filter
const CategoryAll = "All"

const (
	DefaultListLimit       = 12
	DefaultSuggestionLimit = 10
)

// ParseSort maps a sort token to its key. Unknown or absent tokens sort by date.
func ParseSort(token string) SortKey {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(token))); k {
	case SortDate, SortViews, SortLikes, SortComments, SortRelevance:
		return k
	default:
		return SortDate
	}
}

// orderColumn is the primary ORDER BY expression of the catalog query.
// Relevance has no column, the ranker orders by score itself.
func (s SortKey) orderColumn() string {
	switch s {
	case SortViews:
		return "v.views DESC"
	case SortLikes:
		return "likes_count DESC"
	case SortComments:
		return "comment_count DESC"
	default:
		return "v.created_at DESC"
	}
}

// ParseCategory returns the category to filter by, empty meaning any
func ParseCategory(s string) string {
	s = strings.TrimSpace(s)
	if s == CategoryAll {
		return ""
	}

	return s
}

// Filter restricts the set of videos a query runs over. The same filter is
// used for the page fetch and for the count behind totalPages.
type Filter struct {
	IDs        []string // nil means unrestricted, empty means nothing matches
	Category   string
	UploaderID string
	ExcludeID  string
	TitleLike  string // case-insensitive substring of the title
}

type Page struct {
	Number int
	Limit  int
}

func (p Page) Skip() int {
	return (p.Number - 1) * p.Limit
}

// TotalPages returns ceil(total / limit)
func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}

	return int((total + int64(limit) - 1) / int64(limit))
}

// ParsePage reads 1-based page and limit values. Absent values use the
// defaults, values that aren't numbers are rejected and numbers out of
// range are clamped to [1, maxLimit].
func ParsePage(pageStr, limitStr string, defLimit, maxLimit int) (Page, error) {
	p := Page{Number: 1, Limit: defLimit}

	if s := strings.TrimSpace(pageStr); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return Page{}, invalid("Page must be a number")
		}
		p.Number = max(n, 1)
	}

	if s := strings.TrimSpace(limitStr); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return Page{}, invalid("Limit must be a number")
		}
		p.Limit = n
	}

	p.Limit = min(max(p.Limit, 1), maxLimit)
	return p, nil
}

// Spec is a composed catalog query
type Spec struct {
	Filter Filter
	Sort   SortKey
	Page   *Page // nil returns every matching record
}

// ListParams are the raw list request parameters
type ListParams struct {
	Sort     string
	Page     string
	Limit    string
	Category string
}

// Compose turns list request parameters into a Spec
func (c *Catalog) Compose(p ListParams) (Spec, error) {
	page, err := ParsePage(p.Page, p.Limit, DefaultListLimit, c.maxLimit)
	if err != nil {
		return Spec{}, err
	}

	return Spec{
		Filter: Filter{Category: ParseCategory(p.Category)},
		Sort:   ParseSort(p.Sort),
		Page:   &page,
	}, nil
}
