package service

import (
	"bitwise74/catalog-api/internal/search"
	"bitwise74/catalog-api/pkg/util"
	"context"

	"github.com/sourcegraph/conc/pool"
	"gorm.io/gorm"
)

// Catalog serves the video read models and the engagement mutations. It
// keeps no mutable state of its own, the database is the only shared
// resource.
type Catalog struct {
	db       *gorm.DB
	builder  *Builder
	index    *search.Index
	media    MediaStore
	notifier Notifier

	maxLimit   int
	maxResults int
}

type Options struct {
	MaxLimit   int // Largest page size a caller may ask for
	MaxResults int // Largest number of search results
}

func New(db *gorm.DB, idx *search.Index, media MediaStore, opts Options) *Catalog {
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = 50
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = 100
	}
	if media == nil {
		media = NopMedia{}
	}

	return &Catalog{
		db:         db,
		builder:    NewBuilder(db),
		index:      idx,
		media:      media,
		notifier:   NewDBNotifier(db),
		maxLimit:   opts.MaxLimit,
		maxResults: opts.MaxResults,
	}
}

// WithNotifier replaces the notification sink
func (c *Catalog) WithNotifier(n Notifier) *Catalog {
	c.notifier = n
	return c
}

type ListResult struct {
	Videos      []Record `json:"videos"`
	CurrentPage int      `json:"currentPage"`
	TotalPages  int      `json:"totalPages"`
}

// paginate runs the page fetch and the count over the same filter
func (c *Catalog) paginate(ctx context.Context, s Spec) (*ListResult, error) {
	var (
		total   int64
		records []Record
	)

	p := pool.New().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		var err error
		total, err = c.builder.Count(ctx, s.Filter)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		records, err = c.builder.Fetch(ctx, s)
		return err
	})

	if err := p.Wait(); err != nil {
		return nil, err
	}

	return &ListResult{
		Videos:      records,
		CurrentPage: s.Page.Number,
		TotalPages:  TotalPages(total, s.Page.Limit),
	}, nil
}

// List returns one page of the catalog
func (c *Catalog) List(ctx context.Context, p ListParams, viewerID string) (*ListResult, error) {
	spec, err := c.Compose(p)
	if err != nil {
		return nil, err
	}

	res, err := c.paginate(ctx, spec)
	if err != nil {
		return nil, err
	}

	resolveLiked(res.Videos, viewerID)
	return res, nil
}

// Get returns a single enriched video with isLiked resolved for the viewer
func (c *Catalog) Get(ctx context.Context, id, viewerID string) (*Record, error) {
	if !util.IsID(id) {
		return nil, invalid("Invalid video ID format.")
	}

	records, err := c.builder.Fetch(ctx, Spec{
		Filter: Filter{IDs: []string{id}},
		Sort:   SortDate,
	})
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, notFound("Video not found")
	}

	resolveLiked(records, viewerID)
	return &records[0], nil
}
