// Package search holds the full-text index used to rank videos against a
// free-text query. The database stays the source of truth, the index only
// maps a query to matching video IDs and their relevance scores.
package search

import (
	"bitwise74/catalog-api/internal/model"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
)

const docType = "video"

// Fields scored by a text query
var textFields = []string{"title", "description", "category", "tags"}

// Hit is one matching video with its relevance score
type Hit struct {
	ID    string
	Score float64
}

type Index struct {
	b bleve.Index
}

// Open opens the index stored at path, creating it when missing. An empty
// path keeps the index in memory only.
func Open(path string) (*Index, error) {
	if path == "" {
		b, err := bleve.NewMemOnly(newMapping())
		if err != nil {
			return nil, fmt.Errorf("failed to create in-memory index, %w", err)
		}

		return &Index{b: b}, nil
	}

	b, err := bleve.Open(path)
	if err == nil {
		return &Index{b: b}, nil
	}

	if !errors.Is(err, bleve.ErrorIndexPathDoesNotExist) {
		return nil, fmt.Errorf("failed to open index, %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create index directory, %w", err)
	}

	b, err = bleve.New(path, newMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create new index, %w", err)
	}

	return &Index{b: b}, nil
}

func newMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	videoMapping := bleve.NewDocumentMapping()

	for _, name := range textFields {
		f := bleve.NewTextFieldMapping()
		f.Store = false
		f.Index = true
		f.Analyzer = standard.Name
		videoMapping.AddFieldMappingsAt(name, f)
	}

	indexMapping.AddDocumentMapping(docType, videoMapping)
	indexMapping.DefaultType = docType

	return indexMapping
}

func document(v *model.Video) map[string]any {
	tags := make([]string, len(v.Tags))
	copy(tags, v.Tags)

	return map[string]any{
		"title":       v.Title,
		"description": v.Description,
		"category":    v.Category,
		"tags":        tags,
	}
}

// Index adds or replaces the document of a video
func (i *Index) Index(v *model.Video) error {
	if err := i.b.Index(v.ID, document(v)); err != nil {
		return fmt.Errorf("failed to index video %s, %w", v.ID, err)
	}

	return nil
}

// Delete removes a video from the index. Deleting an unknown ID is not an error.
func (i *Index) Delete(id string) error {
	if err := i.b.Delete(id); err != nil {
		return fmt.Errorf("failed to delete video %s from index, %w", id, err)
	}

	return nil
}

// Rebuild indexes every given video in one batch and drops documents whose
// video no longer exists.
func (i *Index) Rebuild(videos []model.Video) error {
	keep := make(map[string]struct{}, len(videos))
	batch := i.b.NewBatch()

	for n := range videos {
		keep[videos[n].ID] = struct{}{}
		if err := batch.Index(videos[n].ID, document(&videos[n])); err != nil {
			return fmt.Errorf("failed to batch video %s, %w", videos[n].ID, err)
		}
	}

	count, err := i.b.DocCount()
	if err != nil {
		return fmt.Errorf("failed to count indexed documents, %w", err)
	}

	if count > 0 {
		req := bleve.NewSearchRequestOptions(bleve.NewMatchAllQuery(), int(count), 0, false)
		res, err := i.b.Search(req)
		if err != nil {
			return fmt.Errorf("failed to list indexed documents, %w", err)
		}

		for _, hit := range res.Hits {
			if _, ok := keep[hit.ID]; !ok {
				batch.Delete(hit.ID)
			}
		}
	}

	if err := i.b.Batch(batch); err != nil {
		return fmt.Errorf("failed to apply index batch, %w", err)
	}

	return nil
}

func textQuery(q string) query.Query {
	queries := make([]query.Query, 0, len(textFields))
	for _, name := range textFields {
		m := bleve.NewMatchQuery(q)
		m.SetField(name)
		queries = append(queries, m)
	}

	return bleve.NewDisjunctionQuery(queries...)
}

func (i *Index) search(q query.Query, size int) ([]Hit, error) {
	res, err := i.b.Search(bleve.NewSearchRequestOptions(q, size, 0, false))
	if err != nil {
		return nil, fmt.Errorf("failed to search index, %w", err)
	}

	hits := make([]Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		hits = append(hits, Hit{ID: h.ID, Score: h.Score})
	}

	return hits, nil
}

// Search returns at most max videos matching q across title, description,
// category and tags, best match first.
func (i *Index) Search(q string, max int) ([]Hit, error) {
	return i.search(textQuery(q), max)
}

// SearchAll returns every video matching q, best match first
func (i *Index) SearchAll(q string) ([]Hit, error) {
	tq := textQuery(q)

	res, err := i.b.Search(bleve.NewSearchRequestOptions(tq, 0, 0, false))
	if err != nil {
		return nil, fmt.Errorf("failed to count index matches, %w", err)
	}

	if res.Total == 0 {
		return []Hit{}, nil
	}

	return i.search(tq, int(res.Total))
}

// DocCount returns the number of indexed videos
func (i *Index) DocCount() (uint64, error) {
	return i.b.DocCount()
}

func (i *Index) Close() error {
	return i.b.Close()
}
