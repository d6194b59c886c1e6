package service

import (
	"bitwise74/catalog-api/db"
	"bitwise74/catalog-api/internal/model"
	"bitwise74/catalog-api/internal/search"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	t       *testing.T
	db      *gorm.DB
	index   *search.Index
	catalog *Catalog
	media   *fakeMedia
}

// fakeMedia records deleted keys and fails every delete when err is set
type fakeMedia struct {
	deleted []string
	err     error
}

func (f *fakeMedia) Delete(_ context.Context, key string) error {
	if f.err != nil {
		return f.err
	}

	f.deleted = append(f.deleted, key)
	return nil
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	path := filepath.Join(t.TempDir(), "catalog.db")
	// The file must exist when running inside a container
	require.NoError(t, os.WriteFile(path, nil, 0600))

	conn, err := db.New("sqlite", path)
	require.NoError(t, err)

	idx, err := search.Open("")
	require.NoError(t, err)

	t.Cleanup(func() {
		idx.Close()
		if sqlDB, err := conn.DB(); err == nil {
			sqlDB.Close()
		}
	})

	media := &fakeMedia{}

	return &fixture{
		t:       t,
		db:      conn,
		index:   idx,
		catalog: New(conn, idx, media, Options{}),
		media:   media,
	}
}

func userID(n int) string  { return fmt.Sprintf("user%012d", n) }
func videoID(n int) string { return fmt.Sprintf("video%011d", n) }

func (f *fixture) user(n int) string {
	f.t.Helper()

	id := userID(n)
	require.NoError(f.t, f.db.Create(&model.User{ID: id, Username: fmt.Sprintf("user%d", n), Avatar: "a.png"}).Error)
	return id
}

// video stores and indexes a video. Zero values get filled in, CreatedAt
// defaults to n so higher numbers are newer.
func (f *fixture) video(n int, v model.Video) *model.Video {
	f.t.Helper()

	v.ID = videoID(n)
	if v.Title == "" {
		v.Title = fmt.Sprintf("Video %d", n)
	}
	if v.Description == "" {
		v.Description = "description"
	}
	if v.FileID == "" {
		v.FileID = fmt.Sprintf("file-%d", n)
	}
	if v.Category == "" {
		v.Category = model.DefaultCategory
	}
	if v.CreatedAt == 0 {
		v.CreatedAt = int64(n)
	}

	require.NoError(f.t, f.db.Create(&v).Error)
	require.NoError(f.t, f.index.Index(&v))
	return &v
}

func (f *fixture) like(videoID string, users ...string) {
	f.t.Helper()

	for _, u := range users {
		require.NoError(f.t, f.db.Create(&model.VideoLike{VideoID: videoID, UserID: u}).Error)
	}
}

func (f *fixture) comments(videoID string, n int) {
	f.t.Helper()

	for i := range n {
		require.NoError(f.t, f.db.Create(&model.Comment{
			ID:       fmt.Sprintf("%s%08d", videoID[8:], i),
			VideoID:  videoID,
			AuthorID: userID(99),
			Body:     "nice",
		}).Error)
	}
}

func (f *fixture) count(m any, where string, args ...any) int64 {
	f.t.Helper()

	var n int64
	require.NoError(f.t, f.db.Model(m).Where(where, args...).Count(&n).Error)
	return n
}

func recordIDs(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}
