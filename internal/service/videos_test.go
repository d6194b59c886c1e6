package service

import (
	"bitwise74/catalog-api/internal/model"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestPublish(t *testing.T) {
	f := newFixture(t)
	owner := f.user(1)
	ctx := context.Background()

	r, err := f.catalog.Publish(ctx, owner, PublishParams{
		FileID:      "uploads/first.mp4",
		Title:       "  First upload ",
		Description: "hello",
		Tags:        []string{" intro ", "", "vlog"},
	})
	require.NoError(t, err)
	assert.Equal(t, "First upload", r.Title)
	assert.Equal(t, model.DefaultCategory, r.Category)
	assert.Equal(t, model.StringSlice{"intro", "vlog"}, r.Tags)
	assert.Equal(t, owner, r.Uploader.ID)
	assert.Equal(t, "user1", r.Uploader.Username)
	assert.NotZero(t, r.CreatedAt)

	// Searchable right away
	hits, err := f.catalog.Search(ctx, SearchParams{Query: "vlog"}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{r.ID}, recordIDs(hits))

	_, err = f.catalog.Publish(ctx, owner, PublishParams{FileID: "uploads/first.mp4", Title: "Again", Description: "dup"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestPublishRejects(t *testing.T) {
	f := newFixture(t)
	owner := f.user(1)

	valid := PublishParams{FileID: "k", Title: "t", Description: "d"}

	_, err := f.catalog.Publish(context.Background(), "", valid)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	tests := map[string]PublishParams{
		"no title":         {FileID: "k", Description: "d"},
		"no description":   {FileID: "k", Title: "t"},
		"no file":          {Title: "t", Description: "d"},
		"unknown category": {FileID: "k", Title: "t", Description: "d", Category: "Cooking"},
		"comma in tag":     {FileID: "k", Title: "t", Description: "d", Tags: []string{"a,b"}},
		"bad thumbnail":    {FileID: "k", Title: "t", Description: "d", ThumbnailURL: "javascript:alert(1)"},
	}

	for name, p := range tests {
		_, err := f.catalog.Publish(context.Background(), owner, p)
		assert.ErrorIs(t, err, ErrInvalid, name)
	}

	assert.Zero(t, f.count(&model.Video{}, "1 = 1"))
}

func TestEdit(t *testing.T) {
	f := newFixture(t)
	owner, other := f.user(1), f.user(2)
	v := f.video(1, model.Video{UploaderID: owner, Title: "Old title", Description: "old"})
	ctx := context.Background()

	r, err := f.catalog.Edit(ctx, v.ID, owner, EditParams{Title: ptr("  Submarines  ")})
	require.NoError(t, err)
	assert.Equal(t, "Submarines", r.Title)
	assert.Equal(t, "old", r.Description, "absent field keeps its value")

	r, err = f.catalog.Edit(ctx, v.ID, owner, EditParams{Title: ptr(""), Description: ptr("new")})
	require.NoError(t, err)
	assert.Equal(t, "Submarines", r.Title, "blank field keeps its value")
	assert.Equal(t, "new", r.Description)

	// Index follows the edit
	hits, err := f.catalog.Search(ctx, SearchParams{Query: "submarines"}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{v.ID}, recordIDs(hits))

	_, err = f.catalog.Edit(ctx, v.ID, other, EditParams{Title: ptr("Mine now")})
	require.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, "User not authorized to edit this video", err.Error())

	_, err = f.catalog.Edit(ctx, v.ID, "", EditParams{Title: ptr("x")})
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = f.catalog.Edit(ctx, videoID(404), owner, EditParams{Title: ptr("x")})
	assert.ErrorIs(t, err, ErrNotFound)

	var got model.Video
	require.NoError(t, f.db.First(&got, "id = ?", v.ID).Error)
	assert.Equal(t, "Submarines", got.Title)
}

func TestDeleteCascades(t *testing.T) {
	f := newFixture(t)
	owner, viewer := f.user(1), f.user(2)
	ctx := context.Background()

	x := f.video(1, model.Video{UploaderID: owner, Title: "Doomed golang"})
	keep := f.video(2, model.Video{UploaderID: owner, Title: "Survivor golang"})
	f.like(x.ID, viewer)
	f.comments(x.ID, 3)
	f.comments(keep.ID, 1)

	require.NoError(t, f.catalog.Delete(ctx, x.ID, owner))

	assert.Equal(t, []string{x.FileID}, f.media.deleted)
	assert.Zero(t, f.count(&model.Comment{}, "video_id = ?", x.ID))
	assert.Equal(t, int64(1), f.count(&model.Comment{}, "video_id = ?", keep.ID))
	assert.Zero(t, f.count(&model.VideoLike{}, "video_id = ?", x.ID))

	_, err := f.catalog.Get(ctx, x.ID, "")
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := f.catalog.List(ctx, ListParams{}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{keep.ID}, recordIDs(list.Videos))

	hits, err := f.catalog.Search(ctx, SearchParams{Query: "golang"}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{keep.ID}, recordIDs(hits))

	sugg, err := f.catalog.Suggestions(ctx, SuggestParams{}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{keep.ID}, recordIDs(sugg.Videos))
}

func TestDeleteAbsorbsMediaFailure(t *testing.T) {
	f := newFixture(t)
	owner := f.user(1)
	v := f.video(1, model.Video{UploaderID: owner})

	f.media.err = errors.New("storage unreachable")

	require.NoError(t, f.catalog.Delete(context.Background(), v.ID, owner))
	assert.Zero(t, f.count(&model.Video{}, "id = ?", v.ID))
}

func TestDeleteRejects(t *testing.T) {
	f := newFixture(t)
	owner, other := f.user(1), f.user(2)
	v := f.video(1, model.Video{UploaderID: owner})
	f.comments(v.ID, 2)

	err := f.catalog.Delete(context.Background(), v.ID, other)
	require.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, "User not authorized to delete this video", err.Error())

	assert.ErrorIs(t, f.catalog.Delete(context.Background(), v.ID, ""), ErrUnauthenticated)
	assert.ErrorIs(t, f.catalog.Delete(context.Background(), "../etc", owner), ErrInvalid)
	assert.ErrorIs(t, f.catalog.Delete(context.Background(), videoID(404), owner), ErrNotFound)

	// Nothing was touched
	assert.Equal(t, int64(1), f.count(&model.Video{}, "id = ?", v.ID))
	assert.Equal(t, int64(2), f.count(&model.Comment{}, "video_id = ?", v.ID))
	assert.Empty(t, f.media.deleted)
}
