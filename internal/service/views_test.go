package service

import (
	"bitwise74/catalog-api/internal/model"
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordView(t *testing.T) {
	f := newFixture(t)
	v := f.video(1, model.Video{UploaderID: f.user(1), Views: 7})

	res := f.catalog.RecordView(context.Background(), v.ID)
	assert.Equal(t, ViewResult{Success: true, Message: "View count incremented."}, res)

	var got model.Video
	require.NoError(t, f.db.First(&got, "id = ?", v.ID).Error)
	assert.Equal(t, int64(8), got.Views)
}

func TestRecordViewConcurrent(t *testing.T) {
	f := newFixture(t)
	v := f.video(1, model.Video{UploaderID: f.user(1)})

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.catalog.RecordView(context.Background(), v.ID)
		}()
	}
	wg.Wait()

	var got model.Video
	require.NoError(t, f.db.First(&got, "id = ?", v.ID).Error)
	assert.Equal(t, int64(20), got.Views)
}

func TestRecordViewNeverFails(t *testing.T) {
	f := newFixture(t)

	res := f.catalog.RecordView(context.Background(), "nope")
	assert.False(t, res.Success)
	assert.Equal(t, "Invalid video ID format.", res.Message)

	res = f.catalog.RecordView(context.Background(), videoID(404))
	assert.False(t, res.Success)
	assert.Equal(t, "Video not found.", res.Message)

	sqlDB, err := f.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	res = f.catalog.RecordView(context.Background(), videoID(1))
	assert.False(t, res.Success)
	assert.Equal(t, "Could not increment view count.", res.Message)
}
