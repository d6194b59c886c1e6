package service

import (
	"bitwise74/catalog-api/internal/model"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleLikeScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := f.user(1)
	u1, u2, u3 := f.user(2), f.user(3), f.user(4)

	a := f.video(1, model.Video{UploaderID: owner})
	f.like(a.ID, u1, u2)
	f.comments(a.ID, 3)

	r, err := f.catalog.Get(ctx, a.ID, "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), r.LikesCount)
	assert.Equal(t, int64(3), r.CommentCount)

	res, err := f.catalog.ToggleLike(ctx, a.ID, u3)
	require.NoError(t, err)
	assert.Equal(t, LikeResult{Likes: 3, IsLiked: true}, *res)

	var notes []model.Notification
	require.NoError(t, f.db.Find(&notes).Error)
	require.Len(t, notes, 1)
	assert.Equal(t, owner, notes[0].RecipientID)
	assert.Equal(t, u3, notes[0].SenderID)
	assert.Equal(t, model.NotificationLike, notes[0].Type)
	assert.Equal(t, a.ID, notes[0].VideoID)
	assert.NotEmpty(t, notes[0].ID)

	res, err = f.catalog.ToggleLike(ctx, a.ID, u3)
	require.NoError(t, err)
	assert.Equal(t, LikeResult{Likes: 2, IsLiked: false}, *res)
	assert.Equal(t, int64(1), f.count(&model.Notification{}, "1 = 1"))

	// The read side agrees with the toggle
	r, err = f.catalog.Get(ctx, a.ID, u3)
	require.NoError(t, err)
	assert.Equal(t, int64(2), r.LikesCount)
	assert.False(t, r.IsLiked)
}

func TestToggleLikeTwiceRestoresState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner, viewer := f.user(1), f.user(2)
	v := f.video(1, model.Video{UploaderID: owner})

	before, err := f.catalog.Get(ctx, v.ID, viewer)
	require.NoError(t, err)

	_, err = f.catalog.ToggleLike(ctx, v.ID, viewer)
	require.NoError(t, err)
	_, err = f.catalog.ToggleLike(ctx, v.ID, viewer)
	require.NoError(t, err)

	after, err := f.catalog.Get(ctx, v.ID, viewer)
	require.NoError(t, err)
	assert.Equal(t, before.LikesCount, after.LikesCount)
	assert.Equal(t, before.IsLiked, after.IsLiked)
}

func TestToggleLikeOwnVideoNotifiesNobody(t *testing.T) {
	f := newFixture(t)
	owner := f.user(1)
	v := f.video(1, model.Video{UploaderID: owner})

	res, err := f.catalog.ToggleLike(context.Background(), v.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, LikeResult{Likes: 1, IsLiked: true}, *res)
	assert.Zero(t, f.count(&model.Notification{}, "1 = 1"))
}

type failingNotifier struct{ calls int }

func (n *failingNotifier) Notify(context.Context, *model.Notification) error {
	n.calls++
	return errors.New("notifications offline")
}

func TestToggleLikeSurvivesNotificationFailure(t *testing.T) {
	f := newFixture(t)
	owner, viewer := f.user(1), f.user(2)
	v := f.video(1, model.Video{UploaderID: owner})

	n := &failingNotifier{}
	f.catalog.WithNotifier(n)

	res, err := f.catalog.ToggleLike(context.Background(), v.ID, viewer)
	require.NoError(t, err)
	assert.True(t, res.IsLiked)
	assert.Equal(t, 1, n.calls)
}

func TestToggleLikeRejects(t *testing.T) {
	f := newFixture(t)
	owner := f.user(1)
	v := f.video(1, model.Video{UploaderID: owner})

	_, err := f.catalog.ToggleLike(context.Background(), v.ID, "")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = f.catalog.ToggleLike(context.Background(), v.ID, "evil,user")
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = f.catalog.ToggleLike(context.Background(), "bad id", owner)
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = f.catalog.ToggleLike(context.Background(), videoID(404), owner)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Zero(t, f.count(&model.VideoLike{}, "1 = 1"))
}

func TestToggleLikeConcurrentUsers(t *testing.T) {
	f := newFixture(t)
	owner := f.user(1)
	v := f.video(1, model.Video{UploaderID: owner})

	const n = 10

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = f.catalog.ToggleLike(context.Background(), v.ID, userID(100+i))
		}()
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	assert.Equal(t, int64(n), f.count(&model.VideoLike{}, "video_id = ?", v.ID))
	assert.Equal(t, int64(n), f.count(&model.Notification{}, "video_id = ?", v.ID))
}

func TestToggleLikeConcurrentSameUser(t *testing.T) {
	f := newFixture(t)
	owner, viewer := f.user(1), f.user(2)
	v := f.video(1, model.Video{UploaderID: owner})

	const n = 8

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		added int
	)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()

			res, err := f.catalog.ToggleLike(context.Background(), v.ID, viewer)
			if !assert.NoError(t, err) {
				return
			}

			if res.IsLiked {
				mu.Lock()
				added++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	// Every call flipped the state once, so an even number of calls ends
	// where it started and every add notified exactly once
	assert.Zero(t, f.count(&model.VideoLike{}, "video_id = ?", v.ID))
	assert.Equal(t, n/2, added)
	assert.Equal(t, int64(added), f.count(&model.Notification{}, "video_id = ?", v.ID))
}
