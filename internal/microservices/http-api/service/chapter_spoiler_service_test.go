package service

import (
	"context"
	"testing"

	"mangafandb/internal/microservices/http-api/dto"
	"mangafandb/internal/microservices/http-api/models"
	"mangafandb/internal/microservices/http-api/repository"
	"mangafandb/internal/spoiler"
	"mangafandb/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChapterSpoilerService_CheckViewable(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewChapterSpoilerService(repository.NewChapterSpoilerRepo(db))
	ctx := context.Background()

	early := &models.ChapterSpoiler{ChapterNumber: 3, MinimumChapter: 3, Content: "early"}
	late := &models.ChapterSpoiler{ChapterNumber: 40, MinimumChapter: 45, Content: "late"}
	require.NoError(t, svc.Create(ctx, early, Anonymous))
	require.NoError(t, svc.Create(ctx, late, Anonymous))

	results, err := svc.CheckViewable(ctx, []int64{late.ID, 999, early.ID}, 10)
	require.NoError(t, err)
	assert.Equal(t, []dto.ViewableResult{
		{ID: late.ID, CanView: false, MinimumChapter: 45, Found: true},
		{ID: 999},
		{ID: early.ID, CanView: true, MinimumChapter: 3, Found: true},
	}, results)

	results, err = svc.CheckViewable(ctx, []int64{late.ID}, 45)
	require.NoError(t, err)
	assert.True(t, results[0].CanView, "reaching the minimum chapter unlocks it")
}

func TestChapterSpoilerService_CreateUnverified(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "fan", models.RoleUser)
	svc := NewChapterSpoilerService(repository.NewChapterSpoilerRepo(db))
	ctx := context.Background()

	cs := &models.ChapterSpoiler{ChapterNumber: 5, MinimumChapter: 5, Content: "x", IsVerified: true}
	require.NoError(t, svc.Create(ctx, cs, Reader{UserID: user.ID}))
	assert.False(t, cs.IsVerified)
	require.NotNil(t, cs.AuthorID)
	assert.Equal(t, models.SpoilerMinor, cs.Level)

	require.NoError(t, svc.Verify(ctx, cs.ID, true))
	got, err := svc.Get(ctx, cs.ID, Reader{Viewer: spoiler.Viewer{Progress: 5}})
	require.NoError(t, err)
	assert.True(t, got.IsVerified)
	assert.True(t, got.CanView)

	got, err = svc.Get(ctx, cs.ID, Anonymous)
	require.NoError(t, err)
	assert.False(t, got.CanView)
	assert.Empty(t, got.Content)

	assert.ErrorIs(t, svc.Verify(ctx, 999, true), ErrNotFound)
}

func TestChapterSpoilerService_RejectsBadMinimum(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewChapterSpoilerService(repository.NewChapterSpoilerRepo(db))

	err := svc.Create(context.Background(), &models.ChapterSpoiler{ChapterNumber: 5, MinimumChapter: 0, Content: "x"}, Anonymous)
	assert.ErrorIs(t, err, ErrValidation)
}
