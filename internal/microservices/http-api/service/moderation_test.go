package service

import (
	"context"
	"testing"

	"mangafandb/internal/microservices/http-api/models"
	"mangafandb/internal/microservices/http-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// interleavedGuides runs between once, right after the first read, to stand in
// for a second request landing while the first one is deciding.
type interleavedGuides struct {
	*repository.GuideRepo
	between func()
}

func (s *interleavedGuides) GetByID(ctx context.Context, id int64) (*models.Guide, error) {
	g, err := s.GuideRepo.GetByID(ctx, id)
	if s.between != nil {
		run := s.between
		s.between = nil
		run()
	}
	return g, err
}

func (f *guideFixture) staleModerator(between func()) *moderation[models.Guide] {
	return &moderation[models.Guide]{
		kind:          "guide",
		store:         &interleavedGuides{GuideRepo: repository.NewGuideRepo(f.db), between: between},
		notifications: repository.NewNotificationRepository(f.db),
		status:        func(g *models.Guide) models.ContentStatus { return g.Status },
		author:        func(g *models.Guide) string { return g.AuthorID },
		title:         func(g *models.Guide) string { return g.Title },
	}
}

func (f *guideFixture) notificationTypes(t *testing.T) []string {
	t.Helper()
	var types []string
	require.NoError(t, f.db.Model(&models.Notification{}).
		Where("user_id = ?", f.author.UserID).Order("id").Pluck("type", &types).Error)
	return types
}

func TestModeration_ApproveLosesToConcurrentReject(t *testing.T) {
	f := newGuideFixture(t)
	ctx := context.Background()
	g := f.submit(t, "contested guide")

	stale := f.staleModerator(func() {
		_, err := f.svc.Reject(ctx, g.ID, "off topic")
		require.NoError(t, err)
	})

	_, err := stale.Approve(ctx, g.ID)
	assert.ErrorIs(t, err, ErrConflict)

	got, err := f.svc.Get(ctx, g.ID, f.mod)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, got.Status)
	assert.Equal(t, []string{models.NotificationRejected}, f.notificationTypes(t))
}

func TestModeration_DoubleApprove(t *testing.T) {
	f := newGuideFixture(t)
	ctx := context.Background()
	g := f.submit(t, "popular guide")

	stale := f.staleModerator(func() {
		_, err := f.svc.Approve(ctx, g.ID)
		require.NoError(t, err)
	})

	_, err := stale.Approve(ctx, g.ID)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, []string{models.NotificationApproved}, f.notificationTypes(t))
}

func TestModeration_StaleApproveAfterAuthorResubmits(t *testing.T) {
	f := newGuideFixture(t)
	ctx := context.Background()
	g := f.submit(t, "draft guide")
	_, err := f.svc.Reject(ctx, g.ID, "needs sources")
	require.NoError(t, err)

	// the moderator read the rejected version; the author resubmits before the approve lands
	stale := f.staleModerator(func() {
		_, err := f.svc.Update(ctx, g.ID, func(m *models.Guide) { m.Content = "body with sources" }, nil, f.author)
		require.NoError(t, err)
	})

	_, err = stale.Approve(ctx, g.ID)
	assert.ErrorIs(t, err, ErrConflict)

	got, err := f.svc.Get(ctx, g.ID, f.mod)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, got.Status)
	assert.Equal(t, "body with sources", got.Content)
}

func TestModeration_RejectLosesToConcurrentApprove(t *testing.T) {
	f := newGuideFixture(t)
	ctx := context.Background()
	g := f.submit(t, "contested guide")

	stale := f.staleModerator(func() {
		_, err := f.svc.Approve(ctx, g.ID)
		require.NoError(t, err)
	})

	_, err := stale.Reject(ctx, g.ID, "late call")
	assert.ErrorIs(t, err, ErrConflict)

	got, err := f.svc.Get(ctx, g.ID, f.mod)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, got.Status)
	assert.Nil(t, got.RejectionReason)
}

func TestModeration_RejectNeedsReason(t *testing.T) {
	f := newGuideFixture(t)
	ctx := context.Background()
	g := f.submit(t, "thin guide")

	_, err := f.svc.Reject(ctx, g.ID, "   ")
	assert.ErrorIs(t, err, ErrValidation)

	got, err := f.svc.Get(ctx, g.ID, f.mod)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, got.Status)
	assert.Empty(t, f.notificationTypes(t))

	rejected, err := f.svc.Reject(ctx, g.ID, "\tno sources\n")
	require.NoError(t, err)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "no sources", *rejected.RejectionReason)
}
