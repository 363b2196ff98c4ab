package service

import (
	"context"
	"testing"

	"mangafandb/internal/microservices/http-api/models"
	"mangafandb/internal/microservices/http-api/repository"
	"mangafandb/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type guideFixture struct {
	db     *gorm.DB
	svc    GuideService
	author Reader
	other  Reader
	mod    Reader
}

func newGuideFixture(t *testing.T) *guideFixture {
	t.Helper()
	db := testutil.NewDB(t)
	author := testutil.CreateUser(t, db, "writer", models.RoleUser)
	other := testutil.CreateUser(t, db, "reader", models.RoleUser)
	mod := testutil.CreateUser(t, db, "mod", models.RoleModerator)

	svc := NewGuideService(repository.NewGuideRepo(db), repository.NewTagRepo(db), repository.NewNotificationRepository(db))
	return &guideFixture{
		db:     db,
		svc:    svc,
		author: Reader{UserID: author.ID, Role: author.Role},
		other:  Reader{UserID: other.ID, Role: other.Role},
		mod:    Reader{UserID: mod.ID, Role: mod.Role},
	}
}

func (f *guideFixture) submit(t *testing.T, title string) *models.Guide {
	t.Helper()
	g, err := f.svc.Create(context.Background(), &models.Guide{Title: title, Content: "body"}, nil, f.author)
	require.NoError(t, err)
	return g
}

func TestGuideService_SubmissionStartsPending(t *testing.T) {
	f := newGuideFixture(t)
	// moderators go through the queue too
	g, err := f.svc.Create(context.Background(), &models.Guide{Title: "mod guide", Content: "c", Status: models.StatusApproved}, nil, f.mod)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, g.Status)
	assert.Equal(t, f.mod.UserID, g.AuthorID)
}

func TestGuideService_Visibility(t *testing.T) {
	f := newGuideFixture(t)
	ctx := context.Background()
	g := f.submit(t, "pending guide")
	q := repository.ListQuery{Page: 1, Limit: 20}

	_, total, err := f.svc.List(ctx, q, repository.GuideFilter{}, Anonymous)
	require.NoError(t, err)
	assert.Zero(t, total)

	_, total, err = f.svc.List(ctx, q, repository.GuideFilter{}, f.other)
	require.NoError(t, err)
	assert.Zero(t, total)

	_, total, err = f.svc.List(ctx, q, repository.GuideFilter{}, f.author)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, total, err = f.svc.List(ctx, q, repository.GuideFilter{Status: models.StatusPending}, f.mod)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, err = f.svc.Get(ctx, g.ID, f.other)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGuideService_ApproveNotifiesAndCountsViews(t *testing.T) {
	f := newGuideFixture(t)
	ctx := context.Background()
	g := f.submit(t, "how to win at e-card")

	approved, err := f.svc.Approve(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, approved.Status)

	var notes []models.Notification
	require.NoError(t, f.db.Where("user_id = ?", f.author.UserID).Find(&notes).Error)
	require.Len(t, notes, 1)
	assert.Equal(t, models.NotificationApproved, notes[0].Type)
	assert.Equal(t, g.ID, notes[0].EntityID)

	_, err = f.svc.Approve(ctx, g.ID)
	assert.ErrorIs(t, err, ErrConflict)

	got, err := f.svc.Get(ctx, g.ID, Anonymous)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ViewCount)

	liked, err := f.svc.Like(ctx, g.ID, f.other)
	require.NoError(t, err)
	assert.Equal(t, int64(1), liked.LikeCount)
}

func TestGuideService_RejectOnlyFromPending(t *testing.T) {
	f := newGuideFixture(t)
	ctx := context.Background()
	g := f.submit(t, "thin guide")

	rejected, err := f.svc.Reject(ctx, g.ID, "too short")
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "too short", *rejected.RejectionReason)

	_, err = f.svc.Reject(ctx, g.ID, "again")
	assert.ErrorIs(t, err, ErrConflict)

	// a rejected guide can still be approved on appeal
	_, err = f.svc.Approve(ctx, g.ID)
	assert.NoError(t, err)
}

func TestGuideService_AuthorEditResetsToPending(t *testing.T) {
	f := newGuideFixture(t)
	ctx := context.Background()
	g := f.submit(t, "draft")
	_, err := f.svc.Approve(ctx, g.ID)
	require.NoError(t, err)

	updated, err := f.svc.Update(ctx, g.ID, func(g *models.Guide) { g.Content = "new body" }, nil, f.author)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, updated.Status)

	_, err = f.svc.Approve(ctx, g.ID)
	require.NoError(t, err)
	updated, err = f.svc.Update(ctx, g.ID, func(g *models.Guide) { g.Title = "fixed typo" }, nil, f.mod)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, updated.Status, "moderator edits keep the status")
}

func TestGuideService_OnlyAuthorOrModeratorChanges(t *testing.T) {
	f := newGuideFixture(t)
	ctx := context.Background()
	g := f.submit(t, "mine")
	_, err := f.svc.Approve(ctx, g.ID)
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, g.ID, func(g *models.Guide) { g.Title = "yours" }, nil, f.other)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, f.svc.Delete(ctx, g.ID, f.other), ErrForbidden)

	require.NoError(t, f.svc.Delete(ctx, g.ID, f.mod))
	_, err = f.svc.Get(ctx, g.ID, f.mod)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGuideService_Tags(t *testing.T) {
	f := newGuideFixture(t)
	ctx := context.Background()
	tag := models.Tag{Name: "strategy"}
	require.NoError(t, f.db.Create(&tag).Error)

	g, err := f.svc.Create(ctx, &models.Guide{Title: "tagged", Content: "c"}, []int64{tag.ID}, f.author)
	require.NoError(t, err)
	require.Len(t, g.Tags, 1)

	_, total, err := f.svc.List(ctx, repository.ListQuery{Page: 1, Limit: 5}, repository.GuideFilter{TagID: &tag.ID}, f.author)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestModerationService_Queue(t *testing.T) {
	f := newGuideFixture(t)
	ctx := context.Background()
	f.submit(t, "one")
	f.submit(t, "two")

	annotations := NewAnnotationService(repository.NewAnnotationRepo(f.db), nil)
	_, err := annotations.Create(ctx, &models.Annotation{
		OwnerType: models.AnnotationOwnerCharacter, OwnerID: 1, Title: "note", Content: "c",
	}, f.author)
	require.NoError(t, err)

	svc := NewModerationService(repository.NewGuideRepo(f.db), repository.NewAnnotationRepo(f.db),
		repository.NewMediaRepo(f.db), repository.NewEventRepo(f.db))
	q, err := svc.Queue(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), q.Guides)
	assert.Equal(t, int64(1), q.Annotations)
	assert.Equal(t, int64(3), q.Total)
}

func TestGuideService_LikeNeedsApproval(t *testing.T) {
	f := newGuideFixture(t)
	ctx := context.Background()
	g := f.submit(t, "draft")

	_, err := f.svc.Like(ctx, g.ID, f.author)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = f.svc.Like(ctx, g.ID, f.mod)
	assert.ErrorIs(t, err, ErrValidation)
	// others cannot see the draft at all
	_, err = f.svc.Like(ctx, g.ID, f.other)
	assert.ErrorIs(t, err, ErrNotFound)

	var stored models.Guide
	require.NoError(t, f.db.First(&stored, g.ID).Error)
	assert.Zero(t, stored.LikeCount)
}
