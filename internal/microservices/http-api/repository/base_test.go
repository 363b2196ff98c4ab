package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"mangafandb/internal/microservices/http-api/models"
	"mangafandb/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedCharacters(t *testing.T, db *gorm.DB, names ...string) {
	t.Helper()
	for _, n := range names {
		require.NoError(t, db.Create(&models.Character{Name: n}).Error)
	}
}

func names(items []models.Character) []string {
	out := make([]string, 0, len(items))
	for _, c := range items {
		out = append(out, c.Name)
	}
	return out
}

func TestCrudRepo_ListPaging(t *testing.T) {
	db := testutil.NewDB(t)
	seedCharacters(t, db, "Endou", "Kaiji", "Funai", "Tonegawa", "Hyoudou")
	repo := NewCharacterRepo(db)
	ctx := context.Background()

	tests := []struct {
		name string
		q    ListQuery
		want []string
	}{
		{"first page", ListQuery{Page: 1, Limit: 2}, []string{"Endou", "Funai"}},
		{"last partial page", ListQuery{Page: 3, Limit: 2}, []string{"Tonegawa"}},
		{"past the end", ListQuery{Page: 9, Limit: 2}, []string{}},
		{"descending", ListQuery{Page: 1, Limit: 2, Sort: "name", Order: "DESC"}, []string{"Tonegawa", "Kaiji"}},
		{"unknown sort uses default", ListQuery{Page: 1, Limit: 2, Sort: "name; DROP TABLE characters"}, []string{"Endou", "Funai"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, total, err := repo.List(ctx, tt.q)
			require.NoError(t, err)
			assert.Equal(t, int64(5), total, "total ignores paging")
			assert.Equal(t, tt.want, names(items))
		})
	}
}

func TestCrudRepo_SearchSkipsNullColumns(t *testing.T) {
	db := testutil.NewDB(t)
	gambler := "professional gambler"
	discount := "50% off loans"
	rows := []models.Character{
		{Name: "Kaiji"},
		{Name: "Endou", Occupation: &gambler},
		{Name: "Tonegawa", Description: &discount},
		{Name: "Ichijou_Seiya"},
	}
	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}
	repo := NewCharacterRepo(db)

	tests := []struct {
		search string
		want   []string
	}{
		{"KAI", []string{"Kaiji"}},
		{"gambler", []string{"Endou"}},
		{"50%", []string{"Tonegawa"}},
		{"%", []string{"Tonegawa"}},
		{"o_s", []string{"Ichijou_Seiya"}},
		{"e_n", []string{}},
		{`\`, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			items, total, err := repo.List(context.Background(), ListQuery{Page: 1, Limit: 10, Search: tt.search})
			require.NoError(t, err)
			assert.Equal(t, int64(len(tt.want)), total)
			assert.Equal(t, tt.want, names(items))
		})
	}
}

func TestCrudRepo_SetStatus(t *testing.T) {
	db := testutil.NewDB(t)
	author := testutil.CreateUser(t, db, "writer", models.RoleUser)
	repo := NewGuideRepo(db)
	ctx := context.Background()

	g := models.Guide{Title: "t", Content: "c", AuthorID: author.ID, Status: models.StatusPending}
	require.NoError(t, db.Create(&g).Error)

	reason := "thin"
	require.NoError(t, repo.SetStatus(ctx, g.ID, models.StatusPending, models.StatusRejected, &reason))

	stored, err := repo.GetByID(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, stored.Status)
	require.NotNil(t, stored.RejectionReason)
	assert.Equal(t, "thin", *stored.RejectionReason)

	err = repo.SetStatus(ctx, g.ID, models.StatusPending, models.StatusApproved, nil)
	assert.ErrorIs(t, err, ErrStatusChanged)
	stored, err = repo.GetByID(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, stored.Status, "a stale transition leaves the row alone")

	require.NoError(t, repo.SetStatus(ctx, g.ID, models.StatusRejected, models.StatusApproved, nil))
	stored, err = repo.GetByID(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, stored.Status)
	assert.Nil(t, stored.RejectionReason)

	err = repo.SetStatus(ctx, 9999, models.StatusPending, models.StatusApproved, nil)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestRefreshTokenRepository_DeleteExpired(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "sleepy", models.RoleUser)
	repo := NewRefreshTokenRepository(db)
	ctx := context.Background()
	now := time.Now()

	for i, exp := range []time.Duration{-48 * time.Hour, -time.Minute, time.Hour} {
		require.NoError(t, repo.Create(ctx, &models.RefreshToken{
			ID: string(rune('a' + i)), UserID: user.ID, Token: string(rune('x' + i)), ExpiresAt: now.Add(exp),
		}))
	}

	n, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Zero(t, n)

	var left int64
	require.NoError(t, db.Model(&models.RefreshToken{}).Count(&left).Error)
	assert.Equal(t, int64(1), left)
}
