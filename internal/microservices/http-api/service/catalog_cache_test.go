package service

import (
	"context"
	"testing"

	"mangafandb/internal/microservices/http-api/models"
	"mangafandb/internal/microservices/http-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogWrites_DropCachedEventDetail(t *testing.T) {
	f := newEventFixture(t)
	ctx := context.Background()

	gamble := models.Gamble{Name: "E-card", StartChapter: 5}
	require.NoError(t, f.db.Create(&gamble).Error)

	e := &models.Event{Title: "Emperor card", Type: models.EventGamble, ChapterNumber: 5, ArcID: &f.arc.ID, GambleID: &gamble.ID}
	created, err := f.svc.Create(ctx, e, []int64{f.kaiji.ID}, []int64{f.tag.ID})
	require.NoError(t, err)

	moderator := Reader{Role: models.RoleModerator}
	get := func() *models.Event {
		t.Helper()
		resp, err := f.svc.Get(ctx, created.ID, moderator)
		require.NoError(t, err)
		return &resp.Event
	}
	require.NotNil(t, get().Arc)

	characters := NewCharacterService(repository.NewCharacterRepo(f.db), repository.NewOrganizationRepo(f.db), f.cache)
	_, err = characters.Update(ctx, f.kaiji.ID, func(c *models.Character) { c.Name = "Itou Kaiji" })
	require.NoError(t, err)
	cached := get()
	require.Len(t, cached.Characters, 1)
	assert.Equal(t, "Itou Kaiji", cached.Characters[0].Name)

	tags := NewTagService(repository.NewTagRepo(f.db), f.cache)
	require.NoError(t, tags.Delete(ctx, f.tag.ID))
	assert.Empty(t, get().Tags)

	gambles := NewGambleService(repository.NewGambleRepo(f.db), repository.NewCharacterRepo(f.db), f.cache)
	require.NoError(t, gambles.Delete(ctx, gamble.ID))
	cached = get()
	assert.Nil(t, cached.GambleID)
	assert.Nil(t, cached.Gamble)

	arcs := NewArcService(repository.NewArcRepo(f.db), f.cache, 0)
	require.NoError(t, arcs.Delete(ctx, f.arc.ID))
	cached = get()
	assert.Nil(t, cached.ArcID)
	assert.Nil(t, cached.Arc)
}
