package command

import (
	"bytes"
	"testing"

	"mangafandb/internal/microservices/http-api/dto"
	"mangafandb/internal/microservices/http-api/models"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func TestRenderEvents_HidesSpoilers(t *testing.T) {
	gate := 30
	page := dto.NewPage([]dto.EventResponse{
		{Event: models.Event{Title: "Baku meets Kaji", Type: models.EventDecision, ChapterNumber: 1, Description: "At a pachinko parlour."}},
		{Event: models.Event{Title: "The loophole", Type: models.EventReveal, ChapterNumber: 28, SpoilerChapter: &gate}, SpoilerHidden: true},
	}, 2, 1, 20)

	var buf bytes.Buffer
	renderEvents(&buf, &page)
	out := buf.String()

	assert.Contains(t, out, "At a pachinko parlour.")
	assert.Contains(t, out, "spoiler hidden until chapter 30")
	assert.Contains(t, out, "page 1 of 1 (2 events)")
}

func TestRenderTimeline(t *testing.T) {
	arcID := int64(1)
	tl := &dto.TimelineResponse{
		EffectiveProgress: 12,
		Arcs: []dto.TimelineArc{{
			ArcID: &arcID, ArcName: "Ghost House", StartChapter: 10, EndChapter: 30,
			Sections: []dto.TimelineSection{{
				Kind: "gamble", StartChapter: 12, EndChapter: 30,
				Events: []dto.TimelineEvent{
					{Title: "Entering", Type: models.EventGamble, ChapterNumber: 12},
					{Title: "Settled", Type: models.EventResolution, ChapterNumber: 30, SpoilerHidden: true},
				},
			}},
		}},
	}

	var buf bytes.Buffer
	renderTimeline(&buf, tl)
	out := buf.String()

	assert.Contains(t, out, "Ghost House (ch. 10-30)")
	assert.Contains(t, out, "┌ gamble ch. 12-30")
	assert.Contains(t, out, "#12 Entering [gamble]\n")
	assert.Contains(t, out, "(spoiler until ch. 30)")
	assert.Contains(t, out, "up to chapter 12")
}

func TestRenderViewable(t *testing.T) {
	var buf bytes.Buffer
	renderViewable(&buf, &dto.CheckViewableResponse{UserProgress: 20, Results: []dto.ViewableResult{
		{ID: 1, Found: true, CanView: true, MinimumChapter: 10},
		{ID: 2, Found: true, MinimumChapter: 50},
		{ID: 3},
	}})
	out := buf.String()

	assert.Contains(t, out, "1  safe to read")
	assert.Contains(t, out, "2  locked until chapter 50")
	assert.Contains(t, out, "3  not found")
}

func TestParseChapter(t *testing.T) {
	n, err := parseChapter("0")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, err = parseChapter("-1")
	assert.Error(t, err)
	_, err = parseChapter("ten")
	assert.Error(t, err)
}

func TestSpoilerOverrideFlag(t *testing.T) {
	t.Cleanup(func() { spoilerChapter = -1 })

	spoilerChapter = -1
	assert.Nil(t, spoilerOverride())

	spoilerChapter = 0
	require.NotNil(t, spoilerOverride())
	assert.Equal(t, 0, *spoilerOverride())
}
