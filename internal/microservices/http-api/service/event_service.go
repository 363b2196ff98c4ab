package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mangafandb/internal/cache"
	"mangafandb/internal/microservices/http-api/dto"
	"mangafandb/internal/microservices/http-api/models"
	"mangafandb/internal/microservices/http-api/repository"
	"mangafandb/internal/spoiler"
	"mangafandb/internal/timeline"
)

type EventService interface {
	List(ctx context.Context, q repository.ListQuery, f repository.EventFilter, r Reader) ([]dto.EventResponse, int64, error)
	Get(ctx context.Context, id int64, r Reader) (*dto.EventResponse, error)
	Create(ctx context.Context, e *models.Event, characterIDs, tagIDs []int64) (*models.Event, error)
	// Update applies changes to the stored event. Nil id lists leave the
	// links untouched.
	Update(ctx context.Context, id int64, apply func(*models.Event), characterIDs, tagIDs *[]int64) (*models.Event, error)
	Delete(ctx context.Context, id int64) error
	Timeline(ctx context.Context, f repository.EventFilter, r Reader) (*dto.TimelineResponse, error)
	ArcTimeline(ctx context.Context, arcID int64, r Reader) (*dto.TimelineArc, error)
}

type eventService struct {
	repo       *repository.EventRepo
	arcs       *repository.ArcRepo
	characters *repository.CharacterRepo
	tags       *repository.TagRepo
	cache      cache.Cache
	ttl        time.Duration
	proximity  int
	changed    func(context.Context)
}

func NewEventService(
	repo *repository.EventRepo,
	arcs *repository.ArcRepo,
	characters *repository.CharacterRepo,
	tags *repository.TagRepo,
	c cache.Cache,
	ttl time.Duration,
	proximity int,
) EventService {
	return &eventService{
		repo:       repo,
		arcs:       arcs,
		characters: characters,
		tags:       tags,
		cache:      c,
		ttl:        ttl,
		proximity:  proximity,
		changed:    dropPrefixes(c, cache.PrefixEvents, cache.PrefixTimeline),
	}
}

func validateEvent(e *models.Event) error {
	e.Title = strings.TrimSpace(e.Title)
	if e.Title == "" {
		return invalid("title is required")
	}
	if !e.Type.Valid() {
		return invalid("unknown event type %q", e.Type)
	}
	if e.ChapterNumber < 1 {
		return invalid("chapter number must be at least 1")
	}
	if e.SpoilerChapter != nil && *e.SpoilerChapter < 1 {
		return invalid("spoiler chapter must be at least 1")
	}
	if e.Status == "" {
		e.Status = models.StatusApproved
	}
	if !e.Status.Valid() {
		return invalid("unknown status %q", e.Status)
	}
	return nil
}

// renderEvent flags and redacts e for viewer v.
func renderEvent(e models.Event, v spoiler.Viewer) dto.EventResponse {
	hidden := spoiler.ShouldHide(e.VisibleChapter(), v)
	if hidden {
		e.Description = ""
	}
	return dto.EventResponse{Event: e, SpoilerHidden: hidden}
}

func (s *eventService) List(ctx context.Context, q repository.ListQuery, f repository.EventFilter, r Reader) ([]dto.EventResponse, int64, error) {
	if !r.IsModerator() {
		f.Status = models.StatusApproved
	}
	events, total, err := s.repo.ListFiltered(ctx, q, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, renderEvent(e, r.Viewer))
	}
	return out, total, nil
}

func (s *eventService) Get(ctx context.Context, id int64, r Reader) (*dto.EventResponse, error) {
	e, err := readThrough(ctx, s.cache, fmt.Sprintf("%s%d", cache.PrefixEvents, id), s.ttl, func() (*models.Event, error) {
		return s.repo.GetByID(ctx, id)
	})
	if err != nil {
		return nil, translate(err, "event")
	}
	if e.Status != models.StatusApproved && !r.IsModerator() {
		return nil, fmt.Errorf("event: %w", ErrNotFound)
	}
	resp := renderEvent(*e, r.Viewer)
	return &resp, nil
}

func (s *eventService) Create(ctx context.Context, e *models.Event, characterIDs, tagIDs []int64) (*models.Event, error) {
	if err := validateEvent(e); err != nil {
		return nil, err
	}
	characters, err := loadAll(ctx, s.characters.FindByIDs, characterIDs, "character")
	if err != nil {
		return nil, err
	}
	tags, err := loadAll(ctx, s.tags.FindByIDs, tagIDs, "tag")
	if err != nil {
		return nil, err
	}
	e.Characters = characters
	e.Tags = tags
	if err := s.repo.CreateWithLinks(ctx, e); err != nil {
		return nil, translate(err, "event")
	}
	s.changed(ctx)
	return s.load(ctx, e.ID)
}

func (s *eventService) Update(ctx context.Context, id int64, apply func(*models.Event), characterIDs, tagIDs *[]int64) (*models.Event, error) {
	e, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(e)
	if err := validateEvent(e); err != nil {
		return nil, err
	}

	var characters []models.Character
	if characterIDs != nil {
		if characters, err = loadAll(ctx, s.characters.FindByIDs, *characterIDs, "character"); err != nil {
			return nil, err
		}
	}
	var tags []models.Tag
	if tagIDs != nil {
		if tags, err = loadAll(ctx, s.tags.FindByIDs, *tagIDs, "tag"); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, translate(err, "event")
	}
	if characterIDs != nil {
		if err := s.repo.ReplaceCharacters(ctx, e, characters); err != nil {
			return nil, translate(err, "event characters")
		}
	}
	if tagIDs != nil {
		if err := s.repo.ReplaceTags(ctx, e, tags); err != nil {
			return nil, translate(err, "event tags")
		}
	}
	s.changed(ctx)
	return s.load(ctx, id)
}

func (s *eventService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return translate(err, "event")
	}
	s.changed(ctx)
	return nil
}

func (s *eventService) load(ctx context.Context, id int64) (*models.Event, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, "event")
	}
	return e, nil
}

// timelineData is what the timeline cache holds: approved events and the arc
// names they reference. Viewer flags are applied after reading it.
type timelineData struct {
	Events []models.Event `json:"events"`
	Arcs   []models.Arc   `json:"arcs"`
}

func (s *eventService) timelineData(ctx context.Context, key string, f repository.EventFilter) (timelineData, error) {
	f.Status = models.StatusApproved
	return readThrough(ctx, s.cache, key, s.ttl, func() (timelineData, error) {
		events, err := s.repo.ListForTimeline(ctx, f)
		if err != nil {
			return timelineData{}, fmt.Errorf("timeline events: %w", err)
		}
		ids := make([]int64, 0)
		for _, e := range events {
			if e.ArcID != nil {
				ids = append(ids, *e.ArcID)
			}
		}
		arcs, err := s.arcs.FindByIDs(ctx, dedupe(ids))
		if err != nil {
			return timelineData{}, fmt.Errorf("timeline arcs: %w", err)
		}
		return timelineData{Events: events, Arcs: arcs}, nil
	})
}

func (s *eventService) Timeline(ctx context.Context, f repository.EventFilter, r Reader) (*dto.TimelineResponse, error) {
	key := fmt.Sprintf("%sall:%v:%v:%v:%v:%v:%v:%s", cache.PrefixTimeline,
		optInt64(f.ArcID), optInt64(f.GambleID), optInt64(f.CharacterID), optInt64(f.TagID),
		optInt(f.ChapterFrom), optInt(f.ChapterTo), f.Type)
	data, err := s.timelineData(ctx, key, f)
	if err != nil {
		return nil, err
	}

	byID := indexEvents(data.Events)
	names := make(map[int64]string, len(data.Arcs))
	for _, a := range data.Arcs {
		names[a.ID] = a.Name
	}

	groups := timeline.GroupByArc(toEntries(data.Events), s.proximity)
	resp := &dto.TimelineResponse{
		Arcs:              make([]dto.TimelineArc, 0, len(groups)),
		EffectiveProgress: r.Viewer.EffectiveProgress(),
	}
	for _, g := range groups {
		arc := dto.TimelineArc{
			StartChapter: g.StartChapter,
			EndChapter:   g.EndChapter,
			Sections:     renderSections(g.Sections, byID, r.Viewer),
		}
		if g.ArcID != 0 {
			id := g.ArcID
			arc.ArcID = &id
			arc.ArcName = names[id]
		}
		resp.Arcs = append(resp.Arcs, arc)
	}
	return resp, nil
}

func (s *eventService) ArcTimeline(ctx context.Context, arcID int64, r Reader) (*dto.TimelineArc, error) {
	arc, err := s.arcs.GetByID(ctx, arcID)
	if err != nil {
		return nil, translate(err, "arc")
	}
	data, err := s.timelineData(ctx, fmt.Sprintf("%sarc:%d", cache.PrefixTimeline, arcID), repository.EventFilter{ArcID: &arcID})
	if err != nil {
		return nil, err
	}
	sections := timeline.BuildSections(toEntries(data.Events), s.proximity)
	return &dto.TimelineArc{
		ArcID:        &arc.ID,
		ArcName:      arc.Name,
		StartChapter: arc.StartChapter,
		EndChapter:   arc.EndChapter,
		Sections:     renderSections(sections, indexEvents(data.Events), r.Viewer),
	}, nil
}

func toEntries(events []models.Event) []timeline.Entry {
	entries := make([]timeline.Entry, 0, len(events))
	for _, e := range events {
		entry := timeline.Entry{ID: e.ID, Type: e.Type, Chapter: e.ChapterNumber}
		if e.ArcID != nil {
			entry.ArcID = *e.ArcID
		}
		entries = append(entries, entry)
	}
	return entries
}

func indexEvents(events []models.Event) map[int64]models.Event {
	byID := make(map[int64]models.Event, len(events))
	for _, e := range events {
		byID[e.ID] = e
	}
	return byID
}

func renderSections(sections []timeline.Section, byID map[int64]models.Event, v spoiler.Viewer) []dto.TimelineSection {
	out := make([]dto.TimelineSection, 0, len(sections))
	for _, sec := range sections {
		ts := dto.TimelineSection{
			Kind:         string(sec.Kind),
			StartChapter: sec.StartChapter,
			EndChapter:   sec.EndChapter,
			Events:       make([]dto.TimelineEvent, 0, len(sec.Entries)),
		}
		if sec.Kind == timeline.SectionGamble {
			g, res := sec.GambleID, sec.ResolutionID
			ts.GambleID, ts.ResolutionID = &g, &res
		}
		for _, entry := range sec.Entries {
			e := byID[entry.ID]
			hidden := spoiler.ShouldHide(e.VisibleChapter(), v)
			te := dto.TimelineEvent{
				ID:             e.ID,
				Title:          e.Title,
				Type:           e.Type,
				ChapterNumber:  e.ChapterNumber,
				SpoilerChapter: e.SpoilerChapter,
				ArcID:          e.ArcID,
				GambleID:       e.GambleID,
				SpoilerHidden:  hidden,
			}
			if !hidden {
				te.Description = e.Description
			}
			ts.Events = append(ts.Events, te)
		}
		out = append(out, ts)
	}
	return out
}

func optInt(v *int) any {
	if v == nil {
		return "-"
	}
	return *v
}
