package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"mangafandb/internal/microservices/http-api/dto"
	"mangafandb/internal/microservices/http-api/models"
	"mangafandb/internal/microservices/http-api/repository"
)

type moderatedStore[T any] interface {
	store[T]
	SetStatus(ctx context.Context, id int64, from, to models.ContentStatus, reason *string) error
	CountByStatus(ctx context.Context, status models.ContentStatus) (int64, error)
}

// moderation holds the pending/approved/rejected workflow shared by guides,
// annotations and media.
type moderation[T any] struct {
	kind          string
	store         moderatedStore[T]
	notifications repository.NotificationRepository

	status func(*T) models.ContentStatus
	author func(*T) string
	title  func(*T) string
}

// load returns the item if the reader may see it. Hidden items report not
// found rather than forbidden.
func (m *moderation[T]) load(ctx context.Context, id int64, r Reader) (*T, error) {
	item, err := m.store.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, m.kind)
	}
	if !r.canSee(m.status(item), m.author(item)) {
		return nil, fmt.Errorf("%s: %w", m.kind, ErrNotFound)
	}
	return item, nil
}

// authorize allows the author and moderators to change an item.
func (m *moderation[T]) authorize(item *T, r Reader) error {
	if r.IsModerator() || (r.Authenticated() && m.author(item) == r.UserID) {
		return nil
	}
	return fmt.Errorf("%s belongs to another user: %w", m.kind, ErrForbidden)
}

func (m *moderation[T]) Approve(ctx context.Context, id int64) (*T, error) {
	item, err := m.store.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, m.kind)
	}
	st := m.status(item)
	if st == models.StatusApproved {
		return nil, fmt.Errorf("%s is already approved: %w", m.kind, ErrConflict)
	}
	if err := m.transition(ctx, id, st, models.StatusApproved, nil); err != nil {
		return nil, err
	}
	m.notify(ctx, item, id, models.NotificationApproved,
		fmt.Sprintf("Your %s %q was approved.", m.kind, m.title(item)))
	return m.reload(ctx, id)
}

func (m *moderation[T]) Reject(ctx context.Context, id int64, reason string) (*T, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, invalid("a rejection reason is required")
	}
	item, err := m.store.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, m.kind)
	}
	if st := m.status(item); st != models.StatusPending {
		return nil, fmt.Errorf("only pending %s submissions can be rejected, this one is %s: %w", m.kind, st, ErrConflict)
	}
	if err := m.transition(ctx, id, models.StatusPending, models.StatusRejected, &reason); err != nil {
		return nil, err
	}
	m.notify(ctx, item, id, models.NotificationRejected,
		fmt.Sprintf("Your %s %q was rejected: %s", m.kind, m.title(item), reason))
	return m.reload(ctx, id)
}

// transition applies the status change only if nobody moved the item since it
// was read.
func (m *moderation[T]) transition(ctx context.Context, id int64, from, to models.ContentStatus, reason *string) error {
	err := m.store.SetStatus(ctx, id, from, to, reason)
	if errors.Is(err, repository.ErrStatusChanged) {
		return fmt.Errorf("%s was reviewed or edited in the meantime: %w", m.kind, ErrConflict)
	}
	return translate(err, m.kind)
}

func (m *moderation[T]) Pending(ctx context.Context) (int64, error) {
	return m.store.CountByStatus(ctx, models.StatusPending)
}

func (m *moderation[T]) reload(ctx context.Context, id int64) (*T, error) {
	item, err := m.store.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, m.kind)
	}
	return item, nil
}

// notify tells the author about a moderation outcome. A failed notification
// never undoes the status change.
func (m *moderation[T]) notify(ctx context.Context, item *T, id int64, typ, message string) {
	if m.notifications == nil {
		return
	}
	n := &models.Notification{
		UserID:     m.author(item),
		Type:       typ,
		EntityType: m.kind,
		EntityID:   id,
		Title:      m.title(item),
		Message:    message,
	}
	if err := m.notifications.Create(ctx, n); err != nil {
		slog.WarnContext(ctx, "moderation notification failed", "kind", m.kind, "id", id, "error", err)
	}
}

// resetForEdit puts an author's edit back in the queue. Moderator edits keep
// the current status.
func resetForEdit(r Reader, authorID string, status *models.ContentStatus, reason **string) {
	if r.UserID == authorID {
		*status = models.StatusPending
		*reason = nil
	}
}

// ModerationService reports the pending work across submission kinds.
type ModerationService interface {
	Queue(ctx context.Context) (*dto.ModerationQueue, error)
}

type moderationService struct {
	guides      *repository.GuideRepo
	annotations *repository.AnnotationRepo
	media       *repository.MediaRepo
	events      *repository.EventRepo
}

func NewModerationService(guides *repository.GuideRepo, annotations *repository.AnnotationRepo, media *repository.MediaRepo, events *repository.EventRepo) ModerationService {
	return &moderationService{guides: guides, annotations: annotations, media: media, events: events}
}

func (s *moderationService) Queue(ctx context.Context) (*dto.ModerationQueue, error) {
	var q dto.ModerationQueue
	counts := []struct {
		dst   *int64
		count func(context.Context, models.ContentStatus) (int64, error)
		kind  string
	}{
		{&q.Guides, s.guides.CountByStatus, "guides"},
		{&q.Annotations, s.annotations.CountByStatus, "annotations"},
		{&q.Media, s.media.CountByStatus, "media"},
		{&q.Events, s.events.CountByStatus, "events"},
	}
	for _, c := range counts {
		n, err := c.count(ctx, models.StatusPending)
		if err != nil {
			return nil, fmt.Errorf("count pending %s: %w", c.kind, err)
		}
		*c.dst = n
		q.Total += n
	}
	return &q, nil
}
