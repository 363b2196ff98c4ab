package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mangafandb/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrStatusChanged reports that a moderated row left the expected status
// between the read and the write.
var ErrStatusChanged = errors.New("status changed concurrently")

// ListQuery carries the pagination, sort and free-text parameters every list
// endpoint accepts. Handlers normalise it before it reaches a repository.
type ListQuery struct {
	Page   int
	Limit  int
	Sort   string
	Order  string
	Search string
}

func (q ListQuery) Offset() int {
	if q.Page < 1 {
		return 0
	}
	return (q.Page - 1) * q.Limit
}

// Visibility narrows moderated content to what a viewer may see: approved
// items, plus their own submissions, or everything for moderators.
type Visibility struct {
	ViewerID    string
	IsModerator bool
}

type scopeFunc func(*gorm.DB) *gorm.DB

// crudRepo is the shared gorm plumbing behind the per-entity repositories.
type crudRepo[T any] struct {
	db          *gorm.DB
	table       string
	sortable    map[string]string // public sort key -> column
	defaultSort string
	searchCols  []string
	ownerColumn string // author column for moderated content
}

func (r *crudRepo[T]) order(q ListQuery) string {
	col, ok := r.sortable[q.Sort]
	if !ok {
		col = r.defaultSort
	}
	dir := "ASC"
	if strings.EqualFold(q.Order, "desc") {
		dir = "DESC"
	}
	return fmt.Sprintf("%s.%s %s, %s.id ASC", r.table, col, dir, r.table)
}

// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// containsPattern is the lower-cased LIKE pattern for "term appears anywhere".
// Use it with likeEscapeClause.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(term))) + "%"
}

const likeEscapeClause = ` ESCAPE '\'`

func (r *crudRepo[T]) searchScope(term string) scopeFunc {
	return func(tx *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" || len(r.searchCols) == 0 {
			return tx
		}
		pattern := containsPattern(term)
		clauses := make([]string, 0, len(r.searchCols))
		args := make([]any, 0, len(r.searchCols))
		for _, col := range r.searchCols {
			// COALESCE keeps NULL columns from dropping the row
			clauses = append(clauses, fmt.Sprintf("LOWER(COALESCE(%s.%s, '')) LIKE ?", r.table, col)+likeEscapeClause)
			args = append(args, pattern)
		}
		return tx.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
}

func (r *crudRepo[T]) visibilityScope(v Visibility, status models.ContentStatus) scopeFunc {
	return func(tx *gorm.DB) *gorm.DB {
		col := r.table + ".status"
		if v.IsModerator {
			if status != "" {
				return tx.Where(col+" = ?", status)
			}
			return tx
		}
		if v.ViewerID == "" {
			return tx.Where(col+" = ?", models.StatusApproved)
		}
		tx = tx.Where("("+col+" = ? OR "+r.table+"."+r.ownerColumn+" = ?)", models.StatusApproved, v.ViewerID)
		if status != "" {
			tx = tx.Where(col+" = ?", status)
		}
		return tx
	}
}

// list runs the count and page queries over the same filtered base.
func (r *crudRepo[T]) list(ctx context.Context, q ListQuery, preloads []string, scopes ...scopeFunc) ([]T, int64, error) {
	base := r.db.WithContext(ctx).Model(new(T))
	for _, s := range scopes {
		base = s(base)
	}
	base = r.searchScope(q.Search)(base).Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", r.table, err)
	}

	tx := base
	for _, p := range preloads {
		tx = tx.Preload(p)
	}
	items := make([]T, 0)
	if err := tx.Order(r.order(q)).Limit(q.Limit).Offset(q.Offset()).Find(&items).Error; err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", r.table, err)
	}
	return items, total, nil
}

func (r *crudRepo[T]) List(ctx context.Context, q ListQuery) ([]T, int64, error) {
	return r.list(ctx, q, nil)
}

func (r *crudRepo[T]) get(ctx context.Context, id int64, preloads ...string) (*T, error) {
	tx := r.db.WithContext(ctx)
	for _, p := range preloads {
		tx = tx.Preload(p)
	}
	var m T
	if err := tx.First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *crudRepo[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	return r.get(ctx, id)
}

// FindByIDs loads the rows among ids that exist.
func (r *crudRepo[T]) FindByIDs(ctx context.Context, ids []int64) ([]T, error) {
	out := make([]T, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error
	return out, err
}

func (r *crudRepo[T]) Create(ctx context.Context, m *T) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		return fmt.Errorf("create %s: %w", r.table, err)
	}
	return nil
}

// createWith inserts m and its many-to-many join rows without upserting the
// associated records. omit names relations to skip, "Rel.*" keeps the joins.
func (r *crudRepo[T]) createWith(ctx context.Context, m *T, omit ...string) error {
	if err := r.db.WithContext(ctx).Omit(omit...).Create(m).Error; err != nil {
		return fmt.Errorf("create %s: %w", r.table, err)
	}
	return nil
}

// Update saves scalar columns only; associations go through Replace* helpers.
func (r *crudRepo[T]) Update(ctx context.Context, m *T) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(m).Error; err != nil {
		return fmt.Errorf("update %s: %w", r.table, err)
	}
	return nil
}

// Delete removes the row and reports gorm.ErrRecordNotFound when nothing matched.
// Join rows go with it through ON DELETE CASCADE.
func (r *crudRepo[T]) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return fmt.Errorf("delete %s: %w", r.table, res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetStatus moves a moderated row from status from to status to, recording
// reason on rejection. The update only applies while the row is still in from.
func (r *crudRepo[T]) SetStatus(ctx context.Context, id int64, from, to models.ContentStatus, reason *string) error {
	res := r.db.WithContext(ctx).Model(new(T)).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{
			"status":           to,
			"rejection_reason": reason,
		})
	if res.Error != nil {
		return fmt.Errorf("set %s status: %w", r.table, res.Error)
	}
	if res.RowsAffected == 1 {
		return nil
	}
	var n int64
	if err := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&n).Error; err != nil {
		return fmt.Errorf("set %s status: %w", r.table, err)
	}
	if n == 0 {
		return gorm.ErrRecordNotFound
	}
	return ErrStatusChanged
}

func (r *crudRepo[T]) CountByStatus(ctx context.Context, status models.ContentStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(new(T)).Where("status = ?", status).Count(&n).Error
	return n, err
}

// replaceAssociation swaps the many-to-many rows of owner for items. Items must
// already exist; only the join table is written.
func replaceAssociation[A any](ctx context.Context, db *gorm.DB, owner any, name string, items []A) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assoc := tx.Model(owner).Omit(name + ".*").Association(name)
		if len(items) == 0 {
			return assoc.Clear()
		}
		return assoc.Replace(items)
	})
}
