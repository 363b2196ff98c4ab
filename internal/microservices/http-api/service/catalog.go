package service

import (
	"context"
	"log/slog"
)

// store is the slice of a repository the catalog plumbing needs.
type store[T any] interface {
	GetByID(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, m *T) error
	Update(ctx context.Context, m *T) error
	Delete(ctx context.Context, id int64) error
}

// CatalogService is the shared read/write surface of canonical content.
type CatalogService[T any] interface {
	Get(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, m *T) error
	Update(ctx context.Context, id int64, apply func(*T)) (*T, error)
	Delete(ctx context.Context, id int64) error
}

type catalog[T any] struct {
	name     string
	store    store[T]
	validate func(*T) error
	changed  func(ctx context.Context)
}

func (s *catalog[T]) Get(ctx context.Context, id int64) (*T, error) {
	m, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, s.name)
	}
	return m, nil
}

func (s *catalog[T]) Create(ctx context.Context, m *T) error {
	if s.validate != nil {
		if err := s.validate(m); err != nil {
			return err
		}
	}
	if err := s.store.Create(ctx, m); err != nil {
		return translate(err, s.name)
	}
	s.notify(ctx)
	return nil
}

func (s *catalog[T]) Update(ctx context.Context, id int64, apply func(*T)) (*T, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(m)
	if s.validate != nil {
		if err := s.validate(m); err != nil {
			return nil, err
		}
	}
	if err := s.store.Update(ctx, m); err != nil {
		return nil, translate(err, s.name)
	}
	s.notify(ctx)
	return s.Get(ctx, id)
}

func (s *catalog[T]) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return translate(err, s.name)
	}
	s.notify(ctx)
	slog.InfoContext(ctx, "catalog entry deleted", "kind", s.name, "id", id)
	return nil
}

func (s *catalog[T]) notify(ctx context.Context) {
	if s.changed != nil {
		s.changed(ctx)
	}
}
