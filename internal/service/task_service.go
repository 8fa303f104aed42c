package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"taskmanager/internal/cache"
	dom "taskmanager/internal/domain"
	"taskmanager/internal/repo"
	"taskmanager/internal/utils"

	"golang.org/x/sync/singleflight"
)

var ErrNotFound = errors.New("not found")

// SortOrder selects the ordering of a listed page.
type SortOrder string

const (
	SortInsertion SortOrder = ""
	SortPriority  SortOrder = "priority"
)

// ListParams are the inputs of a filtered, paginated listing.
type ListParams struct {
	Skip     int
	Limit    int
	Status   *dom.Status
	Priority *dom.Priority
	Sort     SortOrder
}

// Metadata describes a page's position in the unfiltered collection.
type Metadata struct {
	Total   int
	Skip    int
	Limit   int
	HasNext bool
	HasPrev bool
}

// Page is one listing result.
type Page struct {
	Items    []dom.Task
	Metadata Metadata
}

type TaskService struct {
	repo  repo.TaskRepo
	cache *cache.TaskCache
	sf    singleflight.Group
}

// NewTaskService creates a TaskService. If c is nil, caching is disabled.
func NewTaskService(r repo.TaskRepo, c *cache.TaskCache) *TaskService {
	return &TaskService{repo: r, cache: c}
}

func (s *TaskService) Create(ctx context.Context, in dom.NewTask) (dom.Task, error) {
	if err := in.Validate(); err != nil {
		return dom.Task{}, err
	}
	t := s.repo.Create(in)
	s.invalidateCache(ctx)
	log.Printf("task %d created: %s", t.ID, t.Summary())
	return t, nil
}

func (s *TaskService) GetByID(ctx context.Context, id int64) (dom.Task, error) {
	t, ok := s.repo.GetByID(id)
	if !ok {
		return dom.Task{}, notFound(id)
	}
	return t, nil
}

// List pages through the store first and filters the page afterwards, so
// Items may hold fewer than Limit tasks even when more matches exist.
// Total and the has_next/has_prev flags always describe the unfiltered
// collection.
func (s *TaskService) List(ctx context.Context, p ListParams) (Page, error) {
	items := s.repo.List(p.Skip, p.Limit)
	if p.Status != nil {
		items = dom.FilterByStatus(items, *p.Status)
	}
	if p.Priority != nil {
		items = dom.FilterByPriority(items, *p.Priority)
	}
	switch p.Sort {
	case SortPriority:
		items = dom.SortByPriority(items, true)
	case SortInsertion:
	default:
		return Page{}, fmt.Errorf("%w: unknown sort %q", dom.ErrValidation, p.Sort)
	}

	total := s.repo.Count()
	return Page{
		Items: items,
		Metadata: Metadata{
			Total:   total,
			Skip:    p.Skip,
			Limit:   p.Limit,
			HasNext: utils.AddClamped(p.Skip, p.Limit) < total,
			HasPrev: p.Skip > 0,
		},
	}, nil
}

// Search returns every task matching q, without pagination. Cached results
// are looked up at the current store generation and stored under the
// generation the store scan actually ran at.
func (s *TaskService) Search(ctx context.Context, q string) ([]dom.Task, error) {
	key := repo.SanitizeQuery(q)
	if s.cache == nil || key == "" {
		return s.repo.Search(q), nil
	}
	gen := s.repo.Generation()
	flight := fmt.Sprintf("search:%d:%s", gen, key)
	v, err, _ := s.sf.Do(flight, func() (interface{}, error) {
		list, err := s.cache.GetSearch(ctx, gen, key)
		if err != nil {
			log.Printf("search cache read %q: %v", key, err)
		}
		if list != nil {
			return list, nil
		}
		list, readAt := s.repo.SearchWithGeneration(q)
		if err := s.cache.SetSearch(ctx, readAt, key, list); err != nil {
			log.Printf("search cache write %q: %v", key, err)
		}
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dom.Task), nil
}

// Update validates the patch before touching the store, so a rejected patch
// leaves the task as it was.
func (s *TaskService) Update(ctx context.Context, id int64, patch dom.TaskPatch) (dom.Task, error) {
	if err := patch.Validate(); err != nil {
		return dom.Task{}, err
	}
	t, ok := s.repo.Update(id, patch)
	if !ok {
		return dom.Task{}, notFound(id)
	}
	s.invalidateCache(ctx)
	log.Printf("task %d updated: %s", t.ID, t.Summary())
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	if !s.repo.Delete(id) {
		return notFound(id)
	}
	s.invalidateCache(ctx)
	log.Printf("task %d deleted", id)
	return nil
}

func notFound(id int64) error {
	return fmt.Errorf("task with id %d: %w", id, ErrNotFound)
}

func (s *TaskService) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		if err := s.cache.InvalidateAll(ctx); err != nil {
			log.Printf("search cache invalidate: %v", err)
		}
	}
}
