package repo

import (
	"strings"
	"sync"
	"time"
	"unicode"

	dom "taskmanager/internal/domain"
	"taskmanager/internal/utils"
)

// TaskRepo is the record store contract used by the service layer.
// Absence is reported through the bool results, never as an error.
type TaskRepo interface {
	Create(t dom.NewTask) dom.Task
	GetByID(id int64) (dom.Task, bool)
	List(skip, limit int) []dom.Task
	Count() int
	Search(q string) []dom.Task
	SearchWithGeneration(q string) ([]dom.Task, uint64)
	Generation() uint64
	Update(id int64, patch dom.TaskPatch) (dom.Task, bool)
	Delete(id int64) bool
}

// MemTaskRepo keeps tasks in process memory.
type MemTaskRepo struct {
	mu     sync.RWMutex
	tasks  map[int64]*dom.Task
	order  []int64 // insertion order
	nextID int64
	gen    uint64 // bumped by every successful write
	now    func() time.Time
}

// NewMemTaskRepo returns an empty store whose first id is 1.
func NewMemTaskRepo() *MemTaskRepo {
	return &MemTaskRepo{
		tasks:  make(map[int64]*dom.Task),
		nextID: 1,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the time source. Used by tests.
func (r *MemTaskRepo) WithClock(now func() time.Time) *MemTaskRepo {
	r.now = now
	return r
}

func (r *MemTaskRepo) Create(t dom.NewTask) dom.Task {
	t = t.WithDefaults()

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	stored := dom.Task{
		ID:          r.nextID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}.Clone()
	r.tasks[stored.ID] = &stored
	r.order = append(r.order, stored.ID)
	r.nextID++
	r.gen++
	return stored.Clone()
}

func (r *MemTaskRepo) GetByID(id int64) (dom.Task, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tasks[id]
	if !ok {
		return dom.Task{}, false
	}
	return t.Clone(), true
}

// List returns the tasks in insertion order between skip and skip+limit.
// Negative bounds count from the end of the collection, so List(-2, 5) on
// ten tasks yields nothing while List(-2, 12) yields the last two.
func (r *MemTaskRepo) List(skip, limit int) []dom.Task {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lo, hi := sliceBounds(len(r.order), skip, utils.AddClamped(skip, limit))
	out := make([]dom.Task, 0, hi-lo)
	for _, id := range r.order[lo:hi] {
		out = append(out, r.tasks[id].Clone())
	}
	return out
}

func (r *MemTaskRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tasks)
}

// Generation identifies the current contents of the store. It changes on
// every create, successful update and successful delete.
func (r *MemTaskRepo) Generation() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.gen
}

// Search matches the sanitized query against title and description,
// case-insensitively. A query that sanitizes to nothing matches nothing.
func (r *MemTaskRepo) Search(q string) []dom.Task {
	out, _ := r.SearchWithGeneration(q)
	return out
}

// SearchWithGeneration is Search plus the generation the result was read at.
func (r *MemTaskRepo) SearchWithGeneration(q string) ([]dom.Task, uint64) {
	needle := SanitizeQuery(q)
	out := make([]dom.Task, 0)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if needle == "" {
		return out, r.gen
	}
	for _, id := range r.order {
		t := r.tasks[id]
		if strings.Contains(strings.ToLower(t.Title), needle) {
			out = append(out, t.Clone())
			continue
		}
		if t.Description != nil && strings.Contains(strings.ToLower(*t.Description), needle) {
			out = append(out, t.Clone())
		}
	}
	return out, r.gen
}

// Update applies the present fields of patch and refreshes UpdatedAt.
// The patch must already be validated.
func (r *MemTaskRepo) Update(id int64, patch dom.TaskPatch) (dom.Task, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.tasks[id]
	if !ok {
		return dom.Task{}, false
	}
	next := patch.Apply(cur.Clone())
	next.UpdatedAt = r.now()
	if next.UpdatedAt.Before(cur.UpdatedAt) {
		next.UpdatedAt = cur.UpdatedAt
	}
	*cur = next
	r.gen++
	return next.Clone(), true
}

func (r *MemTaskRepo) Delete(id int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return false
	}
	delete(r.tasks, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.gen++
	return true
}

// SanitizeQuery drops every rune that is not a letter, digit, underscore or
// whitespace, then lowercases and trims the result.
func SanitizeQuery(q string) string {
	var b strings.Builder
	b.Grow(len(q))
	for _, c := range q {
		if unicode.IsLetter(c) || unicode.IsNumber(c) || c == '_' || unicode.IsSpace(c) {
			b.WriteRune(c)
		}
	}
	return strings.TrimSpace(strings.ToLower(b.String()))
}

// sliceBounds resolves [start:stop] over n elements the way sequence slicing
// with negative indices does: negatives count from the end, everything is
// clamped to [0, n], and stop never precedes start.
func sliceBounds(n, start, stop int) (int, int) {
	lo := clampIndex(n, start)
	hi := clampIndex(n, stop)
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

func clampIndex(n, i int) int {
	if i < 0 {
		i += n
		if i < 0 {
			return 0
		}
		return i
	}
	if i > n {
		return n
	}
	return i
}
