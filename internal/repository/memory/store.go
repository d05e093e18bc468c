// Package memory содержит in-memory реализацию repository.Store.
// Данные живут только в рамках процесса.
package memory

import (
	"sort"
	"sync"
	"time"

	"dreamscribe/internal/model"
	"dreamscribe/internal/repository"
)

var _ repository.Store = (*Store)(nil)

// Option настраивает Store.
type Option func(*Store)

// WithClock подменяет источник времени (используется в тестах).
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// sequences - независимые счетчики ID по типам сущностей. Никогда не уменьшаются.
type sequences struct {
	user, world, character, scene, message, activity int64
}

// Store хранит все сущности в картах под одним RWMutex: каждая операция атомарна
// относительно остальных.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	seq        sequences
	users      map[int64]*model.User
	worlds     map[int64]*model.World
	characters map[int64]*model.Character
	scenes     map[int64]*model.Scene
	messages   map[int64]*model.ChatMessage
	activity   map[int64]*model.ActivityLog
}

// NewStore создает пустое хранилище.
func NewStore(opts ...Option) *Store {
	s := &Store{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.resetLocked()
	return s
}

// Reset очищает все данные и счетчики.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

func (s *Store) resetLocked() {
	s.seq = sequences{}
	s.users = make(map[int64]*model.User)
	s.worlds = make(map[int64]*model.World)
	s.characters = make(map[int64]*model.Character)
	s.scenes = make(map[int64]*model.Scene)
	s.messages = make(map[int64]*model.ChatMessage)
	s.activity = make(map[int64]*model.ActivityLog)
}

func (s *Store) timestamp() time.Time {
	return s.now().UTC()
}

// newestFirst сортирует по времени по убыванию, при равенстве - по ID по убыванию.
func newestFirst(at func(i int) (time.Time, int64)) func(i, j int) bool {
	return func(i, j int) bool {
		ti, idi := at(i)
		tj, idj := at(j)
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return idi > idj
	}
}

// oldestFirst сортирует по времени по возрастанию, при равенстве - по ID по возрастанию.
func oldestFirst(at func(i int) (time.Time, int64)) func(i, j int) bool {
	return func(i, j int) bool {
		ti, idi := at(i)
		tj, idj := at(j)
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return idi < idj
	}
}

func applyLimit[T any](items []T, limit int) []T {
	if limit > 0 && limit < len(items) {
		return items[:limit]
	}
	return items
}

func sortSlice[T any](items []T, less func(i, j int) bool) {
	sort.SliceStable(items, less)
}
