package service

import (
	"context"
	"sync"
	"time"

	"wtms/internal/cache"
	"wtms/internal/models"
	"wtms/internal/repository/repositorytest"
)

var fixedNow = time.Date(2024, time.May, 10, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func newEngine(store *repositorytest.Store) *Engine {
	return NewEngine(store, WithClock(fixedClock), WithLocation(time.UTC))
}

func seedWorker(store *repositorytest.Store, email string) models.Worker {
	return store.AddWorker(models.Worker{
		FullName: "Siti", Email: email, Phone: "0123", Address: "KL",
		Gender: models.DefaultGender, Nationality: models.DefaultNationality, Country: models.DefaultCountry,
	})
}

func seedWork(store *repositorytest.Store, workerID int64, due models.Date, status models.WorkStatus) models.Work {
	return store.AddWork(models.Work{
		Title: "Task", Description: "desc", AssignedTo: workerID, DueDate: due, Status: status,
	})
}

type recorder struct {
	mu     sync.Mutex
	events []models.SubmissionEvent
}

func (r *recorder) Notify(_ int64, e models.SubmissionEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) Events() []models.SubmissionEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.SubmissionEvent(nil), r.events...)
}

type memoryCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemoryCache() *memoryCache { return &memoryCache{data: map[string]string{}} }

func (m *memoryCache) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return "", cache.ErrMiss
	}
	return v, nil
}

func (m *memoryCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memoryCache) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *memoryCache) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

func ptr[T any](v T) *T { return &v }
