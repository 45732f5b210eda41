// Package jobs tracks batch-processing jobs in memory. The store is an
// injected dependency: concurrent reads serve status polling, while each
// job has exactly one writing worker. Entries live for the process
// lifetime; there is no delete and no cancellation.
package jobs

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Juangranados89/certificados-app/internal/extract"
)

// ErrNotFound is returned when a job id is unknown.
var ErrNotFound = errors.New("job not found")

// State represents the execution state of a batch job.
type State string

const (
	StatePending   State = "pending"
	StateRunning   State = "running"
	StateCompleted State = "completed"
	StateFailed    State = "failed"
)

// Job is the status record of one batch. Rows are only populated once the
// job completes.
type Job struct {
	ID        uuid.UUID        `json:"id"`
	State     State            `json:"state"`
	Mode      extract.Mode     `json:"mode"`
	Total     int              `json:"total"`
	Processed int              `json:"processed"`
	Rows      []extract.Record `json:"rows,omitempty"`
	OutputDir string           `json:"-"`
	Error     string           `json:"error,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// Store is the in-memory job table.
type Store struct {
	mu   sync.RWMutex
	jobs map[uuid.UUID]*Job
}

// NewStore creates an empty job store.
func NewStore() *Store {
	return &Store{jobs: make(map[uuid.UUID]*Job)}
}

// Create registers a new pending job and returns its id.
func (s *Store) Create(mode extract.Mode, total int, outputDir string) uuid.UUID {
	id := uuid.New()
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[id] = &Job{
		ID:        id,
		State:     StatePending,
		Mode:      mode,
		Total:     total,
		OutputDir: outputDir,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return id
}

// Get returns a copy of the job's current status.
func (s *Store) Get(id uuid.UUID) (Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return Job{}, ErrNotFound
	}
	cp := *job
	cp.Rows = append([]extract.Record(nil), job.Rows...)
	return cp, nil
}

// Update applies fn to the job under the write lock. Only the owning
// worker calls this for a given job.
func (s *Store) Update(id uuid.UUID, fn func(*Job)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return ErrNotFound
	}
	fn(job)
	job.UpdatedAt = time.Now()
	return nil
}
