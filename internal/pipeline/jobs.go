package pipeline

import (
	"sync"
	"time"

	"github.com/dwHou/Slidown/internal/deck"
)

// JobStatus represents the state of a conversion job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusConverting JobStatus = "converting"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
)

// Job tracks the conversion of a single markdown document.
type Job struct {
	mu sync.Mutex

	ID       string    `json:"job_id"`
	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Filename string    `json:"filename"`

	Progress Progress `json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Conversion settings for this document.
	Options deck.Options `json:"-"`

	// Internal: not serialized.
	source []byte
	result *deck.Deck
	errors []string
}

// Progress tracks conversion progress.
type Progress struct {
	SlideCount int      `json:"slide_count"`
	NavEntries int      `json:"nav_entries"`
	TOCEntries int      `json:"toc_entries"`
	Errors     []string `json:"errors"`
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// SetSource sets the raw markdown bytes for conversion.
func (j *Job) SetSource(data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.source = data
}

// Source returns the raw markdown bytes.
func (j *Job) Source() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.source
}

// SetResult stores the completed deck and its counts.
func (j *Job) SetResult(d *deck.Deck) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.result = d
	j.Progress.SlideCount = len(d.Slides)
	j.Progress.NavEntries = len(d.Nav)
	j.Progress.TOCEntries = len(d.TOC)
	j.UpdatedAt = time.Now()
}

// Result returns the completed deck, or nil while the job is in flight.
func (j *Job) Result() *deck.Deck {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.result
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID       string    `json:"job_id"`
	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Filename string    `json:"filename"`
	Progress Progress  `json:"progress"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	return JobSnapshot{
		ID:       j.ID,
		Status:   j.Status,
		Phase:    j.Phase,
		Filename: j.Filename,
		Progress: Progress{
			SlideCount: j.Progress.SlideCount,
			NavEntries: j.Progress.NavEntries,
			TOCEntries: j.Progress.TOCEntries,
			Errors:     errs,
		},
	}
}
