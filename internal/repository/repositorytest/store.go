// Package repositorytest menyediakan implementasi repository.Store di memori
// untuk test service dan handler tanpa PostgreSQL.
//
// Transaksi diserialisasi: WithTx memegang lock global, bekerja di salinan
// state, dan hanya menukar state jika fn sukses. Unique constraint
// (email worker, pasangan work/worker pada submission) tetap ditegakkan.
package repositorytest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"wtms/internal/models"
	"wtms/internal/repository"
)

type state struct {
	workers     map[int64]models.Worker
	works       map[int64]models.Work
	submissions map[int64]models.Submission
	nextWorker  int64
	nextWork    int64
	nextSub     int64
}

func newState() *state {
	return &state{
		workers:     map[int64]models.Worker{},
		works:       map[int64]models.Work{},
		submissions: map[int64]models.Submission{},
	}
}

func (s *state) clone() *state {
	c := &state{
		workers:     make(map[int64]models.Worker, len(s.workers)),
		works:       make(map[int64]models.Work, len(s.works)),
		submissions: make(map[int64]models.Submission, len(s.submissions)),
		nextWorker:  s.nextWorker,
		nextWork:    s.nextWork,
		nextSub:     s.nextSub,
	}
	for k, v := range s.workers {
		c.workers[k] = v
	}
	for k, v := range s.works {
		c.works[k] = v
	}
	for k, v := range s.submissions {
		c.submissions[k] = v
	}
	return c
}

type shared struct {
	mu    sync.Mutex
	st    *state
	fail  map[string]error
	calls map[string]int
}

type Store struct {
	sh   *shared
	view *state
	tx   bool
}

var _ repository.Store = (*Store)(nil)

func New() *Store {
	return &Store{sh: &shared{st: newState(), fail: map[string]error{}, calls: map[string]int{}}}
}

// Fail membuat operasi op mengembalikan err sampai Reset dipanggil.
func (s *Store) Fail(op string, err error) {
	s.sh.mu.Lock()
	defer s.sh.mu.Unlock()
	s.sh.fail[op] = err
}

func (s *Store) Reset() {
	s.sh.mu.Lock()
	defer s.sh.mu.Unlock()
	s.sh.fail = map[string]error{}
}

// Calls mengembalikan berapa kali op dipanggil.
func (s *Store) Calls(op string) int {
	s.sh.mu.Lock()
	defer s.sh.mu.Unlock()
	return s.sh.calls[op]
}

// enter mengunci store (kecuali di dalam transaksi) dan mencatat pemanggilan op.
func (s *Store) enter(op string) (*state, func(), error) {
	unlock := func() {}
	if !s.tx {
		s.sh.mu.Lock()
		unlock = s.sh.mu.Unlock
	}
	s.sh.calls[op]++
	if err := s.sh.fail[op]; err != nil {
		unlock()
		return nil, func() {}, fmt.Errorf("%w: %s: %w", models.ErrPersistence, op, err)
	}
	st := s.view
	if st == nil {
		st = s.sh.st
	}
	return st, unlock, nil
}

func (s *Store) WithTx(ctx context.Context, fn func(repository.Store) error) error {
	if s.tx {
		return fn(s)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: begin transaction: %w", models.ErrPersistence, err)
	}
	s.sh.mu.Lock()
	defer s.sh.mu.Unlock()

	view := s.sh.st.clone()
	if err := fn(&Store{sh: s.sh, view: view, tx: true}); err != nil {
		return err
	}
	s.sh.st = view
	return nil
}

// Seeding

func (s *Store) AddWorker(w models.Worker) models.Worker {
	st, unlock, _ := s.enter("seed")
	defer unlock()
	st.nextWorker++
	w.ID = st.nextWorker
	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now()
		w.UpdatedAt = w.CreatedAt
	}
	st.workers[w.ID] = w
	return w
}

func (s *Store) AddWork(w models.Work) models.Work {
	st, unlock, _ := s.enter("seed")
	defer unlock()
	st.nextWork++
	w.ID = st.nextWork
	if w.Status == "" {
		w.Status = models.StatusPending
	}
	if w.DateAssigned.IsZero() {
		w.DateAssigned = models.DateOf(time.Now())
	}
	st.works[w.ID] = w
	return w
}

func (s *Store) AddSubmission(sub models.Submission) models.Submission {
	st, unlock, _ := s.enter("seed")
	defer unlock()
	st.nextSub++
	sub.ID = st.nextSub
	st.submissions[sub.ID] = sub
	return sub
}

// Work mengembalikan work apa adanya di storage.
func (s *Store) Work(id int64) (models.Work, bool) {
	st, unlock, _ := s.enter("inspect")
	defer unlock()
	w, ok := st.works[id]
	return w, ok
}

// Submissions mengembalikan semua submission untuk pasangan work/worker.
func (s *Store) Submissions(workID, workerID int64) []models.Submission {
	st, unlock, _ := s.enter("inspect")
	defer unlock()
	var out []models.Submission
	for _, sub := range st.submissions {
		if sub.WorkID == workID && sub.WorkerID == workerID {
			out = append(out, sub)
		}
	}
	return out
}

// Workers

func emailTaken(st *state, email string, except int64) bool {
	for id, w := range st.workers {
		if id != except && strings.EqualFold(w.Email, email) {
			return true
		}
	}
	return false
}

func (s *Store) CreateWorker(_ context.Context, w *models.Worker) error {
	st, unlock, err := s.enter("CreateWorker")
	defer unlock()
	if err != nil {
		return err
	}
	if emailTaken(st, w.Email, 0) {
		return fmt.Errorf("create worker: %w", models.ErrConflict)
	}
	st.nextWorker++
	w.ID = st.nextWorker
	w.CreatedAt = time.Now()
	w.UpdatedAt = w.CreatedAt
	st.workers[w.ID] = *w
	return nil
}

func (s *Store) GetWorker(_ context.Context, id int64) (models.Worker, error) {
	st, unlock, err := s.enter("GetWorker")
	defer unlock()
	if err != nil {
		return models.Worker{}, err
	}
	w, ok := st.workers[id]
	if !ok {
		return models.Worker{}, fmt.Errorf("get worker: %w", models.ErrNotFound)
	}
	return w, nil
}

func (s *Store) GetWorkerByEmail(_ context.Context, email string) (models.Worker, error) {
	st, unlock, err := s.enter("GetWorkerByEmail")
	defer unlock()
	if err != nil {
		return models.Worker{}, err
	}
	for _, w := range st.workers {
		if strings.EqualFold(w.Email, email) {
			return w, nil
		}
	}
	return models.Worker{}, fmt.Errorf("get worker by email: %w", models.ErrNotFound)
}

func (s *Store) WorkerExists(_ context.Context, id int64) (bool, error) {
	st, unlock, err := s.enter("WorkerExists")
	defer unlock()
	if err != nil {
		return false, err
	}
	_, ok := st.workers[id]
	return ok, nil
}

func (s *Store) EmailTakenByOther(_ context.Context, email string, workerID int64) (bool, error) {
	st, unlock, err := s.enter("EmailTakenByOther")
	defer unlock()
	if err != nil {
		return false, err
	}
	return emailTaken(st, email, workerID), nil
}

func (s *Store) UpdateWorker(_ context.Context, w *models.Worker) error {
	st, unlock, err := s.enter("UpdateWorker")
	defer unlock()
	if err != nil {
		return err
	}
	cur, ok := st.workers[w.ID]
	if !ok {
		return fmt.Errorf("update worker: %w", models.ErrNotFound)
	}
	if emailTaken(st, w.Email, w.ID) {
		return fmt.Errorf("update worker: %w", models.ErrConflict)
	}
	// Kolom yang tidak diubah lewat profil.
	w.PasswordHash = cur.PasswordHash
	w.ProfileImage = cur.ProfileImage
	w.CreatedAt = cur.CreatedAt
	w.UpdatedAt = time.Now()
	st.workers[w.ID] = *w
	return nil
}

func (s *Store) UpdateProfileImage(_ context.Context, workerID int64, path string) error {
	st, unlock, err := s.enter("UpdateProfileImage")
	defer unlock()
	if err != nil {
		return err
	}
	w, ok := st.workers[workerID]
	if !ok {
		return fmt.Errorf("update profile image: %w", models.ErrNotFound)
	}
	w.ProfileImage = &path
	w.UpdatedAt = time.Now()
	st.workers[workerID] = w
	return nil
}

// Works

func (s *Store) CreateWork(_ context.Context, w *models.Work) error {
	st, unlock, err := s.enter("CreateWork")
	defer unlock()
	if err != nil {
		return err
	}
	if _, ok := st.workers[w.AssignedTo]; !ok {
		return fmt.Errorf("%w: create work: unknown worker %d", models.ErrPersistence, w.AssignedTo)
	}
	if w.Status == "" {
		w.Status = models.StatusPending
	}
	st.nextWork++
	w.ID = st.nextWork
	w.DateAssigned = models.DateOf(time.Now())
	st.works[w.ID] = *w
	return nil
}

func (s *Store) MarkOverdue(_ context.Context, workerID int64, today models.Date) (int64, error) {
	st, unlock, err := s.enter("MarkOverdue")
	defer unlock()
	if err != nil {
		return 0, err
	}
	var n int64
	for id, w := range st.works {
		if w.AssignedTo == workerID && w.Status == models.StatusPending && !w.DueDate.After(today) {
			w.Status = models.StatusOverdue
			st.works[id] = w
			n++
		}
	}
	return n, nil
}

func (s *Store) ListWorks(_ context.Context, workerID int64) ([]models.WorkItem, error) {
	st, unlock, err := s.enter("ListWorks")
	defer unlock()
	if err != nil {
		return nil, err
	}
	items := []models.WorkItem{}
	for _, w := range st.works {
		if w.AssignedTo != workerID {
			continue
		}
		item := models.WorkItem{
			ID:           w.ID,
			Title:        w.Title,
			Description:  w.Description,
			DateAssigned: w.DateAssigned,
			DueDate:      w.DueDate,
			Status:       w.Status,
		}
		for _, sub := range st.submissions {
			if sub.WorkID == w.ID && sub.WorkerID == workerID {
				id, text, at := sub.ID, sub.SubmissionText, sub.SubmittedAt
				item.SubmissionID, item.SubmissionText, item.SubmittedAt = &id, &text, &at
				break
			}
		}
		items = append(items, item)
	}
	models.SortWorkItems(items)
	return items, nil
}

func (s *Store) GetWorkForUpdate(_ context.Context, workID, workerID int64) (models.Work, error) {
	st, unlock, err := s.enter("GetWorkForUpdate")
	defer unlock()
	if err != nil {
		return models.Work{}, err
	}
	w, ok := st.works[workID]
	if !ok || w.AssignedTo != workerID {
		return models.Work{}, fmt.Errorf("get work: %w", models.ErrNotFound)
	}
	return w, nil
}

func (s *Store) MarkCompleted(_ context.Context, workID, workerID int64) (int64, error) {
	st, unlock, err := s.enter("MarkCompleted")
	defer unlock()
	if err != nil {
		return 0, err
	}
	w, ok := st.works[workID]
	if !ok || w.AssignedTo != workerID {
		return 0, nil
	}
	w.Status = models.StatusCompleted
	st.works[workID] = w
	return 1, nil
}

// Submissions

func (s *Store) LockSubmission(_ context.Context, _, _ int64) error {
	_, unlock, err := s.enter("LockSubmission")
	defer unlock()
	return err
}

func findSubmission(st *state, workID, workerID int64) (models.Submission, bool) {
	for _, sub := range st.submissions {
		if sub.WorkID == workID && sub.WorkerID == workerID {
			return sub, true
		}
	}
	return models.Submission{}, false
}

func (s *Store) GetSubmission(_ context.Context, workID, workerID int64) (models.Submission, error) {
	st, unlock, err := s.enter("GetSubmission")
	defer unlock()
	if err != nil {
		return models.Submission{}, err
	}
	sub, ok := findSubmission(st, workID, workerID)
	if !ok {
		return models.Submission{}, fmt.Errorf("get submission: %w", models.ErrNotFound)
	}
	return sub, nil
}

func (s *Store) InsertSubmission(_ context.Context, sub *models.Submission) error {
	st, unlock, err := s.enter("InsertSubmission")
	defer unlock()
	if err != nil {
		return err
	}
	if _, ok := findSubmission(st, sub.WorkID, sub.WorkerID); ok {
		return fmt.Errorf("insert submission: %w", models.ErrConflict)
	}
	st.nextSub++
	sub.ID = st.nextSub
	st.submissions[sub.ID] = *sub
	return nil
}

func (s *Store) UpdateSubmission(_ context.Context, workID, workerID int64, text string, at time.Time) (models.Submission, error) {
	st, unlock, err := s.enter("UpdateSubmission")
	defer unlock()
	if err != nil {
		return models.Submission{}, err
	}
	sub, ok := findSubmission(st, workID, workerID)
	if !ok {
		return models.Submission{}, fmt.Errorf("update submission: %w", models.ErrNotFound)
	}
	sub.SubmissionText, sub.SubmittedAt = text, at
	st.submissions[sub.ID] = sub
	return sub, nil
}

func (s *Store) UpdateSubmissionByID(_ context.Context, id, workerID int64, text string, at time.Time) (models.Submission, error) {
	st, unlock, err := s.enter("UpdateSubmissionByID")
	defer unlock()
	if err != nil {
		return models.Submission{}, err
	}
	sub, ok := st.submissions[id]
	if !ok || sub.WorkerID != workerID {
		return models.Submission{}, fmt.Errorf("edit submission: %w", models.ErrNotFound)
	}
	sub.SubmissionText, sub.SubmittedAt = text, at
	st.submissions[id] = sub
	return sub, nil
}

func (s *Store) ListSubmissions(_ context.Context, workerID int64) ([]models.SubmissionItem, error) {
	st, unlock, err := s.enter("ListSubmissions")
	defer unlock()
	if err != nil {
		return nil, err
	}
	items := []models.SubmissionItem{}
	for _, sub := range st.submissions {
		if sub.WorkerID != workerID {
			continue
		}
		w := st.works[sub.WorkID]
		items = append(items, models.SubmissionItem{
			SubmissionID:    sub.ID,
			WorkID:          sub.WorkID,
			TaskTitle:       w.Title,
			TaskDescription: w.Description,
			SubmissionText:  sub.SubmissionText,
			SubmittedAt:     sub.SubmittedAt,
			DueDate:         w.DueDate,
			TaskStatus:      w.Status,
		})
	}
	models.SortSubmissionItems(items)
	return items, nil
}
