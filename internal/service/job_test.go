package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbanserve/urbanserve/internal/broadcast"
	"github.com/urbanserve/urbanserve/internal/domain"
)

type fakeJobRepo struct {
	jobs map[uuid.UUID]*domain.Job
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[uuid.UUID]*domain.Job)}
}

func (f *fakeJobRepo) Create(_ context.Context, job *domain.Job) error {
	f.jobs[job.ID] = job
	return nil
}

func (f *fakeJobRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Job, error) {
	return f.jobs[id], nil
}

func (f *fakeJobRepo) List(_ context.Context) ([]*domain.Job, error) {
	out := make([]*domain.Job, 0, len(f.jobs))
	for _, j := range f.jobs {
		out = append(out, j)
	}
	return out, nil
}

func (f *fakeJobRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domain.JobStatus) error {
	job, ok := f.jobs[id]
	if !ok {
		return domain.ErrNotFound
	}
	job.Status = status
	return nil
}

func (f *fakeJobRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.jobs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.jobs, id)
	return nil
}

func (f *fakeJobRepo) GetStats(_ context.Context) (*domain.JobStats, error) {
	stats := &domain.JobStats{}
	for _, j := range f.jobs {
		stats.Total++
		switch j.Status {
		case domain.JobStatusPending:
			stats.Pending++
		case domain.JobStatusConfirmed:
			stats.Confirmed++
		case domain.JobStatusInProgress:
			stats.Running++
		case domain.JobStatusCompleted:
			stats.Completed++
		case domain.JobStatusCancelled:
			stats.Cancelled++
		}
	}
	return stats, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[uuid.UUID]*domain.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *domain.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeWorkerRepo struct {
	workers map[uuid.UUID]*domain.Worker
}

func newFakeWorkerRepo(workers ...*domain.Worker) *fakeWorkerRepo {
	f := &fakeWorkerRepo{workers: make(map[uuid.UUID]*domain.Worker)}
	for _, w := range workers {
		f.workers[w.ID] = w
	}
	return f
}

func (f *fakeWorkerRepo) Create(_ context.Context, w *domain.Worker) error {
	f.workers[w.ID] = w
	return nil
}

func (f *fakeWorkerRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Worker, error) {
	return f.workers[id], nil
}

func (f *fakeWorkerRepo) List(_ context.Context) ([]*domain.Worker, error) {
	out := make([]*domain.Worker, 0, len(f.workers))
	for _, w := range f.workers {
		out = append(out, w)
	}
	return out, nil
}

func (f *fakeWorkerRepo) Update(_ context.Context, w *domain.Worker) error {
	if _, ok := f.workers[w.ID]; !ok {
		return domain.ErrNotFound
	}
	f.workers[w.ID] = w
	return nil
}

func (f *fakeWorkerRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.workers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.workers, id)
	return nil
}

type fakeLocationRepo struct {
	nearby     []*domain.NearbyWorker
	lastSearch domain.NearbySearch
}

func (f *fakeLocationRepo) Create(_ context.Context, _ *domain.LiveLocation) error { return nil }
func (f *fakeLocationRepo) List(_ context.Context) ([]*domain.LiveLocation, error) {
	return nil, nil
}
func (f *fakeLocationRepo) ListByWorkerID(_ context.Context, _ uuid.UUID) ([]*domain.LiveLocation, error) {
	return nil, nil
}
func (f *fakeLocationRepo) UpsertByWorkerID(_ context.Context, _ *domain.LiveLocation) error {
	return nil
}
func (f *fakeLocationRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }
func (f *fakeLocationRepo) Nearby(_ context.Context, search domain.NearbySearch) ([]*domain.NearbyWorker, error) {
	f.lastSearch = search
	return f.nearby, nil
}
func (f *fakeLocationRepo) DeleteStale(_ context.Context, _ int) (int, error) { return 0, nil }

func testUser() *domain.User {
	return &domain.User{
		ID:        uuid.New(),
		FirstName: "Priya",
		CreatedAt: time.Now().UTC(),
	}
}

func newJobService(jobs *fakeJobRepo, users *fakeUserRepo) *JobService {
	return NewJobService(jobs, users, newFakeWorkerRepo(), &fakeLocationRepo{}, nil, nil)
}

func TestJobCreate(t *testing.T) {
	user := testUser()
	jobs := newFakeJobRepo()
	svc := newJobService(jobs, newFakeUserRepo(user))

	lat, lng := 12.9716, 77.5946
	job, err := svc.Create(context.Background(), &domain.CreateJobRequest{
		UserID: user.ID,
		Lat:    &lat,
		Lng:    &lng,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.JobStatusPending, job.Status)
	assert.Equal(t, user.ID, job.UserID)
	assert.Len(t, jobs.jobs, 1)
}

func TestJobCreateUnknownUser(t *testing.T) {
	svc := newJobService(newFakeJobRepo(), newFakeUserRepo())

	lat, lng := 12.9716, 77.5946
	_, err := svc.Create(context.Background(), &domain.CreateJobRequest{
		UserID: uuid.New(),
		Lat:    &lat,
		Lng:    &lng,
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestJobUpdateStatus(t *testing.T) {
	user := testUser()
	jobs := newFakeJobRepo()
	svc := newJobService(jobs, newFakeUserRepo(user))

	lat, lng := 12.9716, 77.5946
	job, err := svc.Create(context.Background(), &domain.CreateJobRequest{
		UserID: user.ID,
		Lat:    &lat,
		Lng:    &lng,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), job.ID, domain.JobStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusConfirmed, updated.Status)

	// Skipping confirmation is not a legal move
	_, err = svc.UpdateStatus(context.Background(), job.ID, domain.JobStatusPending)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.UpdateStatus(context.Background(), job.ID, domain.JobStatus("bogus"))
	assert.True(t, domain.IsValidation(err))

	_, err = svc.UpdateStatus(context.Background(), uuid.New(), domain.JobStatusConfirmed)
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestJobNearbyWorkers(t *testing.T) {
	locations := &fakeLocationRepo{
		nearby: []*domain.NearbyWorker{
			{WorkerID: uuid.New(), FirstName: "Asha", DistanceKm: 2.4},
		},
	}
	svc := NewJobService(newFakeJobRepo(), newFakeUserRepo(), newFakeWorkerRepo(), locations, nil, nil)

	workers, err := svc.NearbyWorkers(context.Background(), domain.NearbySearch{
		Lat: 12.9716,
		Lng: 77.5946,
	})
	require.NoError(t, err)
	require.Len(t, workers, 1)

	// Radius falls back to the first broadcast step
	assert.Equal(t, broadcast.RadiusSteps[0], locations.lastSearch.RadiusKm)

	_, err = svc.NearbyWorkers(context.Background(), domain.NearbySearch{Lat: 99, Lng: 0})
	assert.True(t, domain.IsValidation(err))
}
