package services

import (
	"context"
	"testing"
	"time"

	"chefhire_backend/internal/models"
	"chefhire_backend/internal/repositories"
	"chefhire_backend/internal/services/dto"
	"chefhire_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnnouncementRepo struct {
	items map[string]*models.Announcement
	next  int
}

func newFakeAnnouncementRepo() *fakeAnnouncementRepo {
	return &fakeAnnouncementRepo{items: map[string]*models.Announcement{}}
}

func (f *fakeAnnouncementRepo) Create(a *models.Announcement) error {
	f.next++
	a.ID = "ann-" + time.Now().Format("150405") + string(rune('a'+f.next))
	f.items[a.ID] = a
	return nil
}

func (f *fakeAnnouncementRepo) Update(a *models.Announcement) error {
	if _, ok := f.items[a.ID]; !ok {
		return repositories.ErrAnnouncementNotFound
	}
	f.items[a.ID] = a
	return nil
}

func (f *fakeAnnouncementRepo) Delete(id string) error {
	if _, ok := f.items[id]; !ok {
		return repositories.ErrAnnouncementNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeAnnouncementRepo) FindByID(id string) (*models.Announcement, error) {
	if a, ok := f.items[id]; ok {
		return a, nil
	}
	return nil, repositories.ErrAnnouncementNotFound
}

func (f *fakeAnnouncementRepo) FindAll(page, pageSize int) ([]models.Announcement, int64, error) {
	var out []models.Announcement
	for _, a := range f.items {
		out = append(out, *a)
	}
	return out, int64(len(out)), nil
}

func (f *fakeAnnouncementRepo) FindCurrent(now time.Time) (*models.Announcement, error) {
	var best *models.Announcement
	for _, a := range f.items {
		if !a.ActiveAt(now) {
			continue
		}
		if best == nil || a.Priority > best.Priority {
			best = a
		}
	}
	if best == nil {
		return nil, repositories.ErrAnnouncementNotFound
	}
	return best, nil
}

func announcementRequest(start, end time.Time, priority int) *dto.CreateAnnouncementRequest {
	return &dto.CreateAnnouncementRequest{
		Title:     "Maintenance window",
		Body:      "We will be down briefly.",
		Type:      "info",
		StartDate: start,
		EndDate:   end,
		Priority:  priority,
	}
}

func TestAnnouncementWindowValidation(t *testing.T) {
	svc := NewAnnouncementService(newFakeAnnouncementRepo())
	now := time.Now()

	_, err := svc.Create(context.Background(), "admin-1", announcementRequest(now, now.Add(-time.Hour), 0))
	assert.ErrorIs(t, err, apperrors.ErrAnnouncementWindow)

	_, err = svc.Create(context.Background(), "admin-1", announcementRequest(now, now, 0))
	assert.ErrorIs(t, err, apperrors.ErrAnnouncementWindow, "zero-length window is invalid")
}

func TestGetActiveReturnsHighestPriorityInWindow(t *testing.T) {
	repo := newFakeAnnouncementRepo()
	svc := NewAnnouncementService(repo)
	now := time.Now()

	_, err := svc.Create(context.Background(), "admin-1",
		announcementRequest(now.Add(-time.Hour), now.Add(time.Hour), 1))
	require.NoError(t, err)

	top, err := svc.Create(context.Background(), "admin-1",
		announcementRequest(now.Add(-time.Hour), now.Add(time.Hour), 9))
	require.NoError(t, err)

	// Expired and future windows never win, whatever their priority.
	_, err = svc.Create(context.Background(), "admin-1",
		announcementRequest(now.Add(-3*time.Hour), now.Add(-2*time.Hour), 99))
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), "admin-1",
		announcementRequest(now.Add(2*time.Hour), now.Add(3*time.Hour), 99))
	require.NoError(t, err)

	active, err := svc.GetActive(context.Background())
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, top.ID, active.ID)
	assert.Equal(t, 9, active.Priority)
}

func TestGetActiveWithNoLiveWindow(t *testing.T) {
	svc := NewAnnouncementService(newFakeAnnouncementRepo())

	active, err := svc.GetActive(context.Background())
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestAnnouncementDefaultsDismissible(t *testing.T) {
	repo := newFakeAnnouncementRepo()
	svc := NewAnnouncementService(repo)
	now := time.Now()

	created, err := svc.Create(context.Background(), "admin-1",
		announcementRequest(now, now.Add(time.Hour), 0))
	require.NoError(t, err)
	assert.True(t, created.Dismissible)

	no := false
	req := announcementRequest(now, now.Add(time.Hour), 0)
	req.Dismissible = &no
	created, err = svc.Create(context.Background(), "admin-1", req)
	require.NoError(t, err)
	assert.False(t, created.Dismissible)
}

func TestAnnouncementActiveAtBoundaries(t *testing.T) {
	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC)
	a := &models.Announcement{StartDate: start, EndDate: end}

	assert.True(t, a.ActiveAt(start), "window start is inclusive")
	assert.True(t, a.ActiveAt(end), "window end is inclusive")
	assert.False(t, a.ActiveAt(start.Add(-time.Second)))
	assert.False(t, a.ActiveAt(end.Add(time.Second)))
}
