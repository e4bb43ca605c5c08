package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRepositoryWindowing(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()

	today := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	nextWeek := today.AddDate(0, 0, 7)

	first, err := repo.Create(ctx, &CreateAppointmentRequest{
		CompanyID:   "company-1",
		ClientID:    "client-1",
		ScheduledAt: today,
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &CreateAppointmentRequest{
		CompanyID:   "company-1",
		ClientID:    "client-1",
		ScheduledAt: nextWeek,
	})
	require.NoError(t, err)

	dayStart := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	got, err := repo.FirstScheduledInWindow(ctx, "company-1", "client-1", &dayStart, &dayEnd)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	// The window excludes next week's appointment once today's is gone.
	got.Status = StatusConfirmed
	require.NoError(t, repo.Update(ctx, got))

	_, err = repo.FirstScheduledInWindow(ctx, "company-1", "client-1", &dayStart, &dayEnd)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestInMemoryRepositoryScopesByCompany(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()

	appt, err := repo.Create(ctx, &CreateAppointmentRequest{
		CompanyID:   "company-1",
		ClientID:    "client-1",
		ScheduledAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	_, err = repo.GetByID(ctx, "company-2", appt.ID)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	appt.CompanyID = "company-2"
	assert.ErrorIs(t, repo.Update(ctx, appt), ErrAppointmentNotFound)
}

func TestServiceTransitionPersists(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()
	svc := NewService(repo, nil)

	appt, err := repo.Create(ctx, &CreateAppointmentRequest{
		CompanyID:   "company-1",
		ClientID:    "client-1",
		ScheduledAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	confirmed, err := svc.Confirm(ctx, "company-1", appt.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, confirmed.Status)

	stored, err := repo.GetByID(ctx, "company-1", appt.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, stored.Status)

	_, err = svc.Complete(ctx, "company-1", appt.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}
