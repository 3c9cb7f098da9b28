package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/geotracker/backend/internal/audit"
	"github.com/geotracker/backend/internal/config"
	"github.com/geotracker/backend/internal/dto"
	"github.com/geotracker/backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveValidityDefaults(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	from, until, err := resolveValidity(0, 0, now)
	require.NoError(t, err)
	assert.Equal(t, now, from)
	assert.Equal(t, int64(10800), int64(until.Sub(from).Seconds()))
}

func TestResolveValidityExplicitWindow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	fromUnix := now.Add(time.Hour).Unix()
	untilUnix := now.Add(6 * time.Hour).Unix()

	from, until, err := resolveValidity(fromUnix, untilUnix, now)
	require.NoError(t, err)
	assert.Equal(t, fromUnix, from.Unix())
	assert.Equal(t, untilUnix, until.Unix())
}

func TestResolveValidityFromOnly(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	fromUnix := now.Add(2 * time.Hour).Unix()

	from, until, err := resolveValidity(fromUnix, 0, now)
	require.NoError(t, err)
	assert.Equal(t, fromUnix, from.Unix())
	assert.Equal(t, 3*time.Hour, until.Sub(from))
}

func TestResolveValidityRejectsInvertedWindow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	_, _, err := resolveValidity(now.Unix(), now.Add(-time.Hour).Unix(), now)
	assert.ErrorIs(t, err, ErrInvalidValidity)
}

func TestResolveValidityAllowsZeroLengthWindow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	from, until, err := resolveValidity(now.Unix(), now.Unix(), now)
	require.NoError(t, err)
	assert.Equal(t, from, until)
}

func newReportService(t *testing.T) (*ReportService, sqlmock.Sqlmock) {
	t.Helper()

	gdb, mock := newMockDB(t)
	rec := audit.NewRecorder(gdb)
	t.Cleanup(rec.Stop)

	return NewReportService(gdb, &config.Config{MaxUploadSizeMB: 10}, nil, rec), mock
}

func TestCreateRequiresCoordinates(t *testing.T) {
	svc, mock := newReportService(t)
	typeID := uuid.NewString()

	_, err := svc.Create(context.Background(), nil,
		&dto.CreateReportRequest{TypeID: typeID}, nil, "")
	assert.ErrorIs(t, err, ErrInvalidLatitude)

	lat := 47.5
	_, err = svc.Create(context.Background(), nil,
		&dto.CreateReportRequest{Lat: &lat, TypeID: typeID}, nil, "")
	assert.ErrorIs(t, err, ErrInvalidLongitude)

	// Rejected before any query or write was attempted.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEditForbiddenForNonOwner(t *testing.T) {
	svc, mock := newReportService(t)

	reportID := uuid.New()
	owner := uuid.New()
	intruder := uuid.New()

	mock.ExpectQuery("SELECT \\* FROM `reports`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "status"}).
			AddRow(reportID.String(), owner.String(), "road closed", "pending"))

	title := "changed"
	err := svc.Edit(context.Background(), reportID, intruder,
		&dto.EditReportRequest{Title: &title}, nil, "10.0.0.2")
	assert.ErrorIs(t, err, ErrNotOwner)

	// No UPDATE reached the database.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCascadesToVotesAndComments(t *testing.T) {
	svc, mock := newReportService(t)

	reportID := uuid.New()
	owner := uuid.New()
	actor := &models.User{ID: owner, Role: models.RoleUser}

	mock.ExpectQuery("SELECT \\* FROM `reports`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "status"}).
			AddRow(reportID.String(), owner.String(), "road closed", "pending"))
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `votes`").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM `comments`").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM `reports`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := svc.Delete(context.Background(), reportID, actor, "10.0.0.1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteForbiddenForNonOwner(t *testing.T) {
	svc, mock := newReportService(t)

	reportID := uuid.New()
	owner := uuid.New()
	actor := &models.User{ID: uuid.New(), Role: models.RoleUser}

	mock.ExpectQuery("SELECT \\* FROM `reports`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "status"}).
			AddRow(reportID.String(), owner.String(), "road closed", "pending"))

	err := svc.Delete(context.Background(), reportID, actor, "10.0.0.1")
	assert.ErrorIs(t, err, ErrNotOwner)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnnotateLabels(t *testing.T) {
	rows := []dto.ReportRow{
		{VoteCount: 5, UpvoteCount: 5},
		{VoteCount: 3, VerifyCount: 3},
		{VoteCount: 6, UpvoteCount: 4, VerifyCount: 2},
		{},
	}

	annotateLabels(rows)

	assert.Equal(t, "verified", rows[0].VerificationLabel)
	assert.Equal(t, "verified", rows[1].VerificationLabel)
	assert.Equal(t, "pending", rows[2].VerificationLabel)
	assert.Equal(t, "unverified", rows[3].VerificationLabel)
}
