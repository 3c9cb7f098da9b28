package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/geotracker/backend/internal/audit"
	"github.com/geotracker/backend/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return gdb, mock
}

func TestCastCreatesFirstVote(t *testing.T) {
	gdb, mock := newMockDB(t)
	rec := audit.NewRecorder(gdb)
	defer rec.Stop()
	svc := NewVoteService(gdb, rec)

	reportID := uuid.New()
	userID := uuid.New()

	mock.ExpectQuery("SELECT `id` FROM `reports`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(reportID.String()))
	mock.ExpectQuery("SELECT \\* FROM `votes`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `votes`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := svc.Cast(reportID, userID, &dto.VoteRequest{VoteType: "upvote"}, "10.0.0.1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCastReplacesExistingVote(t *testing.T) {
	gdb, mock := newMockDB(t)
	rec := audit.NewRecorder(gdb)
	defer rec.Stop()
	svc := NewVoteService(gdb, rec)

	reportID := uuid.New()
	userID := uuid.New()
	voteID := uuid.New()

	mock.ExpectQuery("SELECT `id` FROM `reports`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(reportID.String()))
	mock.ExpectQuery("SELECT \\* FROM `votes`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "report_id", "user_id", "vote_type", "created_at"}).
			AddRow(voteID.String(), reportID.String(), userID.String(), "upvote", time.Now()))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `votes`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := svc.Cast(reportID, userID, &dto.VoteRequest{VoteType: "downvote"}, "10.0.0.1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCastRejectsUnknownVoteType(t *testing.T) {
	gdb, mock := newMockDB(t)
	rec := audit.NewRecorder(gdb)
	defer rec.Stop()
	svc := NewVoteService(gdb, rec)

	err := svc.Cast(uuid.New(), uuid.New(), &dto.VoteRequest{VoteType: "maybe"}, "")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCastMissingReport(t *testing.T) {
	gdb, mock := newMockDB(t)
	rec := audit.NewRecorder(gdb)
	defer rec.Stop()
	svc := NewVoteService(gdb, rec)

	mock.ExpectQuery("SELECT `id` FROM `reports`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	err := svc.Cast(uuid.New(), uuid.New(), &dto.VoteRequest{VoteType: "verify"}, "")
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestSummaryReturnsPerTypeCounts(t *testing.T) {
	gdb, mock := newMockDB(t)
	rec := audit.NewRecorder(gdb)
	defer rec.Stop()
	svc := NewVoteService(gdb, rec)

	first := uuid.New()
	second := uuid.New()
	mock.ExpectQuery("SELECT reports.id, reports.title").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "type_name", "total_votes",
			"upvotes", "downvotes", "verifications", "disputes",
		}).
			AddRow(first.String(), "road closed", "traffic", 7, 4, 1, 2, 0).
			AddRow(second.String(), "flooding", "hazard", 3, 1, 0, 1, 1))

	rows, err := svc.Summary()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, first, rows[0].ReportID)
	assert.Equal(t, "traffic", rows[0].TypeName)
	assert.Equal(t, 7, rows[0].TotalVotes)
	assert.Equal(t, 4, rows[0].Upvotes)
	assert.Equal(t, 2, rows[0].Verifications)
	assert.Equal(t, 1, rows[1].Disputes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveRejectsForeignVote(t *testing.T) {
	gdb, mock := newMockDB(t)
	rec := audit.NewRecorder(gdb)
	defer rec.Stop()
	svc := NewVoteService(gdb, rec)

	mock.ExpectQuery("SELECT \\* FROM `votes`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	err := svc.Remove(uuid.New(), uuid.New(), "")
	assert.ErrorIs(t, err, ErrVoteNotFound)
}
