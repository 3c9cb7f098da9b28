package audit

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
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

func TestRecorderFlushWritesBufferedEntries(t *testing.T) {
	gdb, mock := newMockDB(t)
	r := NewRecorder(gdb)
	defer r.Stop()

	actor := uuid.New()
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `audit_logs`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	r.Record(&actor, ActionCreate, "reports", uuid.NewString(),
		nil, map[string]interface{}{"title": "checkpoint"}, "10.0.0.1")
	r.Flush()

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecorderSwallowsWriteFailures(t *testing.T) {
	gdb, mock := newMockDB(t)
	r := NewRecorder(gdb)
	defer r.Stop()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `audit_logs`").
		WillReturnError(errors.New("connection lost"))
	mock.ExpectRollback()

	// Must not panic or surface the error to the caller.
	r.Record(nil, ActionDelete, "report_votes", uuid.NewString(), nil, nil, "")
	r.Flush()

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecorderFlushWithEmptyBufferIsNoop(t *testing.T) {
	gdb, mock := newMockDB(t)
	r := NewRecorder(gdb)
	defer r.Stop()

	r.Flush()

	assert.NoError(t, mock.ExpectationsWereMet())
}
