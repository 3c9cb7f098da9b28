// Package audit provides a best-effort, append-only recorder of
// mutating actions. Writes are batched asynchronously and failures are
// logged, never propagated to the operation that triggered them.
package audit

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/geotracker/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Actions recorded in the audit log.
const (
	ActionCreate       = "CREATE"
	ActionUpdate       = "UPDATE"
	ActionDelete       = "DELETE"
	ActionLogin        = "LOGIN"
	ActionUpdateStatus = "UPDATE_STATUS"
	ActionCreateVote   = "CREATE_VOTE"
	ActionUpdateVote   = "UPDATE_VOTE"
	ActionDeleteVote   = "DELETE_VOTE"
)

type Recorder struct {
	db     *gorm.DB
	mu     sync.Mutex
	buffer []models.AuditLog
	ticker *time.Ticker
	done   chan struct{}
	wg     sync.WaitGroup
}

func NewRecorder(db *gorm.DB) *Recorder {
	r := &Recorder{
		db:     db,
		buffer: make([]models.AuditLog, 0, 50),
		ticker: time.NewTicker(5 * time.Second),
		done:   make(chan struct{}),
	}
	r.wg.Add(1)
	go r.flushLoop()
	return r
}

// Record buffers an audit entry. oldValues and newValues are snapshot
// objects serialized to JSON; a nil snapshot is stored as NULL.
func (r *Recorder) Record(userID *uuid.UUID, action, tableName, recordID string, oldValues, newValues interface{}, ip string) {
	entry := models.AuditLog{
		ID:        uuid.New(),
		UserID:    userID,
		Action:    action,
		TableName: tableName,
		RecordID:  recordID,
		OldValues: marshalValues(oldValues),
		NewValues: marshalValues(newValues),
		IPAddress: ip,
		CreatedAt: time.Now().UTC(),
	}

	r.mu.Lock()
	r.buffer = append(r.buffer, entry)
	needFlush := len(r.buffer) >= 50
	r.mu.Unlock()

	if needFlush {
		go r.Flush()
	}
}

// Flush writes all buffered entries. Errors are logged and the batch
// is dropped; audit logging never blocks or fails the primary
// operation.
func (r *Recorder) Flush() {
	r.mu.Lock()
	if len(r.buffer) == 0 {
		r.mu.Unlock()
		return
	}
	batch := r.buffer
	r.buffer = make([]models.AuditLog, 0, 50)
	r.mu.Unlock()

	if err := r.db.CreateInBatches(batch, 50).Error; err != nil {
		slog.Error("failed to flush audit log", "error", err, "count", len(batch))
	}
}

// Stop flushes remaining entries and terminates the background loop.
func (r *Recorder) Stop() {
	r.ticker.Stop()
	close(r.done)
	r.wg.Wait()
}

func (r *Recorder) flushLoop() {
	defer r.wg.Done()
	for {
		select {
		case <-r.ticker.C:
			r.Flush()
		case <-r.done:
			r.Flush()
			return
		}
	}
}

func marshalValues(v interface{}) datatypes.JSON {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to marshal audit values", "error", err)
		return nil
	}
	return datatypes.JSON(b)
}
