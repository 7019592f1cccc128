package persist

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// AuditStore records session lifecycle events for operators. A nil
// store is valid and drops everything, so the hot path never branches
// on whether auditing is configured.
type AuditStore struct {
	db  *DB
	log *zap.Logger
}

func NewAuditStore(db *DB, log *zap.Logger) *AuditStore {
	return &AuditStore{db: db, log: log}
}

func (s *AuditStore) record(kind, name, addr, detail string) {
	if s == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_, err := s.db.Pool.Exec(ctx,
		`INSERT INTO session_audit (event, player_name, remote_addr, detail) VALUES ($1, $2, $3, $4)`,
		kind, name, addr, detail)
	if err != nil {
		s.log.Warn("審計寫入失敗", zap.String("event", kind), zap.Error(err))
	}
}

// RecordJoin logs a completed join.
func (s *AuditStore) RecordJoin(name, addr string) {
	s.record("join", name, addr, "")
}

// RecordLeave logs a disconnect.
func (s *AuditStore) RecordLeave(name, addr string) {
	s.record("leave", name, addr, "")
}

// RecordKick logs an anti-cheat kick with its reason.
func (s *AuditStore) RecordKick(name, addr, reason string) {
	s.record("kick", name, addr, reason)
}
