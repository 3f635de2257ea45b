package ports

import (
	"context"

	"github.com/manhwalog/manhwa-api/internal/core/domain"
)

// AuditRepository persists audit trail entries.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuthEvent) error
}

// AuditRecorder accepts audit events for asynchronous persistence. Record
// never blocks the caller on storage.
type AuditRecorder interface {
	Record(event domain.AuthEvent)
}
