package repository

import (
	"context"

	"github.com/securebank/ledger/pkg/domain"
	repo "github.com/securebank/ledger/pkg/repository"
	"gorm.io/gorm"
)

type auditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates an audit log repository on the given session.
func NewAuditRepository(db *gorm.DB) repo.AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Record(ctx context.Context, e *domain.AuditEvent) error {
	m := &AuditLog{
		ID:         e.ID,
		UserID:     e.UserID,
		Action:     e.Action,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return mapErr(err)
	}
	e.CreatedAt = m.CreatedAt
	return nil
}
