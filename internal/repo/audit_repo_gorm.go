package repo

import (
	"gorm.io/gorm"

	"cardlink/internal/domain"
)

type AuditRepo struct{ db *gorm.DB }

func NewAuditRepo(db *gorm.DB) *AuditRepo { return &AuditRepo{db: db} }

func (r *AuditRepo) Create(e *domain.AuditEntry) error { return r.db.Create(e).Error }

func (r *AuditRepo) List(offset, limit int) ([]domain.AuditWithAdmin, int64, error) {
	var total int64
	if err := r.db.Model(&domain.AuditEntry{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	// LEFT JOIN：管理员账号事后被删，审计记录也要能看到
	var rows []domain.AuditWithAdmin
	err := r.db.Model(&domain.AuditEntry{}).
		Joins("LEFT JOIN users ON users.id = audit_log.admin_id").
		Select("audit_log.*, users.email AS admin_email").
		Order("audit_log.created_at DESC").
		Offset(offset).Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
