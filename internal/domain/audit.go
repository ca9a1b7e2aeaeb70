package domain

import "time"

// AuditEntry 管理操作审计。写失败只记日志，绝不影响主操作。
type AuditEntry struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	AdminID   string    `gorm:"index;size:36;not null" json:"adminId"`
	Action    string    `gorm:"size:32;not null" json:"action"`
	TargetID  string    `gorm:"size:36" json:"targetId,omitempty"`
	Metadata  string    `gorm:"type:text;not null;default:'{}'" json:"metadata"`
	CreatedAt time.Time `json:"createdAt"`
}

func (AuditEntry) TableName() string { return "audit_log" }

type AuditWithAdmin struct {
	AuditEntry `gorm:"embedded"`
	AdminEmail string `json:"adminEmail"`
}

type AuditRepository interface {
	Create(e *AuditEntry) error
	List(offset, limit int) ([]AuditWithAdmin, int64, error)
}
