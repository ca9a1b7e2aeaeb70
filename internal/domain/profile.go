package domain

import "time"

const DefaultCardLimit = 10

// Profile 公开主页。slug 一经创建不可变更，唯一性由数据库唯一索引兜底。
type Profile struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Slug         string    `gorm:"uniqueIndex;size:50;not null" json:"slug"`
	OwnerID      string    `gorm:"index;size:36;not null" json:"ownerId"`
	BusinessName string    `gorm:"size:200;not null" json:"businessName"`
	Tagline      string    `gorm:"size:300" json:"tagline"`
	Bio          string    `gorm:"size:1000" json:"bio"`
	Initials     string    `gorm:"size:3" json:"initials"`
	Emoji        string    `gorm:"size:10" json:"emoji"`
	AvatarStyle  string    `gorm:"size:16;not null;default:initials" json:"avatarStyle"`
	LogoURL      string    `gorm:"size:500" json:"logoUrl,omitempty"`
	Theme        string    `gorm:"size:30;not null;default:midnight" json:"theme"`
	Socials      string    `gorm:"type:text;not null;default:'[]'" json:"-"`
	Cards        string    `gorm:"type:text;not null;default:'[]'" json:"-"`
	CardLimit    int       `gorm:"not null;default:10" json:"cardLimit"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (Profile) TableName() string { return "profiles" }

// ProfileWithOwner 管理端列表用，附带归属用户邮箱
type ProfileWithOwner struct {
	Profile    `gorm:"embedded"`
	OwnerEmail string `json:"ownerEmail"`
}

type ProfileRepository interface {
	Create(p *Profile) error
	FindBySlug(slug string) (*Profile, error)
	FirstByOwner(ownerID string) (*Profile, error)
	ListByOwner(ownerID string) ([]Profile, error)
	CountByOwner(ownerID string) (int64, error)
	ListWithOwner(search string, offset, limit int) ([]ProfileWithOwner, int64, error)
	Update(p *Profile) error
	UpdateCardLimit(slug string, limit int) (*Profile, error)
	Delete(id string) error
	DeleteByOwner(ownerID string) error
}
