package domain

import "time"

type PollVote struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProfileSlug string    `gorm:"index:idx_poll_card;size:50;not null" json:"profileSlug"`
	CardID      string    `gorm:"index:idx_poll_card;size:64;not null" json:"cardId"`
	OptionIndex int       `gorm:"not null" json:"optionIndex"`
	VoterIP     string    `gorm:"size:64" json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (PollVote) TableName() string { return "poll_votes" }

type Subscriber struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProfileSlug string    `gorm:"uniqueIndex:idx_sub_once;size:50;not null" json:"profileSlug"`
	CardID      string    `gorm:"uniqueIndex:idx_sub_once;size:64;not null" json:"cardId"`
	Email       string    `gorm:"uniqueIndex:idx_sub_once;size:254;not null" json:"email"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (Subscriber) TableName() string { return "email_subscribers" }

type PollRepository interface {
	AddVote(v *PollVote) error
	Counts(slug, cardID string) (map[int]int, error)
}

type SubscriberRepository interface {
	// Add 返回 false 表示该邮箱已订阅过（幂等）
	Add(s *Subscriber) (bool, error)
}
