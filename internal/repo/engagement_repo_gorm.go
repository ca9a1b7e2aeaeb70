package repo

import (
	"errors"

	"gorm.io/gorm"

	"cardlink/internal/domain"
)

type PollRepo struct{ db *gorm.DB }

func NewPollRepo(db *gorm.DB) *PollRepo { return &PollRepo{db: db} }

func (r *PollRepo) AddVote(v *domain.PollVote) error { return r.db.Create(v).Error }

func (r *PollRepo) Counts(slug, cardID string) (map[int]int, error) {
	type row struct {
		OptionIndex int
		Votes       int
	}
	var rows []row
	err := r.db.Model(&domain.PollVote{}).
		Select("option_index, COUNT(*) AS votes").
		Where("profile_slug = ? AND card_id = ?", slug, cardID).
		Group("option_index").
		Order("option_index").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[int]int, len(rows))
	for _, r := range rows {
		counts[r.OptionIndex] = r.Votes
	}
	return counts, nil
}

type SubscriberRepo struct{ db *gorm.DB }

func NewSubscriberRepo(db *gorm.DB) *SubscriberRepo { return &SubscriberRepo{db: db} }

func (r *SubscriberRepo) Add(s *domain.Subscriber) (bool, error) {
	err := translateDup(r.db.Create(s).Error)
	if errors.Is(err, domain.ErrDuplicateKey) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
