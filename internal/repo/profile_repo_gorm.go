package repo

import (
	"errors"

	"gorm.io/gorm"

	"cardlink/internal/domain"
)

type ProfileRepo struct{ db *gorm.DB }

func NewProfileRepo(db *gorm.DB) *ProfileRepo { return &ProfileRepo{db: db} }

func (r *ProfileRepo) Create(p *domain.Profile) error { return translateDup(r.db.Create(p).Error) }

func (r *ProfileRepo) FindBySlug(slug string) (*domain.Profile, error) {
	var p domain.Profile
	err := r.db.First(&p, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepo) FirstByOwner(ownerID string) (*domain.Profile, error) {
	var p domain.Profile
	err := r.db.Order("created_at ASC").First(&p, "owner_id = ?", ownerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepo) ListByOwner(ownerID string) ([]domain.Profile, error) {
	var ps []domain.Profile
	err := r.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&ps).Error
	return ps, err
}

func (r *ProfileRepo) CountByOwner(ownerID string) (int64, error) {
	var n int64
	err := r.db.Model(&domain.Profile{}).Where("owner_id = ?", ownerID).Count(&n).Error
	return n, err
}

func (r *ProfileRepo) ListWithOwner(search string, offset, limit int) ([]domain.ProfileWithOwner, int64, error) {
	q := r.db.Model(&domain.Profile{}).
		Joins("JOIN users ON users.id = profiles.owner_id")
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("profiles.slug LIKE ? OR profiles.business_name LIKE ?", like, like)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []domain.ProfileWithOwner
	err := q.Select("profiles.*, users.email AS owner_email").
		Order("profiles.created_at DESC").
		Offset(offset).Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *ProfileRepo) Update(p *domain.Profile) error { return r.db.Save(p).Error }

func (r *ProfileRepo) UpdateCardLimit(slug string, limit int) (*domain.Profile, error) {
	res := r.db.Model(&domain.Profile{}).Where("slug = ?", slug).Update("card_limit", limit)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.FindBySlug(slug)
}

func (r *ProfileRepo) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&domain.Profile{}).Error
}

func (r *ProfileRepo) DeleteByOwner(ownerID string) error {
	return r.db.Where("owner_id = ?", ownerID).Delete(&domain.Profile{}).Error
}
