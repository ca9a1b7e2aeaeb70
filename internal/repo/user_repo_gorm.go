package repo

import (
	"errors"

	"gorm.io/gorm"

	"cardlink/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(u *domain.User) error { return translateDup(r.db.Create(u).Error) }

func (r *UserRepo) FindByID(id string) (*domain.User, error) {
	var u domain.User
	err := r.db.First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) FindByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.db.First(&u, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) List(search string, offset, limit int) ([]domain.User, int64, error) {
	tx := r.db.Model(&domain.User{})
	if search != "" {
		tx = tx.Where("email LIKE ?", "%"+search+"%")
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var users []domain.User
	if err := tx.Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserRepo) Update(u *domain.User) error { return r.db.Save(u).Error }

func (r *UserRepo) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&domain.User{}).Error
}
