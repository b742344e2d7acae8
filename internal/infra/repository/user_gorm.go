package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) FindByID(ctx context.Context, userID int64) (model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where("id = ?", userID).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.User{}, repo.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	return u, nil
}

func (r *UserGormRepository) FindByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.User{}, repo.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	return u, nil
}

func (r *UserGormRepository) Create(ctx context.Context, user model.User) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
		return 0, err
	}
	return user.ID, nil
}

func (r *UserGormRepository) UpdateBoomStatus(ctx context.Context, userID int64, boomCount int, isFlagged bool) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"boom_count": boomCount,
			"is_flagged": isFlagged,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrUserNotFound
	}
	return nil
}

func (r *UserGormRepository) Unflag(ctx context.Context, userID int64) error {
	//対象がいなくても成功扱い（RowsAffectedは見ない）
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Update("is_flagged", false).Error
}
