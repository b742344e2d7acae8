package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type DishGormRepository struct {
	db *gorm.DB
}

func NewDishGormRepository(db *gorm.DB) *DishGormRepository {
	return &DishGormRepository{db: db}
}

func (r *DishGormRepository) FindByID(ctx context.Context, dishID int64) (model.Dish, error) {
	var d model.Dish
	err := r.db.WithContext(ctx).Where("id = ?", dishID).First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Dish{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Dish{}, err
	}
	return d, nil
}
