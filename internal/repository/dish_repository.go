package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// メニュー参照だけを約束。カタログのCRUDはここでは扱わない。
type DishRepository interface {
	FindByID(ctx context.Context, dishID int64) (model.Dish, error)
}
