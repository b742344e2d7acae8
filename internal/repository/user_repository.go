package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	FindByID(ctx context.Context, userID int64) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	Create(ctx context.Context, user model.User) (int64, error)

	//boom_countとis_flaggedをまとめて書き戻す（読んで足して書くのは呼び側）
	UpdateBoomStatus(ctx context.Context, userID int64, boomCount int, isFlagged bool) error

	//無条件にis_flagged=falseにする。対象がいなくてもエラーにしない。
	Unflag(ctx context.Context, userID int64) error
}
