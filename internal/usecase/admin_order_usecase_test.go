package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newAdminMocks() (*txManagerMock, *auditRepoMock, *orderRepoMock, *userRepoMock) {
	tx := new(txManagerMock)
	audit := new(auditRepoMock)
	ordersRepo := new(orderRepoMock)
	usersRepo := new(userRepoMock)

	tx.Repos = &txReposMock{
		orders: ordersRepo,
		users:  usersRepo,
	}
	tx.On("WithinTx", mock.Anything).Return(nil)

	return tx, audit, ordersRepo, usersRepo
}

func TestAdminOrderUsecase_List_InvalidPage(t *testing.T) {
	tx, audit, _, _ := newAdminMocks()
	uc := usecase.NewAdminOrderUsecase(tx, audit, &fixedClock{t: testNow})

	_, err := uc.List(context.Background(), repo.AdminOrderListFilter{Page: 0, Limit: 20})
	assertHTTPCode(t, err, http.StatusBadRequest, usecase.CodeValidationError)

	_, err = uc.List(context.Background(), repo.AdminOrderListFilter{Page: 1, Limit: 0})
	assertHTTPCode(t, err, http.StatusBadRequest, usecase.CodeValidationError)
}

func TestAdminOrderUsecase_List_BombFilter(t *testing.T) {
	tx, audit, ordersRepo, _ := newAdminMocks()

	f := repo.AdminOrderListFilter{Page: 1, Limit: 20, BombOnly: true}
	rows := []repo.AdminOrderRow{
		{Order: model.Order{ID: 10, Status: model.OrderStatusBomb}, UserName: "An", IsFlagged: true, BoomCount: 2},
	}
	ordersRepo.On("ListAdmin", mock.Anything, f).Return(rows, int64(1), nil)

	uc := usecase.NewAdminOrderUsecase(tx, audit, &fixedClock{t: testNow})

	out, err := uc.List(context.Background(), f)
	assert.NoError(t, err)
	if assert.Len(t, out.Orders, 1) {
		assert.Equal(t, "An", out.Orders[0].UserName)
		assert.Equal(t, 2, out.Orders[0].BoomCount)
	}
	assert.Equal(t, int64(1), out.Pagination.TotalPages)
}

func TestAdminOrderUsecase_ConfirmBomb_FirstIncrement(t *testing.T) {
	tx, audit, ordersRepo, usersRepo := newAdminMocks()

	ordersRepo.On("FindByID", mock.Anything, int64(10)).
		Return(model.Order{ID: 10, UserID: 7, Status: model.OrderStatusBomb}, nil)
	usersRepo.On("FindByID", mock.Anything, int64(7)).
		Return(model.User{ID: 7, BoomCount: 0, IsFlagged: false}, nil)

	//1回目はboom_count=1、フラグはまだ立たない
	usersRepo.On("UpdateBoomStatus", mock.Anything, int64(7), 1, false).Return(nil)
	audit.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionConfirmBombOrder && l.ResourceID == 10 && l.ActorUserID == 99
	})).Return(nil)

	uc := usecase.NewAdminOrderUsecase(tx, audit, &fixedClock{t: testNow})

	err := uc.ConfirmBomb(context.Background(), 99, 10)
	assert.NoError(t, err)

	usersRepo.AssertExpectations(t)
	audit.AssertExpectations(t)
}

func TestAdminOrderUsecase_ConfirmBomb_SecondIncrementFlags(t *testing.T) {
	tx, audit, ordersRepo, usersRepo := newAdminMocks()

	ordersRepo.On("FindByID", mock.Anything, int64(11)).
		Return(model.Order{ID: 11, UserID: 7, Status: model.OrderStatusBomb}, nil)
	usersRepo.On("FindByID", mock.Anything, int64(7)).
		Return(model.User{ID: 7, BoomCount: 1, IsFlagged: false}, nil)

	//2回目で閾値に到達してフラグが立つ
	usersRepo.On("UpdateBoomStatus", mock.Anything, int64(7), 2, true).Return(nil)
	audit.On("Create", mock.Anything, mock.Anything).Return(nil)

	uc := usecase.NewAdminOrderUsecase(tx, audit, &fixedClock{t: testNow})

	err := uc.ConfirmBomb(context.Background(), 99, 11)
	assert.NoError(t, err)

	usersRepo.AssertExpectations(t)
}

func TestAdminOrderUsecase_ConfirmBomb_FlagNeverCleared(t *testing.T) {
	tx, audit, ordersRepo, usersRepo := newAdminMocks()

	//すでにフラグ付きのユーザーはフラグ付きのまま
	ordersRepo.On("FindByID", mock.Anything, int64(12)).
		Return(model.Order{ID: 12, UserID: 8}, nil)
	usersRepo.On("FindByID", mock.Anything, int64(8)).
		Return(model.User{ID: 8, BoomCount: 3, IsFlagged: true}, nil)
	usersRepo.On("UpdateBoomStatus", mock.Anything, int64(8), 4, true).Return(nil)
	audit.On("Create", mock.Anything, mock.Anything).Return(nil)

	uc := usecase.NewAdminOrderUsecase(tx, audit, &fixedClock{t: testNow})

	assert.NoError(t, uc.ConfirmBomb(context.Background(), 99, 12))
	usersRepo.AssertExpectations(t)
}

func TestAdminOrderUsecase_ConfirmBomb_OrderMissing(t *testing.T) {
	tx, audit, ordersRepo, usersRepo := newAdminMocks()

	ordersRepo.On("FindByID", mock.Anything, int64(404)).
		Return(model.Order{}, repo.ErrNotFound)

	uc := usecase.NewAdminOrderUsecase(tx, audit, &fixedClock{t: testNow})

	err := uc.ConfirmBomb(context.Background(), 99, 404)
	assertHTTPCode(t, err, http.StatusBadRequest, usecase.CodeOrderNotFound)

	usersRepo.AssertNotCalled(t, "UpdateBoomStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	audit.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdminOrderUsecase_UnflagUser(t *testing.T) {
	tx, audit, _, usersRepo := newAdminMocks()

	usersRepo.On("Unflag", mock.Anything, int64(7)).Return(nil)
	audit.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionUnflagUser && l.ResourceID == 7
	})).Return(nil)

	uc := usecase.NewAdminOrderUsecase(tx, audit, &fixedClock{t: testNow})

	assert.NoError(t, uc.UnflagUser(context.Background(), 99, 7))
	usersRepo.AssertExpectations(t)
	audit.AssertExpectations(t)
}

func TestAdminOrderUsecase_UnflagUser_MissingUserStillSucceeds(t *testing.T) {
	tx, audit, _, usersRepo := newAdminMocks()

	//存在しないIDでもUnflagはエラーにしない仕様
	usersRepo.On("Unflag", mock.Anything, int64(12345)).Return(nil)
	audit.On("Create", mock.Anything, mock.Anything).Return(nil)

	uc := usecase.NewAdminOrderUsecase(tx, audit, &fixedClock{t: testNow})

	assert.NoError(t, uc.UnflagUser(context.Background(), 99, 12345))
}
