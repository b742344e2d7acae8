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

func newShippingMocks() (*txManagerMock, *orderRepoMock, *paymentRepoMock, *shippingRepoMock, *deliveryLogRepoMock) {
	tx := new(txManagerMock)
	ordersRepo := new(orderRepoMock)
	paymentsRepo := new(paymentRepoMock)
	shippingsRepo := new(shippingRepoMock)
	logsRepo := new(deliveryLogRepoMock)

	tx.Repos = &txReposMock{
		orders:       ordersRepo,
		payments:     paymentsRepo,
		shippings:    shippingsRepo,
		deliveryLogs: logsRepo,
	}
	tx.On("WithinTx", mock.Anything).Return(nil)

	return tx, ordersRepo, paymentsRepo, shippingsRepo, logsRepo
}

func TestShippingUsecase_Assign_Success(t *testing.T) {
	tx, _, _, shippingsRepo, logsRepo := newShippingMocks()

	shippingsRepo.On("Claim", mock.Anything, int64(10), int64(5), testNow).Return(true, nil)
	logsRepo.On("Create", mock.Anything, mock.MatchedBy(func(l model.DeliveryLog) bool {
		return l.OrderID == 10 && l.Status == model.DeliveryLogAssigned && l.Timestamp.Equal(testNow)
	})).Return(nil)

	uc := usecase.NewShippingUsecase(tx, &fixedClock{t: testNow})

	err := uc.Assign(context.Background(), 5, 10)
	assert.NoError(t, err)

	shippingsRepo.AssertExpectations(t)
	logsRepo.AssertExpectations(t)
}

func TestShippingUsecase_Assign_AlreadyClaimed(t *testing.T) {
	tx, _, _, shippingsRepo, logsRepo := newShippingMocks()

	//別のshipperが先に取ったのでRowsAffected=0
	shippingsRepo.On("Claim", mock.Anything, int64(10), int64(6), testNow).Return(false, nil)

	uc := usecase.NewShippingUsecase(tx, &fixedClock{t: testNow})

	err := uc.Assign(context.Background(), 6, 10)
	assertHTTPCode(t, err, http.StatusForbidden, usecase.CodeUnauthorizedOrder)

	//ガードに落ちたらログは書かない
	logsRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestShippingUsecase_OnWay_Success(t *testing.T) {
	tx, ordersRepo, paymentsRepo, shippingsRepo, logsRepo := newShippingMocks()

	shippingsRepo.On("UpdateStatusIf", mock.Anything, int64(10), int64(5),
		[]model.ShippingStatus{model.ShippingStatusPending, model.ShippingStatusReturned},
		model.ShippingStatusOnWay, testNow).Return(true, nil)
	logsRepo.On("Create", mock.Anything, mock.MatchedBy(func(l model.DeliveryLog) bool {
		return l.Status == model.DeliveryLogDelivering && l.Note == nil
	})).Return(nil)

	uc := usecase.NewShippingUsecase(tx, &fixedClock{t: testNow})

	err := uc.OnWay(context.Background(), 5, 10)
	assert.NoError(t, err)

	//onwayはOrder/Paymentには触らない
	ordersRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	paymentsRepo.AssertNotCalled(t, "MarkCompleted", mock.Anything, mock.Anything, mock.Anything)
}

func TestShippingUsecase_Delivered_Success(t *testing.T) {
	tx, ordersRepo, paymentsRepo, shippingsRepo, logsRepo := newShippingMocks()

	shippingsRepo.On("UpdateStatusIf", mock.Anything, int64(10), int64(5),
		[]model.ShippingStatus{model.ShippingStatusOnWay},
		model.ShippingStatusDelivered, testNow).Return(true, nil)
	ordersRepo.On("UpdateStatus", mock.Anything, int64(10), model.OrderStatusSuccess).Return(nil)
	paymentsRepo.On("MarkCompleted", mock.Anything, int64(10), testNow).Return(nil)
	logsRepo.On("Create", mock.Anything, mock.MatchedBy(func(l model.DeliveryLog) bool {
		return l.Status == model.DeliveryLogSuccess && l.Timestamp.Equal(testNow)
	})).Return(nil)

	uc := usecase.NewShippingUsecase(tx, &fixedClock{t: testNow})

	err := uc.Delivered(context.Background(), 5, 10)
	assert.NoError(t, err)

	ordersRepo.AssertExpectations(t)
	paymentsRepo.AssertExpectations(t)
	logsRepo.AssertExpectations(t)
}

func TestShippingUsecase_FailurePath(t *testing.T) {
	//on_way → failed → returned → bomb の一連の流れ
	tx, ordersRepo, paymentsRepo, shippingsRepo, logsRepo := newShippingMocks()

	shippingsRepo.On("UpdateStatusIf", mock.Anything, int64(10), int64(5),
		[]model.ShippingStatus{model.ShippingStatusOnWay},
		model.ShippingStatusFailed, testNow).Return(true, nil)
	shippingsRepo.On("UpdateStatusIf", mock.Anything, int64(10), int64(5),
		[]model.ShippingStatus{model.ShippingStatusFailed},
		model.ShippingStatusReturned, testNow).Return(true, nil)
	shippingsRepo.On("UpdateStatusIf", mock.Anything, int64(10), int64(5),
		[]model.ShippingStatus{model.ShippingStatusReturned, model.ShippingStatusOnWay},
		model.ShippingStatusBomb, testNow).Return(true, nil)

	ordersRepo.On("UpdateStatus", mock.Anything, int64(10), model.OrderStatusBomb).Return(nil)

	logsRepo.On("Create", mock.Anything, mock.MatchedBy(func(l model.DeliveryLog) bool {
		return l.Status == model.DeliveryLogFailed1 && l.Note != nil && *l.Note == "customer not home"
	})).Return(nil).Once()
	logsRepo.On("Create", mock.Anything, mock.MatchedBy(func(l model.DeliveryLog) bool {
		return l.Status == model.DeliveryLogRedelivery
	})).Return(nil).Once()
	logsRepo.On("Create", mock.Anything, mock.MatchedBy(func(l model.DeliveryLog) bool {
		return l.Status == model.DeliveryLogFailed2 && l.Note != nil && *l.Note == "refused again"
	})).Return(nil).Once()

	uc := usecase.NewShippingUsecase(tx, &fixedClock{t: testNow})

	assert.NoError(t, uc.Failed1(context.Background(), 5, 10, "customer not home"))
	assert.NoError(t, uc.Redelivery(context.Background(), 5, 10, "retry tomorrow"))
	assert.NoError(t, uc.Failed2(context.Background(), 5, 10, "refused again"))

	//bombになってもPaymentはpendingのまま
	paymentsRepo.AssertNotCalled(t, "MarkCompleted", mock.Anything, mock.Anything, mock.Anything)

	shippingsRepo.AssertExpectations(t)
	logsRepo.AssertExpectations(t)
	ordersRepo.AssertExpectations(t)
}

func TestShippingUsecase_Redelivered_CompletesPayment(t *testing.T) {
	tx, ordersRepo, paymentsRepo, shippingsRepo, logsRepo := newShippingMocks()

	shippingsRepo.On("UpdateStatusIf", mock.Anything, int64(10), int64(5),
		[]model.ShippingStatus{model.ShippingStatusReturned},
		model.ShippingStatusDelivered, testNow).Return(true, nil)
	ordersRepo.On("UpdateStatus", mock.Anything, int64(10), model.OrderStatusSuccess).Return(nil)
	paymentsRepo.On("MarkCompleted", mock.Anything, int64(10), testNow).Return(nil)
	logsRepo.On("Create", mock.Anything, mock.MatchedBy(func(l model.DeliveryLog) bool {
		return l.Status == model.DeliveryLogSuccess
	})).Return(nil)

	uc := usecase.NewShippingUsecase(tx, &fixedClock{t: testNow})

	assert.NoError(t, uc.Redelivered(context.Background(), 5, 10))
	paymentsRepo.AssertExpectations(t)
}

func TestShippingUsecase_GuardFailure_NoSideEffects(t *testing.T) {
	//遷移表にない(state, operation)の組はガードに落ちて何も書かれない
	tx, ordersRepo, paymentsRepo, shippingsRepo, logsRepo := newShippingMocks()

	shippingsRepo.On("UpdateStatusIf", mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything).Return(false, nil)

	uc := usecase.NewShippingUsecase(tx, &fixedClock{t: testNow})

	for name, op := range map[string]func() error{
		"delivered":   func() error { return uc.Delivered(context.Background(), 5, 10) },
		"failed1":     func() error { return uc.Failed1(context.Background(), 5, 10, "") },
		"redelivery":  func() error { return uc.Redelivery(context.Background(), 5, 10, "") },
		"redelivered": func() error { return uc.Redelivered(context.Background(), 5, 10) },
		"failed2":     func() error { return uc.Failed2(context.Background(), 5, 10, "") },
		"onway":       func() error { return uc.OnWay(context.Background(), 5, 10) },
	} {
		t.Run(name, func(t *testing.T) {
			assertHTTPCode(t, op(), http.StatusForbidden, usecase.CodeUnauthorizedOrder)
		})
	}

	logsRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	ordersRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	paymentsRepo.AssertNotCalled(t, "MarkCompleted", mock.Anything, mock.Anything, mock.Anything)
}

func TestShippingUsecase_ListAvailable(t *testing.T) {
	tx, _, _, shippingsRepo, _ := newShippingMocks()

	rows := []repo.AvailableOrderRow{
		{OrderID: 12, TotalAmount: 90000, Address: "12 Nguyen Hue, District 1", CustomerName: "An"},
	}
	shippingsRepo.On("ListAvailable", mock.Anything).Return(rows, nil)

	uc := usecase.NewShippingUsecase(tx, &fixedClock{t: testNow})

	out, err := uc.ListAvailable(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, rows, out)
}
