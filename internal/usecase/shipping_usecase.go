package usecase

import (
	"context"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// 配達ライフサイクルの状態機械。
// 各遷移は1トランザクションで「ガード再確認つき条件付きUPDATE →
// ログ1行追記 → 付随効果」をやり、ガードに落ちたら全部ロールバック。
type ShippingUsecase struct {
	tx    repo.TransactionManager
	clock Clock
}

func NewShippingUsecase(tx repo.TransactionManager, clock Clock) *ShippingUsecase {
	return &ShippingUsecase{tx: tx, clock: clock}
}

// 1遷移の定義。fromに現在状態が含まれ、担当shipperが一致するときだけ通る。
type transition struct {
	from      []model.ShippingStatus
	to        model.ShippingStatus
	logStatus model.DeliveryLogStatus

	//Order.statusへのミラー（空なら触らない）
	orderStatus model.OrderStatus
	//配達成功時はPaymentをcompletedにする
	completePayment bool
}

var (
	transitionOnWay = transition{
		from:      []model.ShippingStatus{model.ShippingStatusPending, model.ShippingStatusReturned},
		to:        model.ShippingStatusOnWay,
		logStatus: model.DeliveryLogDelivering,
	}
	transitionDelivered = transition{
		from:            []model.ShippingStatus{model.ShippingStatusOnWay},
		to:              model.ShippingStatusDelivered,
		logStatus:       model.DeliveryLogSuccess,
		orderStatus:     model.OrderStatusSuccess,
		completePayment: true,
	}
	transitionFailed1 = transition{
		from:      []model.ShippingStatus{model.ShippingStatusOnWay},
		to:        model.ShippingStatusFailed,
		logStatus: model.DeliveryLogFailed1,
	}
	transitionRedelivery = transition{
		from:      []model.ShippingStatus{model.ShippingStatusFailed},
		to:        model.ShippingStatusReturned,
		logStatus: model.DeliveryLogRedelivery,
	}
	transitionRedelivered = transition{
		from:            []model.ShippingStatus{model.ShippingStatusReturned},
		to:              model.ShippingStatusDelivered,
		logStatus:       model.DeliveryLogSuccess,
		orderStatus:     model.OrderStatusSuccess,
		completePayment: true,
	}
	//failed2はreturnedに加えてon_wayからも直接bombに落とせる
	transitionFailed2 = transition{
		from:        []model.ShippingStatus{model.ShippingStatusReturned, model.ShippingStatusOnWay},
		to:          model.ShippingStatusBomb,
		logStatus:   model.DeliveryLogFailed2,
		orderStatus: model.OrderStatusBomb,
	}
)

// ガード失敗は「注文がない」「担当じゃない」「状態が違う」を
// 区別せず同じ403で返す。他shipperの注文の存在を漏らさないため。
func errUnauthorizedOrderAccess() error {
	return NewHTTPError(http.StatusForbidden, CodeUnauthorizedOrder, "order not found or not accessible")
}

// Assign はpendingかつ未アサインの注文を自分の担当にする。
// 状態はpendingのまま、ログはassigned。
func (u *ShippingUsecase) Assign(ctx context.Context, shipperID int64, orderID int64) error {
	if shipperID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, CodeUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return errUnauthorizedOrderAccess()
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		now := u.clock.Now()

		ok, err := r.Shippings().Claim(ctx, orderID, shipperID, now)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternalError, "db error")
		}
		if !ok {
			//別のshipperが先に取ったケースもここに落ちる
			return errUnauthorizedOrderAccess()
		}

		if err := r.DeliveryLogs().Create(ctx, model.DeliveryLog{
			OrderID:   orderID,
			Status:    model.DeliveryLogAssigned,
			Timestamp: now,
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternalError, "db error")
		}
		return nil
	})
}

func (u *ShippingUsecase) OnWay(ctx context.Context, shipperID int64, orderID int64) error {
	return u.apply(ctx, shipperID, orderID, transitionOnWay, nil)
}

func (u *ShippingUsecase) Delivered(ctx context.Context, shipperID int64, orderID int64) error {
	return u.apply(ctx, shipperID, orderID, transitionDelivered, nil)
}

func (u *ShippingUsecase) Failed1(ctx context.Context, shipperID int64, orderID int64, note string) error {
	return u.apply(ctx, shipperID, orderID, transitionFailed1, notePtr(note))
}

func (u *ShippingUsecase) Redelivery(ctx context.Context, shipperID int64, orderID int64, note string) error {
	return u.apply(ctx, shipperID, orderID, transitionRedelivery, notePtr(note))
}

func (u *ShippingUsecase) Redelivered(ctx context.Context, shipperID int64, orderID int64) error {
	return u.apply(ctx, shipperID, orderID, transitionRedelivered, nil)
}

func (u *ShippingUsecase) Failed2(ctx context.Context, shipperID int64, orderID int64, note string) error {
	return u.apply(ctx, shipperID, orderID, transitionFailed2, notePtr(note))
}

func (u *ShippingUsecase) apply(ctx context.Context, shipperID int64, orderID int64, t transition, note *string) error {
	if shipperID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, CodeUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return errUnauthorizedOrderAccess()
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//updated_atとログのtimestampを揃えるため時計は1回だけ読む
		now := u.clock.Now()

		ok, err := r.Shippings().UpdateStatusIf(ctx, orderID, shipperID, t.from, t.to, now)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternalError, "db error")
		}
		if !ok {
			return errUnauthorizedOrderAccess()
		}

		if t.orderStatus != "" {
			if err := r.Orders().UpdateStatus(ctx, orderID, t.orderStatus); err != nil {
				return NewHTTPError(http.StatusInternalServerError, CodeInternalError, "db error")
			}
		}

		if t.completePayment {
			if err := r.Payments().MarkCompleted(ctx, orderID, now); err != nil {
				return NewHTTPError(http.StatusInternalServerError, CodeInternalError, "db error")
			}
		}

		if err := r.DeliveryLogs().Create(ctx, model.DeliveryLog{
			OrderID:   orderID,
			Status:    t.logStatus,
			Note:      note,
			Timestamp: now,
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternalError, "db error")
		}
		return nil
	})
}

// ListAvailable は未アサインのpending注文を返す（shipper向け）。
func (u *ShippingUsecase) ListAvailable(ctx context.Context) ([]repo.AvailableOrderRow, error) {
	var rows []repo.AvailableOrderRow

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var err error
		rows, err = r.Shippings().ListAvailable(ctx)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternalError, "db error")
		}
		return nil
	})

	if err != nil {
		return []repo.AvailableOrderRow{}, err
	}
	return rows, nil
}

func notePtr(note string) *string {
	note = strings.TrimSpace(note)
	if note == "" {
		return nil
	}
	return &note
}
