package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// boom_countがこの値以上になったらフラグを立てる
const boomFlagThreshold = 2

type AdminOrderUsecase struct {
	tx        repo.TransactionManager
	auditRepo repo.AuditLogRepository
	clock     Clock
}

func NewAdminOrderUsecase(tx repo.TransactionManager, auditRepo repo.AuditLogRepository, clock Clock) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx, auditRepo: auditRepo, clock: clock}
}

type AdminOrderListOutput struct {
	Orders     []repo.AdminOrderRow `json:"orders"`
	Pagination Pagination           `json:"pagination"`
}

// 注文一覧（ユーザー名・フラグ・boom_countつき、bombだけに絞れる）
func (u *AdminOrderUsecase) List(ctx context.Context, f repo.AdminOrderListFilter) (AdminOrderListOutput, error) {
	if f.Page < 1 {
		return AdminOrderListOutput{}, NewHTTPError(http.StatusBadRequest, CodeValidationError, "invalid page")
	}
	if f.Limit < 1 || f.Limit > 100 {
		return AdminOrderListOutput{}, NewHTTPError(http.StatusBadRequest, CodeValidationError, "invalid limit")
	}

	var out AdminOrderListOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		rows, total, err := r.Orders().ListAdmin(ctx, f)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternalError, "db error")
		}

		totalPages := total / int64(f.Limit)
		if total%int64(f.Limit) != 0 {
			totalPages++
		}

		out = AdminOrderListOutput{
			Orders: rows,
			Pagination: Pagination{
				Page:       f.Page,
				Limit:      f.Limit,
				Total:      total,
				TotalPages: totalPages,
			},
		}
		return nil
	})

	if err != nil {
		return AdminOrderListOutput{}, err
	}
	return out, nil
}

// ConfirmBomb は爆弾注文を確定して持ち主のboom_countを+1する。
// bomb遷移そのものはカウントしない。カウントするのはこの確定操作だけ。
// 同じ注文に2回呼べば2回カウントされるので、呼ぶ側が重複させないこと。
func (u *AdminOrderUsecase) ConfirmBomb(ctx context.Context, actorAdminID int64, orderID int64) error {
	if actorAdminID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, CodeUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, CodeValidationError, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusBadRequest, CodeOrderNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternalError, "db error")
		}

		user, err := r.Users().FindByID(ctx, o.UserID)
		if errors.Is(err, repo.ErrUserNotFound) {
			return NewHTTPError(http.StatusBadRequest, CodeOrderNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternalError, "db error")
		}

		//読んで足して書く。アトミックなインクリメントではない（既知の挙動）。
		newCount := user.BoomCount + 1
		flagged := user.IsFlagged
		if newCount >= boomFlagThreshold {
			flagged = true
		}

		if err := r.Users().UpdateBoomStatus(ctx, user.ID, newCount, flagged); err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternalError, "db error")
		}

		//監査ログ（CONFIRM_BOMB_ORDER）
		beforeJSON := fmt.Sprintf(`{"boom_count":%d,"is_flagged":%t}`, user.BoomCount, user.IsFlagged)
		afterJSON := fmt.Sprintf(`{"boom_count":%d,"is_flagged":%t}`, newCount, flagged)
		if err := u.auditRepo.Create(ctx, model.AuditLog{
			ActorUserID:  actorAdminID,
			Action:       model.AuditActionConfirmBombOrder,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   beforeJSON,
			AfterJSON:    afterJSON,
			CreatedAt:    u.clock.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternalError, "db error")
		}

		return nil
	})
}

// UnflagUser は無条件にフラグを外す。boom_countは戻さない。
// 対象ユーザーがいなくても成功を返す（既存挙動に合わせている）。
func (u *AdminOrderUsecase) UnflagUser(ctx context.Context, actorAdminID int64, userID int64) error {
	if actorAdminID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, CodeUnauthorized, "unauthorized")
	}
	if userID <= 0 {
		return NewHTTPError(http.StatusBadRequest, CodeValidationError, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Users().Unflag(ctx, userID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternalError, "db error")
		}

		//監査ログ（UNFLAG_USER）
		if err := u.auditRepo.Create(ctx, model.AuditLog{
			ActorUserID:  actorAdminID,
			Action:       model.AuditActionUnflagUser,
			ResourceType: model.AuditResourceUser,
			ResourceID:   userID,
			BeforeJSON:   `{"is_flagged":true}`,
			AfterJSON:    `{"is_flagged":false}`,
			CreatedAt:    u.clock.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternalError, "db error")
		}

		return nil
	})
}
