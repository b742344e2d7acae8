package usecase

import (
	"errors"
	"fmt"
	"time"
)

// handlerがHTTPステータスとレスポンスに変換できる失敗。
// Codeはクライアントが分岐するための機械可読コード。
type HTTPError struct {
	Status  int
	Code    string
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
}

func NewHTTPError(status int, code string, message string) error {
	return &HTTPError{
		Status:  status,
		Code:    code,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// 機械可読コード
const (
	CodeValidationError   = "VALIDATION_ERROR"
	CodeDishNotAvailable  = "DISH_NOT_AVAILABLE"
	CodeUserFlaggedCOD    = "USER_FLAGGED_COD_FORBIDDEN"
	CodeOrderNotFound     = "ORDER_NOT_FOUND"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeUnauthorizedOrder = "UNAUTHORIZED_ORDER_ACCESS"
	CodeInternalError     = "INTERNAL_ERROR"
)

// 現在の時間。テストで固定できるように注入する。
type Clock interface {
	Now() time.Time
}
