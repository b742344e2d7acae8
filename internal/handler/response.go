package handler

import (
	"net/http"

	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 失敗レスポンス。codeはクライアントが分岐する機械可読コード。
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
	Error   string `json:"error"`
}

type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func errResp(code string, msg string) ErrorResponse {
	return ErrorResponse{Success: false, Code: code, Error: msg}
}

func okResp(msg string, data interface{}) SuccessResponse {
	return SuccessResponse{Success: true, Message: msg, Data: data}
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, errResp(he.Code, he.Message))
	}

	//500。内部のエラーはそのまま外に出さない。
	return c.JSON(http.StatusInternalServerError, errResp(usecase.CodeInternalError, "internal error"))
}

func getUserIDFromContext(c echo.Context) (int64, bool) {
	raw := c.Get(middleware.CtxUserIDKey)
	id, ok := raw.(int64)
	if !ok || id <= 0 {
		return 0, false
	}
	return id, true
}
