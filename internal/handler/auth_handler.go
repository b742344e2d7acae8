package handler

import (
	"errors"
	"net/http"

	"app/internal/usecase"
	auth "app/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	registerUC *auth.RegisterUserUsecase
	loginUC    *auth.LoginUsecase
}

func NewAuthHandler(registerUC *auth.RegisterUserUsecase, loginUC *auth.LoginUsecase) *AuthHandler {
	return &AuthHandler{registerUC: registerUC, loginUC: loginUC}
}

type RegisterRequest struct {
	UserName string `json:"user_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/auth")
	g.POST("/register", h.register)
	g.POST("/login", h.login)
}

func (h *AuthHandler) register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errResp(usecase.CodeValidationError, "invalid body"))
	}

	out, err := h.registerUC.Execute(c.Request().Context(), auth.RegisterUserInput{
		UserName: req.UserName,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
		Role:     req.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidEmailFormat),
			errors.Is(err, auth.ErrPasswordTooShort),
			errors.Is(err, auth.ErrInvalidUserName),
			errors.Is(err, auth.ErrInvalidRole):
			return c.JSON(http.StatusBadRequest, errResp(usecase.CodeValidationError, err.Error()))
		case errors.Is(err, auth.ErrEmailAlreadyExists):
			return c.JSON(http.StatusConflict, errResp("EMAIL_ALREADY_EXISTS", err.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, errResp(usecase.CodeInternalError, "internal error"))
		}
	}

	return c.JSON(http.StatusCreated, okResp("registered", out.User))
}

func (h *AuthHandler) login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errResp(usecase.CodeValidationError, "invalid body"))
	}

	out, err := h.loginUC.Execute(c.Request().Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, errResp(usecase.CodeUnauthorized, "invalid email or password"))
		}
		return c.JSON(http.StatusInternalServerError, errResp(usecase.CodeInternalError, "internal error"))
	}

	return c.JSON(http.StatusOK, okResp("logged in", out))
}
