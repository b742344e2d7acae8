package auth

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"
)

// 会員登録の入力
type RegisterUserInput struct {
	UserName string
	Email    string
	Password string
	Phone    string
	Address  string
	Role     string
}

// 会員登録の出力
type RegisterUserOutput struct {
	User model.User
}

var (
	// 入力が不正
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrInvalidUserName    = errors.New("invalid user name")
	ErrInvalidRole        = errors.New("invalid role")

	// 競合
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// RegisterUserUsecaseは会員登録の処理。
// ロールは登録時に1回だけ決まる。以後は毎回JWTのclaimから読む。
type RegisterUserUsecase struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	clock    Clock
}

func NewRegisterUserUsecase(
	userRepo repository.UserRepository,
	hasher PasswordHasher,
	clock Clock,
) *RegisterUserUsecase {
	return &RegisterUserUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		clock:    clock,
	}
}

// 会員登録実行
func (u *RegisterUserUsecase) Execute(ctx context.Context, in RegisterUserInput) (RegisterUserOutput, error) {
	var out RegisterUserOutput

	name := strings.TrimSpace(in.UserName)
	if name == "" || len(name) > 100 {
		return out, ErrInvalidUserName
	}

	email := strings.TrimSpace(strings.ToLower(in.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return out, ErrInvalidEmailFormat
	}

	if len(in.Password) < 8 {
		return out, ErrPasswordTooShort
	}

	//公開登録で作れるのはUSERとSHIPPERだけ。ADMINは運用側で作る。
	role := model.RoleUser
	switch strings.TrimSpace(in.Role) {
	case "", string(model.RoleUser):
		role = model.RoleUser
	case string(model.RoleShipper):
		role = model.RoleShipper
	default:
		return out, ErrInvalidRole
	}

	//email重複チェック
	if _, err := u.userRepo.FindByEmail(ctx, email); err == nil {
		return out, ErrEmailAlreadyExists
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return out, err
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return out, err
	}

	now := u.clock.Now()
	user := model.User{
		UserName:     name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Phone:        strings.TrimSpace(in.Phone),
		Address:      strings.TrimSpace(in.Address),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	id, err := u.userRepo.Create(ctx, user)
	if err != nil {
		return out, err
	}
	user.ID = id
	user.PasswordHash = ""

	out.User = user
	return out, nil
}
