package main

import (
	"log"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"
	auth "app/internal/usecase/auth_usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/joho/godotenv"
)

// 業務タイムゾーンに固定した時計。
// updated_atとログのtimestampはこの時計から出る。
type businessClock struct {
	loc *time.Location
}

func (c *businessClock) Now() time.Time {
	return time.Now().In(c.loc)
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func (i *jwtIssuer) Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	//.envが無ければ環境変数だけで動く
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.Fatal(err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Dish{},
		&model.Order{},
		&model.OrderItem{},
		&model.Payment{},
		&model.Shipping{},
		&model.DeliveryLog{},
		&model.AuditLog{},
	); err != nil {
		log.Fatal(err)
	}

	//Repository（GORM実装）生成
	txManager := infraRepo.NewTxManagerGorm(gormDB)
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)

	//usecaseに渡す部品
	loc, err := time.LoadLocation(cfg.BusinessTZ)
	if err != nil {
		log.Fatal(err)
	}
	clock := &businessClock{loc: loc}

	//bcrypt（会員登録：Hash / ログイン：Verify）
	hasher := auth.NewBcryptPasswordHasher(12)
	verifier := auth.NewBcryptPasswordVerifier()

	//JWT issuer
	issuer := &jwtIssuer{
		secret:    []byte(cfg.JWTSecret),
		accessTTL: 15 * time.Minute,
	}

	//Usecase生成
	registerUC := auth.NewRegisterUserUsecase(userRepo, hasher, clock)
	loginUC := auth.NewLoginUsecase(userRepo, verifier, issuer, clock)
	orderUC := usecase.NewOrderUsecase(txManager, userRepo, clock)
	shippingUC := usecase.NewShippingUsecase(txManager, clock)
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager, auditRepo, clock)

	//Handler生成
	authH := handler.NewAuthHandler(registerUC, loginUC)
	orderH := handler.NewOrderHandler(orderUC)
	shipperH := handler.NewShipperOrderHandler(shippingUC)
	adminH := handler.NewAdminOrderHandler(adminOrderUC)

	//Server起動
	e := server.New()
	authH.RegisterRoutes(e)
	orderH.RegisterRoutes(e, cfg)
	shipperH.RegisterRoutes(e, cfg)
	adminH.RegisterRoutes(e, cfg)

	addr := ":" + cfg.Port
	if cfg.Port[0] == ':' {
		addr = cfg.Port
	}

	if err := server.Start(e, addr); err != nil {
		log.Fatal(err)
	}
}
