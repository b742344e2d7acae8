package usecase_test

import (
	"context"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// txManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す
type txManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *txManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	// 呼ばれた事実だけ記録（ctxの具体値は問わない）
	m.Called(ctx)
	return fn(m.Repos)
}

type txReposMock struct {
	orders       repo.OrderRepository
	orderItems   repo.OrderItemRepository
	payments     repo.PaymentRepository
	shippings    repo.ShippingRepository
	deliveryLogs repo.DeliveryLogRepository
	users        repo.UserRepository
	dishes       repo.DishRepository
}

func (r *txReposMock) Orders() repo.OrderRepository             { return r.orders }
func (r *txReposMock) OrderItems() repo.OrderItemRepository     { return r.orderItems }
func (r *txReposMock) Payments() repo.PaymentRepository         { return r.payments }
func (r *txReposMock) Shippings() repo.ShippingRepository       { return r.shippings }
func (r *txReposMock) DeliveryLogs() repo.DeliveryLogRepository { return r.deliveryLogs }
func (r *txReposMock) Users() repo.UserRepository               { return r.users }
func (r *txReposMock) Dishes() repo.DishRepository              { return r.dishes }

// =====================
// Repository mocks
// =====================

type orderRepoMock struct{ mock.Mock }

func (m *orderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *orderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *orderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *orderRepoMock) ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

func (m *orderRepoMock) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]repo.AdminOrderRow, int64, error) {
	args := m.Called(ctx, f)
	rows, _ := args.Get(0).([]repo.AdminOrderRow)
	return rows, args.Get(1).(int64), args.Error(2)
}

type orderItemRepoMock struct{ mock.Mock }

func (m *orderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *orderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

func (m *orderItemRepoMock) CountByOrderID(ctx context.Context, orderID int64) (int64, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(int64), args.Error(1)
}

type paymentRepoMock struct{ mock.Mock }

func (m *paymentRepoMock) Create(ctx context.Context, payment model.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *paymentRepoMock) FindByOrderID(ctx context.Context, orderID int64) (model.Payment, error) {
	args := m.Called(ctx, orderID)
	p, _ := args.Get(0).(model.Payment)
	return p, args.Error(1)
}

func (m *paymentRepoMock) MarkCompleted(ctx context.Context, orderID int64, paidAt time.Time) error {
	args := m.Called(ctx, orderID, paidAt)
	return args.Error(0)
}

type shippingRepoMock struct{ mock.Mock }

func (m *shippingRepoMock) Create(ctx context.Context, shipping model.Shipping) error {
	args := m.Called(ctx, shipping)
	return args.Error(0)
}

func (m *shippingRepoMock) FindByOrderID(ctx context.Context, orderID int64) (model.Shipping, error) {
	args := m.Called(ctx, orderID)
	s, _ := args.Get(0).(model.Shipping)
	return s, args.Error(1)
}

func (m *shippingRepoMock) Claim(ctx context.Context, orderID int64, shipperID int64, now time.Time) (bool, error) {
	args := m.Called(ctx, orderID, shipperID, now)
	return args.Bool(0), args.Error(1)
}

func (m *shippingRepoMock) UpdateStatusIf(ctx context.Context, orderID int64, shipperID int64, from []model.ShippingStatus, to model.ShippingStatus, now time.Time) (bool, error) {
	args := m.Called(ctx, orderID, shipperID, from, to, now)
	return args.Bool(0), args.Error(1)
}

func (m *shippingRepoMock) ListAvailable(ctx context.Context) ([]repo.AvailableOrderRow, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]repo.AvailableOrderRow)
	return rows, args.Error(1)
}

type deliveryLogRepoMock struct{ mock.Mock }

func (m *deliveryLogRepoMock) Create(ctx context.Context, log model.DeliveryLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *deliveryLogRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.DeliveryLog, error) {
	args := m.Called(ctx, orderID)
	logs, _ := args.Get(0).([]model.DeliveryLog)
	return logs, args.Error(1)
}

type userRepoMock struct{ mock.Mock }

func (m *userRepoMock) FindByID(ctx context.Context, userID int64) (model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *userRepoMock) FindByEmail(ctx context.Context, email string) (model.User, error) {
	panic("not used in these tests")
}

func (m *userRepoMock) Create(ctx context.Context, user model.User) (int64, error) {
	panic("not used in these tests")
}

func (m *userRepoMock) UpdateBoomStatus(ctx context.Context, userID int64, boomCount int, isFlagged bool) error {
	args := m.Called(ctx, userID, boomCount, isFlagged)
	return args.Error(0)
}

func (m *userRepoMock) Unflag(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type dishRepoMock struct{ mock.Mock }

func (m *dishRepoMock) FindByID(ctx context.Context, dishID int64) (model.Dish, error) {
	args := m.Called(ctx, dishID)
	d, _ := args.Get(0).(model.Dish)
	return d, args.Error(1)
}

type auditRepoMock struct{ mock.Mock }

func (m *auditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

// =====================
// Clock
// =====================

// テストでは時計を固定する
type fixedClock struct {
	t time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.t
}
