package usecase

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"rewear/internal/domain/entity"
)

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) Create(ctx context.Context, product *entity.Product) error {
	args := m.Called(ctx, product)
	if product.ID == "" {
		product.ID = "product-new"
	}
	return args.Error(0)
}

func (m *mockProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*entity.Product)
	return p, args.Error(1)
}

func (m *mockProductRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	args := m.Called(ctx, ids)
	p, _ := args.Get(0).(map[string]*entity.Product)
	return p, args.Error(1)
}

func (m *mockProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	args := m.Called(ctx)
	p, _ := args.Get(0).([]*entity.Product)
	return p, args.Error(1)
}

func (m *mockProductRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Product, error) {
	args := m.Called(ctx, ownerID)
	p, _ := args.Get(0).([]*entity.Product)
	return p, args.Error(1)
}

func (m *mockProductRepo) ListByAddress(ctx context.Context, fragment string) ([]*entity.Product, error) {
	args := m.Called(ctx, fragment)
	p, _ := args.Get(0).([]*entity.Product)
	return p, args.Error(1)
}

func (m *mockProductRepo) ListTopLiked(ctx context.Context, limit int) ([]*entity.Product, error) {
	args := m.Called(ctx, limit)
	p, _ := args.Get(0).([]*entity.Product)
	return p, args.Error(1)
}

func (m *mockProductRepo) Search(ctx context.Context, query string, status entity.ProductStatus, limit int) ([]*entity.Product, error) {
	args := m.Called(ctx, query, status, limit)
	p, _ := args.Get(0).([]*entity.Product)
	return p, args.Error(1)
}

func (m *mockProductRepo) IncrementLikes(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockProductRepo) RegisterSwapInterest(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockProductRepo) UpdateStatus(ctx context.Context, id string, status entity.ProductStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockProductRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockProductRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockSwapRepo struct {
	mock.Mock
}

func (m *mockSwapRepo) Create(ctx context.Context, request *entity.SwapRequest) error {
	args := m.Called(ctx, request)
	if request.ID == "" {
		request.ID = "request-new"
	}
	return args.Error(0)
}

func (m *mockSwapRepo) GetByID(ctx context.Context, id string) (*entity.SwapRequest, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*entity.SwapRequest)
	return r, args.Error(1)
}

func (m *mockSwapRepo) List(ctx context.Context) ([]*entity.SwapRequest, error) {
	args := m.Called(ctx)
	r, _ := args.Get(0).([]*entity.SwapRequest)
	return r, args.Error(1)
}

func (m *mockSwapRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.SwapRequest, error) {
	args := m.Called(ctx, productID)
	r, _ := args.Get(0).([]*entity.SwapRequest)
	return r, args.Error(1)
}

func (m *mockSwapRepo) ListByRequester(ctx context.Context, userID string) ([]*entity.SwapRequest, error) {
	args := m.Called(ctx, userID)
	r, _ := args.Get(0).([]*entity.SwapRequest)
	return r, args.Error(1)
}

func (m *mockSwapRepo) UpdateStatus(ctx context.Context, id string, from, to entity.SwapStatus) error {
	return m.Called(ctx, id, from, to).Error(0)
}

func (m *mockSwapRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockSwapRepo) DeleteByProduct(ctx context.Context, productID string) (int, error) {
	args := m.Called(ctx, productID)
	return args.Int(0), args.Error(1)
}

func (m *mockSwapRepo) DeleteByRequester(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *mockSwapRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	if user.ID == "" {
		user.ID = "user-new"
	}
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.User, error) {
	args := m.Called(ctx, ids)
	u, _ := args.Get(0).(map[string]*entity.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context) ([]*entity.User, error) {
	args := m.Called(ctx)
	u, _ := args.Get(0).([]*entity.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, id string, update entity.ProfileUpdate) error {
	return m.Called(ctx, id, update).Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUserRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserRepo) AwardSwapPoints(ctx context.Context, id string, points int64) error {
	return m.Called(ctx, id, points).Error(0)
}

func (m *mockUserRepo) RecordEarnings(ctx context.Context, id string, amount float64) error {
	return m.Called(ctx, id, amount).Error(0)
}

func (m *mockUserRepo) RecordSpent(ctx context.Context, id string, amount float64) error {
	return m.Called(ctx, id, amount).Error(0)
}

func (m *mockUserRepo) SetLikedItem(ctx context.Context, userID, productID string, liked bool) error {
	return m.Called(ctx, userID, productID, liked).Error(0)
}

func (m *mockUserRepo) RemoveLikedItemEverywhere(ctx context.Context, productID string) (int, error) {
	args := m.Called(ctx, productID)
	return args.Int(0), args.Error(1)
}

type mockRewarder struct {
	mock.Mock
}

func (m *mockRewarder) AwardSwapPoints(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type mockRemover struct {
	mock.Mock
}

func (m *mockRemover) DeleteProduct(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockHasher struct {
	mock.Mock
}

func (m *mockHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *mockHasher) Compare(hash, password string) bool {
	return m.Called(hash, password).Bool(0)
}

type mockTokens struct {
	mock.Mock
}

func (m *mockTokens) Issue(userID, role string) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}

type published struct {
	topic string
	args  []interface{}
}

// recordingPublisher captures events instead of dispatching them.
type recordingPublisher struct {
	mu     sync.Mutex
	events []published
}

func (p *recordingPublisher) Publish(topic string, args ...interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{topic: topic, args: args})
}

func (p *recordingPublisher) topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.topic)
	}
	return out
}
