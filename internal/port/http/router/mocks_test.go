package router

import (
	"context"

	"github.com/Abdurahmanit/GroupProject/shop-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/repository"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, in service.RegisterInput) (*entity.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*service.LoginResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LoginResult), args.Error(1)
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, email, answer, newPassword string) error {
	args := m.Called(ctx, email, answer, newPassword)
	return args.Error(0)
}

func (m *MockAuthService) UpdateProfile(ctx context.Context, userID string, in service.ProfileInput) (*entity.User, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) ListBuyerOrders(ctx context.Context, buyerID string) ([]entity.OrderDetails, error) {
	args := m.Called(ctx, buyerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.OrderDetails), args.Error(1)
}

func (m *MockOrderService) ListAllOrders(ctx context.Context) ([]entity.OrderDetails, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.OrderDetails), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, orderID string, status entity.OrderStatus) (*entity.Order, error) {
	args := m.Called(ctx, orderID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Order), args.Error(1)
}

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Category), args.Error(1)
}

func (m *MockCatalogService) CreateCategory(ctx context.Context, name string) (*entity.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *MockCatalogService) CreateProduct(ctx context.Context, in service.ProductInput, photo *service.PhotoUpload) (*entity.Product, error) {
	args := m.Called(ctx, in, photo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockCatalogService) ListProducts(ctx context.Context) ([]entity.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Product), args.Error(1)
}

// userRoles backs the admin check with the roles handed out by testServer.token.
type userRoles map[string]entity.Role

func (u userRoles) FindByID(_ context.Context, userID string) (*entity.User, error) {
	role, ok := u[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &entity.User{ID: userID, Role: role}, nil
}
