package service_test

import (
	"context"
	"sync"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/stretchr/testify/mock"
)

type fakeSlot struct {
	mu     sync.Mutex
	data   map[string][]byte
	writes int
}

func newFakeSlot() *fakeSlot {
	return &fakeSlot{data: make(map[string][]byte)}
}

func (s *fakeSlot) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	if !ok {
		return nil, port.ErrSlotEmpty
	}
	return v, nil
}

func (s *fakeSlot) Save(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = data
	s.writes++
	return nil
}

type MockCatalogFetcher struct {
	mock.Mock
}

func (m *MockCatalogFetcher) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	ps, _ := args.Get(0).([]domain.Product)
	return ps, args.Error(1)
}

type MockOrderPublisher struct {
	mock.Mock
}

func (m *MockOrderPublisher) PublishOrder(ctx context.Context, o domain.Order) error {
	return m.Called(ctx, o).Error(0)
}

func headphones() domain.Product {
	return domain.Product{
		ID: 1, Name: "Premium Wireless Headphones", Price: 199.99, Rating: 4.8,
		Images: []string{"/headphones.jpg"}, Category: "Electronics",
		DiscountPercentage: 15, Stock: 23, Tags: []string{"wireless"},
	}
}

func candles() domain.Product {
	return domain.Product{
		ID: 4, Name: "Luxury Scented Candle Set", Price: 49.99, Rating: 4.7,
		Images: []string{"/scented_candles.jpg"}, Category: "Home", Stock: 3,
	}
}

func skincare() domain.Product {
	return domain.Product{
		ID: 5, Name: "Professional Skincare Kit", Price: 89.99, Rating: 4.9,
		Category: "Beauty",
	}
}
