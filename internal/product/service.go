package product

import (
	"context"

	"github.com/mstanvir/garment-track-backend/internal/redisx"
)

// ServiceInterface is what other packages (order placement) need from
// the catalog.
type ServiceInterface interface {
	List() []Product
	ListHome() []Product
	GetByID(id int) (Product, error)
	Create(p Product) (Product, error)
	Update(id int, p Product) (Product, error)
	Delete(id int) error
}

type Service struct {
	repo  Repository
	cache *redisx.Cache
}

var _ ServiceInterface = (*Service)(nil)

// NewService wires the repository and an optional list cache; pass a
// nil cache to disable caching.
func NewService(repo Repository, cache *redisx.Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

func (s *Service) List() []Product {
	ctx := context.Background()
	var cached []Product
	if hit, _ := s.cache.GetJSON(ctx, redisx.KeyProductList, &cached); hit {
		return cached
	}

	products := s.repo.List()
	_ = s.cache.SetJSON(ctx, redisx.KeyProductList, products, redisx.TTLList)
	return products
}

func (s *Service) ListHome() []Product {
	ctx := context.Background()
	var cached []Product
	if hit, _ := s.cache.GetJSON(ctx, redisx.KeyHomeProducts, &cached); hit {
		return cached
	}

	products := s.repo.ListHome()
	_ = s.cache.SetJSON(ctx, redisx.KeyHomeProducts, products, redisx.TTLList)
	return products
}

func (s *Service) GetByID(id int) (Product, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Create(p Product) (Product, error) {
	created, err := s.repo.Create(p)
	if err != nil {
		return Product{}, err
	}
	s.invalidate()
	return created, nil
}

func (s *Service) Update(id int, p Product) (Product, error) {
	updated, err := s.repo.Update(id, p)
	if err != nil {
		return Product{}, err
	}
	s.invalidate()
	return updated, nil
}

func (s *Service) Delete(id int) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *Service) invalidate() {
	_ = s.cache.Del(context.Background(), redisx.KeyProductList, redisx.KeyHomeProducts)
}
