package services

import (
	"context"
	"strings"
	"sync"

	"github.com/yashrajoria/storefront-service/models"
	"github.com/yashrajoria/storefront-service/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeProductRepo struct {
	products  []models.Product
	createErr error
	findErr   error
	lastLimit int
	lookups   [][]primitive.ObjectID
}

func (f *fakeProductRepo) Create(_ context.Context, p *models.Product) (primitive.ObjectID, error) {
	if f.createErr != nil {
		return primitive.NilObjectID, f.createErr
	}
	p.ID = primitive.NewObjectID()
	f.products = append(f.products, *p)
	return p.ID, nil
}

func (f *fakeProductRepo) Find(_ context.Context, filter repository.ProductFilter, limit, offset int) ([]models.Product, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	f.lastLimit = limit
	var matched []models.Product
	for _, p := range f.products {
		if filter.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.Size != "" && !containsString(p.Sizes, filter.Size) {
			continue
		}
		matched = append(matched, p)
	}
	if offset >= len(matched) {
		return []models.Product{}, nil
	}
	matched = matched[offset:]
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (f *fakeProductRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	f.lookups = append(f.lookups, ids)
	if f.findErr != nil {
		return nil, f.findErr
	}
	var found []models.Product
	for _, p := range f.products {
		for _, id := range ids {
			if p.ID == id {
				found = append(found, p)
				break
			}
		}
	}
	return found, nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

type fakeOrderRepo struct {
	created   []models.Order
	joined    []models.OrderWithProducts
	createErr error
	findErr   error
}

func (f *fakeOrderRepo) Create(_ context.Context, o *models.Order) (primitive.ObjectID, error) {
	if f.createErr != nil {
		return primitive.NilObjectID, f.createErr
	}
	o.ID = primitive.NewObjectID()
	f.created = append(f.created, *o)
	return o.ID, nil
}

func (f *fakeOrderRepo) FindByUserWithProducts(_ context.Context, userID string, limit, offset int) ([]models.OrderWithProducts, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var matched []models.OrderWithProducts
	for _, o := range f.joined {
		if o.UserID == userID {
			matched = append(matched, o)
		}
	}
	if offset >= len(matched) {
		return []models.OrderWithProducts{}, nil
	}
	matched = matched[offset:]
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (f *fakeOrderRepo) EnsureIndexes(context.Context) error { return nil }

type fakePublisher struct {
	mu     sync.Mutex
	events []models.OrderCreatedEvent
	err    error
}

func (f *fakePublisher) PublishOrderCreated(_ context.Context, evt models.OrderCreatedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, evt)
	return f.err
}

func (f *fakePublisher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

type fakeMetrics struct {
	mu    sync.Mutex
	names []string
}

func (f *fakeMetrics) IsEnabled() bool { return true }

func (f *fakeMetrics) RecordCount(_ context.Context, name string, _ map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.names = append(f.names, name)
	return nil
}

func (f *fakeMetrics) has(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return containsString(f.names, name)
}
