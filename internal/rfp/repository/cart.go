package repository

import (
	"context"
	"errors"
	"time"

	"github.com/fekuna/kitmed-catalog-service/internal/model"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/cache"
)

// CartStore keeps drafts as JSON under rfp:cart:<id>. Every save renews the
// TTL.
type CartStore struct {
	store cache.Store
	ttl   time.Duration
}

func NewCartStore(store cache.Store, ttl time.Duration) *CartStore {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &CartStore{store: store, ttl: ttl}
}

func cartKey(id string) string {
	return "rfp:cart:" + id
}

func (s *CartStore) Get(ctx context.Context, id string) (*model.RFPCart, error) {
	var cart model.RFPCart
	if err := s.store.GetJSON(ctx, cartKey(id), &cart); err != nil {
		if errors.Is(err, cache.ErrMiss) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

func (s *CartStore) Save(ctx context.Context, cart *model.RFPCart) error {
	return s.store.SetJSON(ctx, cartKey(cart.ID), cart, s.ttl)
}

func (s *CartStore) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, cartKey(id))
}
