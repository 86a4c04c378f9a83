package services

import (
	"context"
	"strings"

	"hogar/internal/core"
	"hogar/internal/repo"
)

// ShoppingService manages the shared shopping list. Items behave like
// tasks without the points coupling.
type ShoppingService struct {
	items *repo.Shopping
}

func NewShoppingService(items *repo.Shopping) *ShoppingService {
	return &ShoppingService{items: items}
}

func (s *ShoppingService) List(ctx context.Context) ([]core.ShoppingItem, error) {
	return s.items.List(ctx)
}

func (s *ShoppingService) Add(ctx context.Context, text string, owner core.Owner) (core.ShoppingItem, error) {
	it := core.ShoppingItem{Text: strings.TrimSpace(text), Owner: owner}
	if err := it.Validate(); err != nil {
		return core.ShoppingItem{}, err
	}
	id, err := s.items.Add(ctx, it)
	if err != nil {
		return core.ShoppingItem{}, err
	}
	it.ID = id
	return it, nil
}

func (s *ShoppingService) EditText(ctx context.Context, id, text string) (core.ShoppingItem, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return core.ShoppingItem{}, &core.ValidationError{Field: "text", Reason: "must not be blank"}
	}
	return s.items.Update(ctx, id, func(it *core.ShoppingItem) {
		it.Text = text
	})
}

func (s *ShoppingService) Toggle(ctx context.Context, id string) (core.ShoppingItem, error) {
	return s.items.Update(ctx, id, func(it *core.ShoppingItem) {
		it.Completed = !it.Completed
	})
}

func (s *ShoppingService) Delete(ctx context.Context, id string) error {
	return s.items.Remove(ctx, id)
}

func (s *ShoppingService) Reassign(ctx context.Context, id string, owner core.Owner) error {
	return s.items.Reassign(ctx, id, owner)
}
