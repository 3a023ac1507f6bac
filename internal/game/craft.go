package game

import (
	"context"

	"github.com/isleforge/isleforge/internal/container"
	"github.com/isleforge/isleforge/internal/crafting"
	"github.com/isleforge/isleforge/internal/domain"
	"github.com/isleforge/isleforge/internal/event"
	"github.com/isleforge/isleforge/internal/metrics"
)

// EvaluateCraft reports feasibility of a batch without mutating anything.
// Ingredient stock is bulk storage.
func (s *Store) EvaluateCraft(recipeID string, qty int) (crafting.Check, error) {
	recipe, ok := s.cat.Recipe(recipeID)
	if !ok {
		return crafting.Check{}, domain.ErrRecipeNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return crafting.Evaluate(s.cat, recipe, &s.state.Storage, s.state.Player.Coins, qty), nil
}

// CraftItem executes a batch of qty crafts. Ingredients and coins come out of
// bulk storage and the wallet; results deposit back into storage. The whole
// batch commits via clone-and-swap, so a failure at any step leaves the live
// state untouched.
func (s *Store) CraftItem(ctx context.Context, recipeID string, qty int) (crafting.Check, error) {
	if qty <= 0 {
		return crafting.Check{}, domain.ErrInvalidQuantity
	}
	recipe, ok := s.cat.Recipe(recipeID)
	if !ok {
		return crafting.Check{}, domain.ErrRecipeNotFound
	}

	s.mu.Lock()
	next := s.state.Clone()
	check := crafting.Evaluate(s.cat, recipe, &next.Storage, next.Player.Coins, qty)
	if !check.CanCraft {
		s.mu.Unlock()
		if len(check.MissingIngredients) > 0 {
			return check, domain.ErrMissingIngredients
		}
		return check, domain.ErrInsufficientCoins
	}

	next.Player.Coins -= check.Cost
	for _, ing := range recipe.Ingredients {
		next.Storage.Remove(ing.ItemID, ing.Quantity*qty)
	}
	produced := recipe.ResultQuantity * qty
	if next.Storage.Add(recipe.ResultItemID, produced, container.Reject) == 0 && produced > 0 {
		s.mu.Unlock()
		return check, domain.ErrStorageFull
	}

	s.state = next
	s.markDirty()
	s.mu.Unlock()

	metrics.ItemsCrafted.WithLabelValues(recipeID).Add(float64(qty))
	s.publish(ctx, event.CraftCompleted, event.CraftCompletedPayloadV1{
		RecipeID: recipeID,
		Quantity: qty,
	})
	return check, nil
}
