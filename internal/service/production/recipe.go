package production

import (
	"context"

	"bakery-production/internal/apperr"
	"bakery-production/internal/storage"
)

type RecipeStorage interface {
	GetRecipe(ctx context.Context, id int64) (*storage.Recipe, error)
	ListRecipes(ctx context.Context) ([]storage.Recipe, error)
	GetIngredients(ctx context.Context, recipeID int64) ([]storage.Ingredient, error)
}

type RecipeService struct {
	storage RecipeStorage
}

func NewRecipeService(storage RecipeStorage) *RecipeService {
	return &RecipeService{storage: storage}
}

func (s *RecipeService) List(ctx context.Context) ([]storage.Recipe, error) {
	recipes, err := s.storage.ListRecipes(ctx)
	if err != nil {
		return nil, apperr.Ensure(err)
	}
	return recipes, nil
}

// Ingredients fails with NotFound for an unknown recipe rather than returning an empty list.
func (s *RecipeService) Ingredients(ctx context.Context, recipeID int64) ([]storage.Ingredient, error) {
	if _, err := s.Recipe(ctx, recipeID); err != nil {
		return nil, err
	}
	ingredients, err := s.storage.GetIngredients(ctx, recipeID)
	if err != nil {
		return nil, apperr.Ensure(err)
	}
	if ingredients == nil {
		ingredients = []storage.Ingredient{}
	}
	return ingredients, nil
}

func (s *RecipeService) Instructions(ctx context.Context, recipeID int64) (string, error) {
	r, err := s.Recipe(ctx, recipeID)
	if err != nil {
		return "", err
	}
	return r.Instructions, nil
}

func (s *RecipeService) Recipe(ctx context.Context, id int64) (*storage.Recipe, error) {
	if id <= 0 {
		return nil, apperr.Validation("recipe id is required")
	}
	r, err := s.storage.GetRecipe(ctx, id)
	if err != nil {
		return nil, apperr.Ensure(err)
	}
	return r, nil
}
