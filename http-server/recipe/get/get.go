package get

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"bakery-production/internal/http/request"
	"bakery-production/internal/http/response"
	"bakery-production/internal/storage"
)

type RecipeProvider interface {
	List(ctx context.Context) ([]storage.Recipe, error)
	Ingredients(ctx context.Context, recipeID int64) ([]storage.Ingredient, error)
	Instructions(ctx context.Context, recipeID int64) (string, error)
}

type RecipesResponse struct {
	Success bool             `json:"success"`
	Recipes []storage.Recipe `json:"recipes"`
}

type IngredientsResponse struct {
	Success     bool                 `json:"success"`
	Ingredients []storage.Ingredient `json:"ingredients"`
}

type InstructionsResponse struct {
	Success      bool   `json:"success"`
	Instructions string `json:"instructions"`
}

func ListRecipes(log *slog.Logger, recipes RecipeProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.recipe.ListRecipes"

		list, err := recipes.List(r.Context())
		if err != nil {
			response.Fail(w, r, log, op, err)
			return
		}
		if list == nil {
			list = []storage.Recipe{}
		}

		render.JSON(w, r, RecipesResponse{Success: true, Recipes: list})
	}
}

func GetIngredients(log *slog.Logger, recipes RecipeProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.recipe.GetIngredients"

		id, err := request.PathID(r, "id")
		if err != nil {
			response.Fail(w, r, log, op, err)
			return
		}

		list, err := recipes.Ingredients(r.Context(), id)
		if err != nil {
			response.Fail(w, r, log, op, err)
			return
		}

		render.JSON(w, r, IngredientsResponse{Success: true, Ingredients: list})
	}
}

func GetInstructions(log *slog.Logger, recipes RecipeProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.recipe.GetInstructions"

		id, err := request.PathID(r, "id")
		if err != nil {
			response.Fail(w, r, log, op, err)
			return
		}

		text, err := recipes.Instructions(r.Context(), id)
		if err != nil {
			response.Fail(w, r, log, op, err)
			return
		}

		render.JSON(w, r, InstructionsResponse{Success: true, Instructions: text})
	}
}
