package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bakery-production/internal/apperr"
	"bakery-production/internal/storage"
)

func (s *Storage) GetRecipe(ctx context.Context, id int64) (*storage.Recipe, error) {
	const op = "storage.mysql.GetRecipe"

	stmt := `SELECT recipe_id, recipe_name, recipe_category, recipe_batchSize, recipe_unitOfMeasure, recipe_instructions
		FROM tbl_recipe WHERE recipe_id = ?`

	var r storage.Recipe
	err := s.db.QueryRowContext(ctx, stmt, id).Scan(&r.ID, &r.Name, &r.Category, &r.BatchSize, &r.UnitOfMeasure, &r.Instructions)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("recipe %d not found", id)
		}
		return nil, fmt.Errorf("%s: recipe id=%d: %w", op, id, err)
	}

	return &r, nil
}

func (s *Storage) ListRecipes(ctx context.Context) ([]storage.Recipe, error) {
	const op = "storage.mysql.ListRecipes"

	rows, err := s.db.QueryContext(ctx, `SELECT recipe_id, recipe_name, recipe_category, recipe_batchSize, recipe_unitOfMeasure
		FROM tbl_recipe ORDER BY recipe_name`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	recipes := []storage.Recipe{}
	for rows.Next() {
		var r storage.Recipe
		if err := rows.Scan(&r.ID, &r.Name, &r.Category, &r.BatchSize, &r.UnitOfMeasure); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		recipes = append(recipes, r)
	}

	return recipes, rows.Err()
}

func (s *Storage) GetIngredients(ctx context.Context, recipeID int64) ([]storage.Ingredient, error) {
	const op = "storage.mysql.GetIngredients"

	rows, err := s.db.QueryContext(ctx, `SELECT ingredient_id, recipe_id, ingredient_name, ingredient_quantity, ingredient_unitOfMeasure
		FROM tbl_ingredients WHERE recipe_id = ? ORDER BY ingredient_id`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("%s: recipe id=%d: %w", op, recipeID, err)
	}
	defer rows.Close()

	ingredients := []storage.Ingredient{}
	for rows.Next() {
		var in storage.Ingredient
		if err := rows.Scan(&in.ID, &in.RecipeID, &in.Name, &in.Quantity, &in.UnitOfMeasure); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		ingredients = append(ingredients, in)
	}

	return ingredients, rows.Err()
}
