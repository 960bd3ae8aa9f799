package storage

type Recipe struct {
	ID            int64   `json:"recipe_id"`
	Name          string  `json:"recipe_name"`
	Category      string  `json:"recipe_category"`
	BatchSize     float64 `json:"recipe_batch_size"`
	UnitOfMeasure string  `json:"recipe_unit_of_measure"`
	Instructions  string  `json:"-"`
}

type Ingredient struct {
	ID            int64   `json:"ingredient_id"`
	RecipeID      int64   `json:"recipe_id"`
	Name          string  `json:"ingredient_name"`
	Quantity      float64 `json:"ingredient_quantity"`
	UnitOfMeasure string  `json:"ingredient_unit_of_measure"`
}
