package storage

// ScheduleWrite carries the fields persisted by create and update. BatchNumber and
// QuantityToProduce are always derived server-side from OrderVolume and the recipe batch size.
type ScheduleWrite struct {
	RecipeID          int64
	Date              string
	OrderVolume       int
	BatchNumber       int
	QuantityToProduce float64
	Status            Status
	UserIDs           []int64
	EquipmentIDs      []int64
}

type Schedule struct {
	ID                int64               `json:"schedule_id"`
	RecipeID          int64               `json:"recipe_id"`
	RecipeName        string              `json:"recipe_name"`
	Date              string              `json:"schedule_date"`
	OrderVolume       int                 `json:"order_volume"`
	BatchNumber       int                 `json:"batch_number"`
	QuantityToProduce float64             `json:"quantity_to_produce"`
	Status            Status              `json:"status"`
	AssignedBatches   int                 `json:"assigned_batches"`
	CompletedBatches  int                 `json:"completed_batches"`
	Users             []AssignedUser      `json:"assigned_users"`
	Equipment         []AssignedEquipment `json:"assigned_equipment"`
}

type AssignedUser struct {
	UserID   int64  `json:"user_id"`
	FullName string `json:"full_name"`
	Role     Role   `json:"role"`
}

type AssignedEquipment struct {
	EquipmentID int64           `json:"equipment_id"`
	Name        string          `json:"equipment_name"`
	Status      EquipmentStatus `json:"equipment_status"`
}

type ScheduleFilter struct {
	Date     string
	From     string
	To       string
	RecipeID int64
	Status   Status
	Sort     string
	Order    string
}
