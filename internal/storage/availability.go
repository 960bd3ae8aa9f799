package storage

type UserAvailability struct {
	UserID          int64  `json:"user_id"`
	FullName        string `json:"user_full_name"`
	Role            Role   `json:"user_role"`
	Status          string `json:"availability_status"`
	AssignmentCount int    `json:"assignment_count"`
}

type EquipmentAvailability struct {
	EquipmentID int64  `json:"equipment_id"`
	Name        string `json:"equipment_name"`
	Status      string `json:"availability_status"`
}

type DashboardStats struct {
	TotalRecipes   int64  `json:"total_recipes"`
	TotalSchedules int64  `json:"total_schedules"`
	TotalBatches   int64  `json:"total_batches"`
	TotalBakers    *int64 `json:"total_bakers,omitempty"`
}
