package storage

import "time"

type TaskAssignment struct {
	UserID int64 `json:"user_id"`
	Task   Task  `json:"task"`
}

type BatchWrite struct {
	ScheduleID   int64
	RecipeID     int64
	Start        time.Time
	End          time.Time
	Status       Status
	Remarks      string
	QualityCheck string
	Assignments  []TaskAssignment
}

type Batch struct {
	ID               int64             `json:"batch_id"`
	RecipeID         int64             `json:"recipe_id"`
	RecipeName       string            `json:"recipe_name"`
	ScheduleID       int64             `json:"schedule_id"`
	ScheduleDate     string            `json:"schedule_date"`
	ScheduleBatchNum int               `json:"schedule_batch_number"`
	AssignedBatches  int               `json:"assigned_batches"`
	StartTime        time.Time         `json:"start_time"`
	EndTime          time.Time         `json:"end_time"`
	Status           Status            `json:"status"`
	Remarks          string            `json:"remarks"`
	QualityCheck     string            `json:"quality_check"`
	Assignments      []BatchAssignment `json:"assignments"`
}

type BatchAssignment struct {
	ID       int64  `json:"assignment_id"`
	UserID   int64  `json:"user_id"`
	FullName string `json:"full_name"`
	Task     Task   `json:"task"`
	Status   Status `json:"status"`
}

type BatchFilter struct {
	RecipeID int64
	Status   Status
	Date     string
	Sort     string
	Order    string
}
