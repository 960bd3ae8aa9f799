package production

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"bakery-production/internal/apperr"
	"bakery-production/internal/storage"
)

const (
	maxNoteLength  = 500
	minAssignments = 1
	maxAssignments = 10
)

// Accepted start/end formats: the HTML datetime-local value and RFC 3339.
var timeLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	storage.DateTimeLayout,
}

type BatchStorage interface {
	CreateBatch(ctx context.Context, w storage.BatchWrite) (int64, error)
	UpdateBatch(ctx context.Context, id int64, w storage.BatchWrite) error
	DeleteBatch(ctx context.Context, id int64) error
	GetBatch(ctx context.Context, id int64) (*storage.Batch, error)
	ListBatches(ctx context.Context, f storage.BatchFilter) ([]storage.Batch, error)
}

type CreateBatchRequest struct {
	ScheduleID   int64                    `json:"schedule_id"`
	RecipeID     int64                    `json:"recipe_id"`
	StartTime    string                   `json:"start_time"`
	EndTime      string                   `json:"end_time"`
	Remarks      string                   `json:"remarks"`
	QualityCheck string                   `json:"quality_check"`
	Assignments  []storage.TaskAssignment `json:"assignments"`
}

// toWrite validates the request and converts it into a storage write.
func (r CreateBatchRequest) toWrite(loc *time.Location) (storage.BatchWrite, error) {
	if r.ScheduleID <= 0 {
		return storage.BatchWrite{}, apperr.Validation("schedule_id is required")
	}
	if r.RecipeID <= 0 {
		return storage.BatchWrite{}, apperr.Validation("recipe_id is required")
	}

	start, err := parseTime("start_time", r.StartTime, loc)
	if err != nil {
		return storage.BatchWrite{}, err
	}
	end, err := parseTime("end_time", r.EndTime, loc)
	if err != nil {
		return storage.BatchWrite{}, err
	}
	if !end.After(start) {
		return storage.BatchWrite{}, apperr.Validation("end_time must be after start_time")
	}

	remarks := strings.TrimSpace(r.Remarks)
	if utf8.RuneCountInString(remarks) > maxNoteLength {
		return storage.BatchWrite{}, apperr.Validation("remarks must be at most %d characters", maxNoteLength)
	}
	quality := strings.TrimSpace(r.QualityCheck)
	if utf8.RuneCountInString(quality) > maxNoteLength {
		return storage.BatchWrite{}, apperr.Validation("quality_check must be at most %d characters", maxNoteLength)
	}

	if len(r.Assignments) < minAssignments || len(r.Assignments) > maxAssignments {
		return storage.BatchWrite{}, apperr.Validation("a batch needs between %d and %d task assignments", minAssignments, maxAssignments)
	}
	type key struct {
		user int64
		task storage.Task
	}
	seen := make(map[key]struct{}, len(r.Assignments))
	for i, a := range r.Assignments {
		if a.UserID <= 0 {
			return storage.BatchWrite{}, apperr.Validation("assignment %d: user_id is required", i+1)
		}
		if !a.Task.Valid() {
			return storage.BatchWrite{}, apperr.Validation("assignment %d: task must be one of Mixing, Baking, Decorating", i+1)
		}
		k := key{a.UserID, a.Task}
		if _, ok := seen[k]; ok {
			return storage.BatchWrite{}, apperr.Validation("assignment %d: user %d already has task %s", i+1, a.UserID, a.Task)
		}
		seen[k] = struct{}{}
	}

	return storage.BatchWrite{
		ScheduleID:   r.ScheduleID,
		RecipeID:     r.RecipeID,
		Start:        start,
		End:          end,
		Status:       storage.StatusPending,
		Remarks:      remarks,
		QualityCheck: quality,
		Assignments:  r.Assignments,
	}, nil
}

type UpdateBatchRequest struct {
	CreateBatchRequest
	Status storage.Status `json:"status"`
}

type BatchService struct {
	storage         BatchStorage
	rejectPastStart bool
	loc             *time.Location
	now             func() time.Time
}

func NewBatchService(storage BatchStorage, rejectPastStart bool) *BatchService {
	return &BatchService{
		storage:         storage,
		rejectPastStart: rejectPastStart,
		loc:             time.Local,
		now:             time.Now,
	}
}

func (s *BatchService) Create(ctx context.Context, req CreateBatchRequest) (int64, error) {
	w, err := req.toWrite(s.loc)
	if err != nil {
		return 0, err
	}
	if s.rejectPastStart && w.Start.Before(s.now()) {
		return 0, apperr.Validation("start_time must not be in the past")
	}

	id, err := s.storage.CreateBatch(ctx, w)
	if err != nil {
		return 0, apperr.Ensure(err)
	}
	return id, nil
}

// Update replaces the batch's fields and its whole assignment list. Any status change is
// accepted, including a move back from Completed.
func (s *BatchService) Update(ctx context.Context, id int64, req UpdateBatchRequest) error {
	if id <= 0 {
		return apperr.Validation("batch id is required")
	}
	w, err := req.toWrite(s.loc)
	if err != nil {
		return err
	}
	if !req.Status.Valid() {
		return apperr.Validation("status must be one of Pending, In Progress, Completed")
	}
	w.Status = req.Status

	return apperr.Ensure(s.storage.UpdateBatch(ctx, id, w))
}

func (s *BatchService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperr.Validation("batch id is required")
	}
	return apperr.Ensure(s.storage.DeleteBatch(ctx, id))
}

func (s *BatchService) Get(ctx context.Context, id int64) (*storage.Batch, error) {
	if id <= 0 {
		return nil, apperr.Validation("batch id is required")
	}
	b, err := s.storage.GetBatch(ctx, id)
	if err != nil {
		return nil, apperr.Ensure(err)
	}
	return b, nil
}

func (s *BatchService) List(ctx context.Context, f storage.BatchFilter) ([]storage.Batch, error) {
	if f.Date != "" {
		if _, err := time.Parse(storage.DateLayout, f.Date); err != nil {
			return nil, apperr.Validation("date must be in YYYY-MM-DD format")
		}
	}
	if f.Status != "" && !f.Status.Valid() {
		return nil, apperr.Validation("status must be one of Pending, In Progress, Completed")
	}

	batches, err := s.storage.ListBatches(ctx, f)
	if err != nil {
		return nil, apperr.Ensure(err)
	}
	return batches, nil
}

func parseTime(field, value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, apperr.Validation("%s is required", field)
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t.In(loc), nil
		}
	}
	return time.Time{}, apperr.Validation("%s must look like 2006-01-02T15:04", field)
}
