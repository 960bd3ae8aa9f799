package storage

// Status is the lifecycle state shared by schedules and batches.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type Task string

const (
	TaskMixing     Task = "Mixing"
	TaskBaking     Task = "Baking"
	TaskDecorating Task = "Decorating"
)

func (t Task) Valid() bool {
	switch t {
	case TaskMixing, TaskBaking, TaskDecorating:
		return true
	}
	return false
}

type Role string

const (
	RoleAdmin      Role = "Admin"
	RoleSupervisor Role = "Supervisor"
	RoleBaker      Role = "Baker"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSupervisor, RoleBaker:
		return true
	}
	return false
}

// EquipmentStatus is the cached status stored on tbl_equipments.
type EquipmentStatus string

const (
	EquipmentAvailable  EquipmentStatus = "Available"
	EquipmentInUse      EquipmentStatus = "In Use"
	EquipmentOutOfOrder EquipmentStatus = "Out of Order"
)

// Availability values reported by the availability resolver.
const (
	Available   = "Available"
	Unavailable = "Unavailable"
	InUse       = "In Use"
	OutOfOrder  = "Out of Order"
)

// Layouts used for the DATE and DATETIME columns.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)
