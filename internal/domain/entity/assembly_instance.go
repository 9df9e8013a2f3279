package entity

import "time"

// Status estado de una orden de ensamblado en el tablero Kanban.
type Status string

// Estados del flujo. El avance es de a un paso: BACKLOG -> TODO -> IN_PROGRESS
// -> TO_VERIFY -> DONE. CANCELADO es alcanzable desde cualquier estado no
// terminal. DONE y CANCELADO son terminales.
const (
	StatusBacklog    Status = "BACKLOG"
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusToVerify   Status = "TO_VERIFY"
	StatusDone       Status = "DONE"
	StatusCancelado  Status = "CANCELADO"
)

// forward orden del flujo Kanban; cada estado solo avanza al siguiente.
var forward = map[Status]Status{
	StatusBacklog:    StatusTodo,
	StatusTodo:       StatusInProgress,
	StatusInProgress: StatusToVerify,
	StatusToVerify:   StatusDone,
}

// ValidStatus indica si s es uno de los estados conocidos.
func ValidStatus(s Status) bool {
	switch s {
	case StatusBacklog, StatusTodo, StatusInProgress, StatusToVerify, StatusDone, StatusCancelado:
		return true
	}
	return false
}

// IsTerminal indica si no hay transiciones permitidas desde s.
func (s Status) IsTerminal() bool {
	return s == StatusDone || s == StatusCancelado
}

// CanTransition valida la transición s -> target: un paso hacia adelante en el
// flujo, o CANCELADO desde cualquier estado no terminal.
func (s Status) CanTransition(target Status) bool {
	if s.IsTerminal() {
		return false
	}
	if target == StatusCancelado {
		return true
	}
	return forward[s] == target
}

// AssemblyInstance una orden de trabajo para ensamblar `Quantity` unidades de
// la plantilla en un sitio. Nace en BACKLOG con los componentes reservados y
// nunca se elimina físicamente: CANCELADO es terminal, no borrado.
type AssemblyInstance struct {
	ID         int64
	TemplateID int64
	SiteID     int64
	Quantity   int64 // unidades a ensamblar, >= 1
	Status     Status
	CreatedBy  int64
	AssignedTo *int64 // operario asignado al entrar a IN_PROGRESS
	// Timestamps de entrada a cada estado del flujo Kanban.
	BacklogAt    *time.Time
	TodoAt       *time.Time
	InProgressAt *time.Time
	ToVerifyAt   *time.Time
	DoneAt       *time.Time
	CompletedAt  *time.Time // legado, se estampa junto con DoneAt
	CompletedBy  *int64
	VerifiedBy   *int64
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// StampStatus estampa el timestamp de entrada al estado s.
func (a *AssemblyInstance) StampStatus(s Status, t time.Time) {
	switch s {
	case StatusBacklog:
		a.BacklogAt = &t
	case StatusTodo:
		a.TodoAt = &t
	case StatusInProgress:
		a.InProgressAt = &t
	case StatusToVerify:
		a.ToVerifyAt = &t
	case StatusDone:
		a.DoneAt = &t
	}
}

// AssemblyDetail instancia con datos de plantilla, sitio y usuarios (join) para listados.
type AssemblyDetail struct {
	AssemblyInstance
	TemplateSKU  string
	TemplateName string
	SiteName     string
	CreatorName  string
}
