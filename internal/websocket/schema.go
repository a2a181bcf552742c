package websocket

// ─── Events (Server → Client) ───────────────────────────────────────

// Action describes what happened to an entity.
type Action string

const (
	ActionCreated   Action = "created"
	ActionUpdated   Action = "updated"
	ActionDeleted   Action = "deleted"
	ActionReordered Action = "reordered"
)

// Event is a change notification broadcast to connected dashboards so open
// tabs refresh without polling.
type Event struct {
	Entity string `json:"entity"`
	Action Action `json:"action"`
	ID     string `json:"id,omitempty"`
}

// Entity names used in events.
const (
	EntityStudent    = "student"
	EntityMentor     = "mentor"
	EntityClass      = "class"
	EntityCurriculum = "curriculum"
	EntityRecord     = "class_record"
	EntityTemplate   = "comment_template"
	EntityMemo       = "student_memo"
)
