package domain

// TaskPayload is the new-task data produced by a create intent in the tasks
// domain. Field names follow the JSON contract the agent prompts instruct
// the model to use.
type TaskPayload struct {
	Name                string `json:"name"`
	DueDate             string `json:"dueDate,omitempty"`
	DueDateTime         string `json:"dueDateTime,omitempty"`
	Priority            string `json:"priority,omitempty"`
	Urgent              bool   `json:"urgent,omitempty"`
	Important           bool   `json:"important,omitempty"`
	AreaID              string `json:"areaId,omitempty"`
	ProjectID           string `json:"projectId,omitempty"`
	RepeatCycle         string `json:"repeatCycle,omitempty"`
	RepeatEvery         int    `json:"repeatEvery,omitempty"`
	CreateCalendarEvent bool   `json:"createCalendarEvent,omitempty"`
	GoogleEventID       string `json:"googleEventId,omitempty"`
}

// TaskUpdates is the set of task field changes for an edit intent.
// Pointer fields distinguish "not mentioned" from explicit zero values.
type TaskUpdates struct {
	Name          *string `json:"name,omitempty"`
	DueDate       *string `json:"dueDate,omitempty"`
	DueDateTime   *string `json:"dueDateTime,omitempty"`
	Done          *bool   `json:"done,omitempty"`
	Priority      *string `json:"priority,omitempty"`
	Urgent        *bool   `json:"urgent,omitempty"`
	Important     *bool   `json:"important,omitempty"`
	GoogleEventID *string `json:"googleEventId,omitempty"`
}

// TouchesSchedule reports whether the edit changes anything a calendar event
// mirrors: due date, due time, or the task name.
func (u *TaskUpdates) TouchesSchedule() bool {
	return u.DueDate != nil || u.DueDateTime != nil || u.Name != nil
}

// CalendarEventChange names the calendar event fields a task edit can
// change. Empty fields are left untouched; Start only applies when it
// carries a time component.
type CalendarEventChange struct {
	Summary string
	Start   string
}

// ContactPayload is the new-contact data produced by a create intent in the
// contacts domain.
type ContactPayload struct {
	Name     string `json:"name"`
	Groups   string `json:"groups,omitempty"`
	Company  string `json:"company,omitempty"`
	Email    string `json:"email,omitempty"`
	Birthday string `json:"birthday,omitempty"`
	Notes    string `json:"notes,omitempty"`
	Favorite bool   `json:"favorite,omitempty"`
}

// ContactUpdates is the set of contact field changes for an edit intent.
type ContactUpdates struct {
	Name     *string `json:"name,omitempty"`
	Groups   *string `json:"groups,omitempty"`
	Company  *string `json:"company,omitempty"`
	Email    *string `json:"email,omitempty"`
	Birthday *string `json:"birthday,omitempty"`
	Notes    *string `json:"notes,omitempty"`
	Favorite *bool   `json:"favorite,omitempty"`
}
