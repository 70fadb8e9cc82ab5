package domain

// Area is a life area or responsibility bucket tasks can belong to.
type Area struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Project is an active project tasks can be filed under.
type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TaskRecord is a snapshot of an external task as fetched from the data
// store. It is read-only context for the AI handlers and action executor.
type TaskRecord struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	URL           string `json:"url,omitempty"`
	DueDate       string `json:"due_date,omitempty"`
	Priority      string `json:"priority,omitempty"`
	Urgent        bool   `json:"urgent,omitempty"`
	Important     bool   `json:"important,omitempty"`
	GoogleEventID string `json:"google_event_id,omitempty"`
}

// Contact is a snapshot of an external contact record.
// PageContent is filled in lazily by the enrichment step for contacts the
// current query appears to be about.
type Contact struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Groups            string `json:"groups,omitempty"`
	Company           string `json:"company,omitempty"`
	Email             string `json:"email,omitempty"`
	Birthday          string `json:"birthday,omitempty"`
	Age               int    `json:"age,omitempty"`
	DaysUntilBirthday int    `json:"days_until_birthday,omitempty"`
	Notes             string `json:"notes,omitempty"`
	Favorite          bool   `json:"favorite,omitempty"`
	ContactDue        string `json:"contact_due,omitempty"`
	PageContent       string `json:"page_content,omitempty"`
}

// TaskContext is the read-only external state handed to the tasks handler.
type TaskContext struct {
	Areas    []Area
	Projects []Project
	Tasks    []TaskRecord
}

// ContactContext is the read-only external state handed to the contacts handler.
type ContactContext struct {
	Contacts []Contact
}
