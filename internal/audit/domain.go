package audit

import "time"

// Actions recorded by the engine.
const (
	ActionAssignRole = "ASSIGN_ROLE"
)

// Resource types referenced by audit entries.
const (
	ResourceUser = "USER"
	ResourceRole = "ROLE"
)

// Entry is an immutable record of a privileged action. Entries are created
// once at mutation time and never updated or deleted through normal flow.
type Entry struct {
	ID           string         `json:"id"`
	ActorID      int64          `json:"actorId"`
	Action       string         `json:"action"`
	ResourceType string         `json:"resourceType"`
	ResourceID   string         `json:"resourceId"`
	Details      map[string]any `json:"details,omitempty"`
	OccurredAt   time.Time      `json:"occurredAt"`
}

// Filter narrows a Query. Zero values mean "no constraint".
type Filter struct {
	ActorID      int64
	ResourceType string
	From         time.Time
	To           time.Time
	Page         int
	PageSize     int
}

// PagingInfo describes the position of a query result window.
type PagingInfo struct {
	Page     int  `json:"page"`
	PageSize int  `json:"pageSize"`
	HasNext  bool `json:"hasNext"`
	PrevPage int  `json:"prevPage,omitempty"`
	NextPage int  `json:"nextPage,omitempty"`
}

// Result bundles query rows with paging metadata.
type Result struct {
	Entries []Entry    `json:"entries"`
	Paging  PagingInfo `json:"paging"`
}
