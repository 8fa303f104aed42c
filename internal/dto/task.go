package dto

import (
	"encoding/json"
	"time"
)

// OptionalString records whether a JSON field was present, and whether it was null.
type OptionalString struct {
	Set   bool
	Value *string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

type CreateTaskRequest struct {
	Title       string  `json:"title" binding:"required,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Status      string  `json:"status" binding:"omitempty,oneof=todo in_progress completed"`
	Priority    string  `json:"priority" binding:"omitempty,oneof=low medium high"`
}

// UpdateTaskRequest is a partial update: absent fields are left unchanged.
// description may be sent as null to clear it.
type UpdateTaskRequest struct {
	Title       *string        `json:"title" binding:"omitempty,min=1,max=200"`
	Description OptionalString `json:"description" swaggertype:"string"`
	Status      *string        `json:"status" binding:"omitempty,oneof=todo in_progress completed"`
	Priority    *string        `json:"priority" binding:"omitempty,oneof=low medium high"`
}

type ListTasksQuery struct {
	Skip     int    `form:"skip,default=0" binding:"min=0"`
	Limit    int    `form:"limit,default=100" binding:"min=1,max=1000"`
	Status   string `form:"status" binding:"omitempty,oneof=todo in_progress completed"`
	Priority string `form:"priority" binding:"omitempty,oneof=low medium high"`
	Sort     string `form:"sort" binding:"omitempty,oneof=priority"`
}

type SearchTasksQuery struct {
	Q string `form:"q" binding:"required,min=1,max=255"`
}

type TaskResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type PaginationMetadata struct {
	Total   int  `json:"total"`
	Skip    int  `json:"skip"`
	Limit   int  `json:"limit"`
	HasNext bool `json:"has_next"`
	HasPrev bool `json:"has_prev"`
}

type PaginatedTasksResponse struct {
	Items    []TaskResponse     `json:"items"`
	Metadata PaginationMetadata `json:"metadata"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Version string `json:"version"`
}

// ErrorResponse is the body of every 4xx/5xx reply. Fields maps a request
// field to the rule it broke.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}
