package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	dom "taskmanager/internal/domain"
	"taskmanager/internal/dto"
	"taskmanager/internal/service"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	svc *service.TaskService
}

func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// Create godoc
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateTaskRequest  true  "Task body"
// @Success      201   {object}  dto.TaskResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	t, err := h.svc.Create(c.Request.Context(), dom.NewTask{
		Title:       req.Title,
		Description: req.Description,
		Status:      dom.Status(req.Status),
		Priority:    dom.Priority(req.Priority),
	})
	if err != nil {
		writeServiceError(c, err, 0)
		return
	}

	c.JSON(http.StatusCreated, taskToResponse(t))
}

// List godoc
// @Summary      List tasks with pagination and filters
// @Description  Filters apply to the requested page only; metadata describes the whole collection.
// @Tags         tasks
// @Produce      json
// @Param        skip      query     int     false  "Records to skip"  default(0)  minimum(0)
// @Param        limit     query     int     false  "Page size"  default(100)  minimum(1)  maximum(1000)
// @Param        status    query     string  false  "Status filter"  Enums(todo, in_progress, completed)
// @Param        priority  query     string  false  "Priority filter"  Enums(low, medium, high)
// @Param        sort      query     string  false  "Order of the page"  Enums(priority)
// @Success      200       {object}  dto.PaginatedTasksResponse
// @Failure      422       {object}  dto.ErrorResponse
// @Router       /tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	var q dto.ListTasksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeBindError(c, err)
		return
	}

	params := service.ListParams{
		Skip:  q.Skip,
		Limit: q.Limit,
		Sort:  service.SortOrder(q.Sort),
	}
	if q.Status != "" {
		s, err := dom.ParseStatus(q.Status)
		if err != nil {
			writeServiceError(c, err, 0)
			return
		}
		params.Status = &s
	}
	if q.Priority != "" {
		p, err := dom.ParsePriority(q.Priority)
		if err != nil {
			writeServiceError(c, err, 0)
			return
		}
		params.Priority = &p
	}

	page, err := h.svc.List(c.Request.Context(), params)
	if err != nil {
		writeServiceError(c, err, 0)
		return
	}
	c.JSON(http.StatusOK, dto.PaginatedTasksResponse{
		Items: tasksToResponses(page.Items),
		Metadata: dto.PaginationMetadata{
			Total:   page.Metadata.Total,
			Skip:    page.Metadata.Skip,
			Limit:   page.Metadata.Limit,
			HasNext: page.Metadata.HasNext,
			HasPrev: page.Metadata.HasPrev,
		},
	})
}

// Search godoc
// @Summary      Search tasks by title or description
// @Tags         tasks
// @Produce      json
// @Param        q    query     string  true  "Search query"  minlength(1)  maxlength(255)
// @Success      200  {array}   dto.TaskResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /tasks/search [get]
func (h *TaskHandler) Search(c *gin.Context) {
	var q dto.SearchTasksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeBindError(c, err)
		return
	}
	list, err := h.svc.Search(c.Request.Context(), q.Q)
	if err != nil {
		writeServiceError(c, err, 0)
		return
	}
	c.JSON(http.StatusOK, tasksToResponses(list))
}

// GetByID godoc
// @Summary      Get a task by ID
// @Tags         tasks
// @Produce      json
// @Param        id   path      int  true  "Task ID"
// @Success      200  {object}  dto.TaskResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /tasks/{id} [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	t, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, id)
		return
	}
	c.JSON(http.StatusOK, taskToResponse(t))
}

// Update godoc
// @Summary      Update a task
// @Description  Only the fields present in the body are changed.
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id    path      int                    true  "Task ID"
// @Param        body  body      dto.UpdateTaskRequest  true  "Partial update"
// @Success      200   {object}  dto.TaskResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	patch := dom.TaskPatch{
		Title:       req.Title,
		Description: dom.OptionalString{Set: req.Description.Set, Value: req.Description.Value},
	}
	if req.Status != nil {
		s := dom.Status(*req.Status)
		patch.Status = &s
	}
	if req.Priority != nil {
		p := dom.Priority(*req.Priority)
		patch.Priority = &p
	}

	t, err := h.svc.Update(c.Request.Context(), id, patch)
	if err != nil {
		writeServiceError(c, err, id)
		return
	}
	c.JSON(http.StatusOK, taskToResponse(t))
}

// Delete godoc
// @Summary      Delete a task
// @Tags         tasks
// @Param        id   path  int  true  "Task ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeServiceError(c, err, id)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
			Error:  "invalid id",
			Fields: map[string]string{name: "int"},
		})
		return 0, false
	}
	return id, true
}

func writeServiceError(c *gin.Context, err error, id int64) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: fmt.Sprintf("Task with id %d not found", id)})
	case errors.Is(err, dom.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}
}

func taskToResponse(t dom.Task) dto.TaskResponse {
	return dto.TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func tasksToResponses(list []dom.Task) []dto.TaskResponse {
	out := make([]dto.TaskResponse, len(list))
	for i := range list {
		out[i] = taskToResponse(list[i])
	}
	return out
}
