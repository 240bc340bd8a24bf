package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	. "taskmanager/internal/adapter/http/helper"
	"taskmanager/internal/adapter/http/middleware"
	. "taskmanager/internal/adapter/http/validation"
	"taskmanager/internal/core/domain"
	"taskmanager/internal/core/model/request"
	"taskmanager/internal/core/model/response"
	"taskmanager/internal/core/port"
	"taskmanager/internal/core/util"
	"taskmanager/pkg/logger"
	. "taskmanager/pkg/tracing"
)

type TaskHandler struct {
	svc port.TaskService
	log *logger.Logger
}

func NewTaskHandler(svc port.TaskService, log *logger.Logger) *TaskHandler {
	return &TaskHandler{
		svc: svc,
		log: log,
	}
}

func (t *TaskHandler) startSpan(c *gin.Context, operation string) trace.Span {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.task."+operation, []attribute.KeyValue{
		attribute.String("handler.operation", operation),
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	})

	c.Request = c.Request.WithContext(ctx)

	return span
}

// owner returns the authenticated identity, answering 401 when the route was
// mounted without the Authenticate middleware.
func (t *TaskHandler) owner(c *gin.Context) (domain.Identity, bool) {
	identity, ok := middleware.IdentityFrom(c)

	if !ok {
		SendUnauthorizedError(c, "Unauthorized")
	}

	return identity, ok
}

func (t *TaskHandler) taskID(c *gin.Context) (int64, bool) {
	uri, err := util.URIToStruct[request.TaskURI](c)

	if err != nil {
		SendBadRequestError(c, "id", "id must be a positive integer")
		return 0, false
	}

	if err := Validator.Struct(uri); err != nil {
		SendValidationError(c, err)
		return 0, false
	}

	return uri.ID, true
}

func (t *TaskHandler) List(c *gin.Context) {
	span := t.startSpan(c, "List")
	defer span.End()

	identity, ok := t.owner(c)
	if !ok {
		return
	}

	params, err := util.QueryToStruct[request.PaginationRequest](c)

	if err != nil {
		SendBadRequestError(c, "query", "page and limit must be integers")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	var page, limit int

	if params.Page != nil {
		page = *params.Page
	}

	if params.Limit != nil {
		limit = *params.Limit
	}

	result, err := t.svc.List(c.Request.Context(), identity.ID, page, limit)

	if err != nil {
		AddSpanError(span, err)
		SendDomainError(c, err, t.log)
		return
	}

	span.SetAttributes(attribute.Int("task.total", result.Total))

	c.JSON(http.StatusOK, response.NewTaskListResponse(result))
}

func (t *TaskHandler) Create(c *gin.Context) {
	span := t.startSpan(c, "Create")
	defer span.End()

	identity, ok := t.owner(c)
	if !ok {
		return
	}

	params, err := util.ParamsToStruct[request.CreateTaskRequest](c)

	if err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	task, err := t.svc.Create(c.Request.Context(), identity.ID, params.Title, params.Description)

	if err != nil {
		AddSpanError(span, err)
		SendDomainError(c, err, t.log)
		return
	}

	c.JSON(http.StatusCreated, response.NewTaskResponse(task))
}

func (t *TaskHandler) Get(c *gin.Context) {
	span := t.startSpan(c, "Get")
	defer span.End()

	identity, ok := t.owner(c)
	if !ok {
		return
	}

	taskID, ok := t.taskID(c)
	if !ok {
		return
	}

	task, err := t.svc.Get(c.Request.Context(), identity.ID, taskID)

	if err != nil {
		AddSpanError(span, err)
		SendDomainError(c, err, t.log)
		return
	}

	c.JSON(http.StatusOK, response.NewTaskResponse(task))
}

func (t *TaskHandler) Update(c *gin.Context) {
	span := t.startSpan(c, "Update")
	defer span.End()

	identity, ok := t.owner(c)
	if !ok {
		return
	}

	taskID, ok := t.taskID(c)
	if !ok {
		return
	}

	params, err := util.ParamsToStruct[request.UpdateTaskRequest](c)

	if err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	patch := domain.TaskPatch{
		Title:       params.Title,
		Description: params.Description,
	}

	if params.Status != nil {
		status, err := domain.ParseTaskStatus(*params.Status)

		if err != nil {
			SendDomainError(c, err, t.log)
			return
		}

		patch.Status = &status
	}

	task, err := t.svc.Update(c.Request.Context(), identity.ID, taskID, patch)

	if err != nil {
		AddSpanError(span, err)
		SendDomainError(c, err, t.log)
		return
	}

	c.JSON(http.StatusOK, response.NewTaskResponse(task))
}

func (t *TaskHandler) Delete(c *gin.Context) {
	span := t.startSpan(c, "Delete")
	defer span.End()

	identity, ok := t.owner(c)
	if !ok {
		return
	}

	taskID, ok := t.taskID(c)
	if !ok {
		return
	}

	if err := t.svc.Remove(c.Request.Context(), identity.ID, taskID); err != nil {
		AddSpanError(span, err)
		SendDomainError(c, err, t.log)
		return
	}

	c.JSON(http.StatusOK, response.MessageResponse{Message: "Task deleted"})
}
