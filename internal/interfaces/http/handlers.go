package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wibisana/marketing-tracker/internal/application/service"
	"github.com/wibisana/marketing-tracker/internal/domain/assignment"
	"github.com/wibisana/marketing-tracker/internal/domain/authz"
	"github.com/wibisana/marketing-tracker/internal/domain/entity"
	"github.com/wibisana/marketing-tracker/internal/domain/schedule"
	"github.com/wibisana/marketing-tracker/internal/domain/workflow"
)

const dateLayout = "2006-01-02"

// actorHeader identifies the user performing a mutating request. Upstream
// authentication is expected to set it; the engine only needs the ID.
const actorHeader = "X-Actor-ID"

// Handlers contains all HTTP request handlers
type Handlers struct {
	taskService       service.TaskService
	activityService   service.ActivityService
	assignmentService service.AssignmentService
	scheduleService   service.ScheduleService
	reportService     service.ReportService
	logger            Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	taskService service.TaskService,
	activityService service.ActivityService,
	assignmentService service.AssignmentService,
	scheduleService service.ScheduleService,
	reportService service.ReportService,
	logger Logger,
) *Handlers {
	return &Handlers{
		taskService:       taskService,
		activityService:   activityService,
		assignmentService: assignmentService,
		scheduleService:   scheduleService,
		reportService:     reportService,
		logger:            logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// TaskResponse represents a task in API responses
type TaskResponse struct {
	ID         string      `json:"id"`
	ActivityID string      `json:"activity_id"`
	Title      string      `json:"title"`
	Pics       []PicRef    `json:"pics"`
	Status     string      `json:"status"`
	Priority   string      `json:"priority"`
	StartDate  string      `json:"start_date"`
	EndDate    string      `json:"end_date"`
	CreatorID  string      `json:"creator_id"`
	CreatedAt  string      `json:"created_at"`
	UpdatedAt  string      `json:"updated_at"`
}

// PicRef represents an assigned user in API responses
type PicRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ActivityResponse represents an activity in API responses
type ActivityResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	ActivityPicID string   `json:"activity_pic_id"`
	PicIDs        []string `json:"pic_ids"`
	StartDate     string   `json:"start_date"`
	EndDate       string   `json:"end_date"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
}

// ConflictResponse represents a workload conflict warning in API responses
type ConflictResponse struct {
	PicID     string `json:"pic_id"`
	PicName   string `json:"pic_name"`
	Date      string `json:"date"`
	TaskCount int    `json:"task_count"`
	Message   string `json:"message"`
}

// CreateTaskRequest represents the body of POST /api/tasks
type CreateTaskRequest struct {
	ActivityID string   `json:"activity_id" binding:"required"`
	Title      string   `json:"title" binding:"required"`
	Priority   string   `json:"priority"`
	StartDate  string   `json:"start_date" binding:"required"`
	EndDate    string   `json:"end_date" binding:"required"`
	PicIDs     []string `json:"pic_ids"`
}

// UpdateTaskRequest represents the body of PUT /api/tasks/:id
type UpdateTaskRequest struct {
	Title     string `json:"title" binding:"required"`
	Priority  string `json:"priority"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

// TransitionRequest represents the body of POST /api/tasks/:id/transition
type TransitionRequest struct {
	Target   string `json:"target" binding:"required"`
	Feedback string `json:"feedback"`
}

// AddPicRequest represents the body of POST /api/tasks/:id/pics
type AddPicRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// ReplacePicRequest represents the body of PUT /api/tasks/:id/pics/:userId
type ReplacePicRequest struct {
	NewUserID string `json:"new_user_id" binding:"required"`
}

// ActivityRequest represents the body of activity create/update requests
type ActivityRequest struct {
	Name          string   `json:"name" binding:"required"`
	ActivityPicID string   `json:"activity_pic_id" binding:"required"`
	PicIDs        []string `json:"pic_ids"`
	StartDate     string   `json:"start_date" binding:"required"`
	EndDate       string   `json:"end_date" binding:"required"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   "1.0.0",
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    response,
	})
}

// ListActivities handles GET /api/activities
func (h *Handlers) ListActivities(c *gin.Context) {
	activities, err := h.activityService.ListActivities(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list activities", "error", err)
		h.fail(c, err)
		return
	}

	responses := make([]ActivityResponse, 0, len(activities))
	for _, activity := range activities {
		responses = append(responses, toActivityResponse(activity))
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: responses})
}

// CreateActivity handles POST /api/activities
func (h *Handlers) CreateActivity(c *gin.Context) {
	actorID, ok := h.actor(c)
	if !ok {
		return
	}

	var req ActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}

	input, err := req.toInput()
	if err != nil {
		h.badRequest(c, err.Error())
		return
	}

	activity, err := h.activityService.CreateActivity(c.Request.Context(), actorID, input)
	if err != nil {
		h.logger.Error("Failed to create activity", "error", err, "actor_id", actorID)
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: toActivityResponse(activity)})
}

// GetActivity handles GET /api/activities/:id
func (h *Handlers) GetActivity(c *gin.Context) {
	activity, err := h.activityService.GetActivity(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: toActivityResponse(activity)})
}

// UpdateActivity handles PUT /api/activities/:id
func (h *Handlers) UpdateActivity(c *gin.Context) {
	actorID, ok := h.actor(c)
	if !ok {
		return
	}

	var req ActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}

	input, err := req.toInput()
	if err != nil {
		h.badRequest(c, err.Error())
		return
	}

	activity, err := h.activityService.UpdateActivity(c.Request.Context(), actorID, c.Param("id"), input)
	if err != nil {
		h.logger.Error("Failed to update activity", "error", err, "activity_id", c.Param("id"))
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: toActivityResponse(activity)})
}

// ListTasks handles GET /api/tasks
func (h *Handlers) ListTasks(c *gin.Context) {
	activityID := c.Query("activity_id")
	if activityID == "" {
		h.badRequest(c, "activity_id query parameter is required")
		return
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), activityID)
	if err != nil {
		h.logger.Error("Failed to list tasks", "error", err, "activity_id", activityID)
		h.fail(c, err)
		return
	}

	responses := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		responses = append(responses, toTaskResponse(task))
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: responses})
}

// CreateTask handles POST /api/tasks
func (h *Handlers) CreateTask(c *gin.Context) {
	actorID, ok := h.actor(c)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}

	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		h.badRequest(c, err.Error())
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), actorID, service.CreateTaskInput{
		ActivityID: req.ActivityID,
		Title:      req.Title,
		Priority:   req.Priority,
		StartDate:  startDate,
		EndDate:    endDate,
		PicIDs:     req.PicIDs,
	})
	if err != nil {
		h.logger.Error("Failed to create task", "error", err, "actor_id", actorID)
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: toTaskResponse(task)})
}

// GetTask handles GET /api/tasks/:id
func (h *Handlers) GetTask(c *gin.Context) {
	task, err := h.taskService.GetTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: toTaskResponse(task)})
}

// UpdateTask handles PUT /api/tasks/:id
func (h *Handlers) UpdateTask(c *gin.Context) {
	actorID, ok := h.actor(c)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}

	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		h.badRequest(c, err.Error())
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), actorID, c.Param("id"), service.UpdateTaskInput{
		Title:     req.Title,
		Priority:  req.Priority,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		h.logger.Error("Failed to update task", "error", err, "task_id", c.Param("id"))
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: toTaskResponse(task)})
}

// DeleteTask handles DELETE /api/tasks/:id
func (h *Handlers) DeleteTask(c *gin.Context) {
	actorID, ok := h.actor(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), actorID, c.Param("id")); err != nil {
		h.logger.Error("Failed to delete task", "error", err, "task_id", c.Param("id"))
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true})
}

// TransitionTask handles POST /api/tasks/:id/transition
func (h *Handlers) TransitionTask(c *gin.Context) {
	actorID, ok := h.actor(c)
	if !ok {
		return
	}

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}

	task, err := h.taskService.Transition(c.Request.Context(), actorID, c.Param("id"), req.Target, req.Feedback)
	if err != nil {
		h.logger.Error("Transition rejected", "error", err, "task_id", c.Param("id"), "target", req.Target)
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: toTaskResponse(task)})
}

// GetApprovalLog handles GET /api/tasks/:id/approval-log
func (h *Handlers) GetApprovalLog(c *gin.Context) {
	entries, err := h.taskService.ApprovalLog(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: entries})
}

// AddPic handles POST /api/tasks/:id/pics
func (h *Handlers) AddPic(c *gin.Context) {
	actorID, ok := h.actor(c)
	if !ok {
		return
	}

	var req AddPicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}

	task, err := h.assignmentService.AddPic(c.Request.Context(), actorID, c.Param("id"), req.UserID)
	if err != nil {
		h.logger.Error("Failed to add PIC", "error", err, "task_id", c.Param("id"), "user_id", req.UserID)
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: toTaskResponse(task)})
}

// RemovePic handles DELETE /api/tasks/:id/pics/:userId
func (h *Handlers) RemovePic(c *gin.Context) {
	actorID, ok := h.actor(c)
	if !ok {
		return
	}

	task, err := h.assignmentService.RemovePic(c.Request.Context(), actorID, c.Param("id"), c.Param("userId"))
	if err != nil {
		h.logger.Error("Failed to remove PIC", "error", err, "task_id", c.Param("id"), "user_id", c.Param("userId"))
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: toTaskResponse(task)})
}

// ReplacePic handles PUT /api/tasks/:id/pics/:userId
func (h *Handlers) ReplacePic(c *gin.Context) {
	actorID, ok := h.actor(c)
	if !ok {
		return
	}

	var req ReplacePicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}

	task, err := h.assignmentService.ReplacePic(c.Request.Context(), actorID, c.Param("id"), c.Param("userId"), req.NewUserID)
	if err != nil {
		h.logger.Error("Failed to replace PIC", "error", err, "task_id", c.Param("id"))
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: toTaskResponse(task)})
}

// GetAssignmentLog handles GET /api/tasks/:id/assignment-log
func (h *Handlers) GetAssignmentLog(c *gin.Context) {
	entries, err := h.assignmentService.AssignmentLog(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: entries})
}

// CalendarConflicts handles GET /api/calendar/conflicts
func (h *Handlers) CalendarConflicts(c *gin.Context) {
	from, to, threshold, err := h.rangeParams(c)
	if err != nil {
		h.badRequest(c, err.Error())
		return
	}

	warnings, err := h.scheduleService.CalendarConflicts(c.Request.Context(), from, to, threshold)
	if err != nil {
		h.logger.Error("Failed to compute conflicts", "error", err)
		h.fail(c, err)
		return
	}

	responses := make([]ConflictResponse, 0, len(warnings))
	for _, w := range warnings {
		responses = append(responses, toConflictResponse(w))
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: responses})
}

// WorkloadReport handles GET /api/reports/workload and streams an xlsx file
func (h *Handlers) WorkloadReport(c *gin.Context) {
	from, to, threshold, err := h.rangeParams(c)
	if err != nil {
		h.badRequest(c, err.Error())
		return
	}

	file, err := h.reportService.WorkloadReport(c.Request.Context(), from, to, threshold)
	if err != nil {
		h.logger.Error("Failed to build workload report", "error", err)
		h.fail(c, err)
		return
	}
	defer file.Close()

	filename := "workload_" + from.Format(dateLayout) + "_" + to.Format(dateLayout) + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if _, err := file.WriteTo(c.Writer); err != nil {
		h.logger.Error("Failed to stream workload report", "error", err)
	}
}

// actor extracts the acting user ID from the request header
func (h *Handlers) actor(c *gin.Context) (string, bool) {
	actorID := c.GetHeader(actorHeader)
	if actorID == "" {
		h.badRequest(c, "missing "+actorHeader+" header")
		return "", false
	}
	return actorID, true
}

func (h *Handlers) badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Response{Success: false, Error: msg})
}

// fail maps domain errors to HTTP statuses
func (h *Handlers) fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), Response{Success: false, Error: err.Error()})
}

// statusFor translates domain sentinel errors into HTTP status codes.
// Unrecognized errors are treated as internal failures.
func statusFor(err error) int {
	switch {
	case errors.Is(err, authz.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, authz.ErrUnknownActivity):
		return http.StatusNotFound
	case errors.Is(err, workflow.ErrInvalidTransition),
		errors.Is(err, assignment.ErrAlreadyAssigned),
		errors.Is(err, assignment.ErrNotAssigned),
		errors.Is(err, assignment.ErrLastPicRemoval):
		return http.StatusConflict
	case errors.Is(err, workflow.ErrMissingFeedback),
		errors.Is(err, workflow.ErrInvalidState):
		return http.StatusBadRequest
	case strings.Contains(err.Error(), "not found"):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// rangeParams parses the from/to/threshold query parameters shared by the
// calendar and reporting endpoints.
func (h *Handlers) rangeParams(c *gin.Context) (time.Time, time.Time, int, error) {
	from, to, err := parseDateRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return time.Time{}, time.Time{}, 0, err
	}

	threshold := schedule.DefaultThreshold
	if raw := c.Query("threshold"); raw != "" {
		threshold, err = strconv.Atoi(raw)
		if err != nil || threshold < 1 {
			return time.Time{}, time.Time{}, 0, errors.New("threshold must be a positive integer")
		}
	}

	return from, to, threshold, nil
}

func parseDateRange(fromStr, toStr string) (time.Time, time.Time, error) {
	from, err := time.Parse(dateLayout, fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid from date, expected YYYY-MM-DD")
	}
	to, err := time.Parse(dateLayout, toStr)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid to date, expected YYYY-MM-DD")
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, errors.New("to date must not be before from date")
	}
	return from, to, nil
}

func (r ActivityRequest) toInput() (service.ActivityInput, error) {
	startDate, endDate, err := parseDateRange(r.StartDate, r.EndDate)
	if err != nil {
		return service.ActivityInput{}, err
	}
	return service.ActivityInput{
		Name:          r.Name,
		ActivityPicID: r.ActivityPicID,
		PicIDs:        r.PicIDs,
		StartDate:     startDate,
		EndDate:       endDate,
	}, nil
}

// toTaskResponse converts domain entity to API response
func toTaskResponse(task *entity.Task) TaskResponse {
	pics := make([]PicRef, 0, len(task.Pics))
	for _, pic := range task.Pics {
		pics = append(pics, PicRef{ID: pic.ID, Name: pic.Name})
	}

	return TaskResponse{
		ID:         task.ID,
		ActivityID: task.ActivityID,
		Title:      task.Title,
		Pics:       pics,
		Status:     task.Status,
		Priority:   task.Priority,
		StartDate:  task.StartDate.Format(dateLayout),
		EndDate:    task.EndDate.Format(dateLayout),
		CreatorID:  task.CreatorID,
		CreatedAt:  task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  task.UpdatedAt.Format(time.RFC3339),
	}
}

func toActivityResponse(activity *entity.Activity) ActivityResponse {
	return ActivityResponse{
		ID:            activity.ID,
		Name:          activity.Name,
		ActivityPicID: activity.ActivityPicID,
		PicIDs:        activity.PicIDs,
		StartDate:     activity.StartDate.Format(dateLayout),
		EndDate:       activity.EndDate.Format(dateLayout),
		CreatedAt:     activity.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     activity.UpdatedAt.Format(time.RFC3339),
	}
}

func toConflictResponse(w schedule.ConflictWarning) ConflictResponse {
	return ConflictResponse{
		PicID:     w.PicID,
		PicName:   w.PicName,
		Date:      w.Date.Format(dateLayout),
		TaskCount: w.TaskCount,
		Message:   w.Message,
	}
}
