package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/jobqueue-gateway/internal/api/metrics"
	"github.com/99minutos/jobqueue-gateway/internal/core/ports"
)

// JobHandler handles HTTP requests for the recommendation job queue. Every
// route is scoped to the user id in the path, which the gateway has already
// matched against the caller.
type JobHandler struct {
	service ports.JobService
}

func NewJobHandler(service ports.JobService) *JobHandler {
	return &JobHandler{service: service}
}

// --- Request / Response types ---

type enqueueJobRequest struct {
	TargetUserID int64 `json:"target_user_id" validate:"required,gt=0"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Enqueue handles POST /:uid/jobs.
//
// @Summary      Enqueue a recommendation job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        uid              path      int                true   "Acting user id"
// @Param        Idempotency-Key  header    string             false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      enqueueJobRequest  true   "Job details"
// @Success      201              {object}  domain.Job
// @Success      200              {object}  domain.Job  "Replay of an earlier request with the same Idempotency-Key"
// @Failure      400              {object}  errorBody
// @Failure      401              {object}  errorBody
// @Failure      403              {object}  errorBody
// @Failure      422              {object}  errorBody
// @Failure      500              {object}  errorBody
// @Router       /{uid}/jobs [post]
func (h *JobHandler) Enqueue(c echo.Context) error {
	ownerID, err := pathInt(c, "uid")
	if err != nil {
		return err
	}

	var req enqueueJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Enqueue(c.Request().Context(), ports.EnqueueJobInput{
		OwnerID:        ownerID,
		TargetUserID:   req.TargetUserID,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return err
	}

	metrics.JobsEnqueuedTotal.WithLabelValues(strconv.FormatBool(result.Replayed)).Inc()

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	return c.JSON(status, result.Job)
}

// List handles GET /:uid/jobs.
//
// @Summary      List queued jobs
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        uid  path      int  true  "Acting user id"
// @Success      200  {array}   domain.Job
// @Failure      401  {object}  errorBody
// @Failure      403  {object}  errorBody
// @Router       /{uid}/jobs [get]
func (h *JobHandler) List(c echo.Context) error {
	ownerID, err := pathInt(c, "uid")
	if err != nil {
		return err
	}

	jobs, err := h.service.List(c.Request().Context(), ownerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, jobs)
}

// Status handles GET /:uid/jobs/:id.
//
// @Summary      Get a job
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        uid  path      int  true  "Acting user id"
// @Param        id   path      int  true  "Job id"
// @Success      200  {object}  domain.Job
// @Failure      404  {object}  errorBody
// @Router       /{uid}/jobs/{id} [get]
func (h *JobHandler) Status(c echo.Context) error {
	ownerID, err := pathInt(c, "uid")
	if err != nil {
		return err
	}
	jobID, err := pathInt(c, "id")
	if err != nil {
		return err
	}

	job, err := h.service.Status(c.Request().Context(), ownerID, jobID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, job)
}

// Cancel handles DELETE /:uid/jobs/:id.
//
// @Summary      Cancel a job
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        uid  path      int  true  "Acting user id"
// @Param        id   path      int  true  "Job id"
// @Success      200  {object}  messageResponse
// @Router       /{uid}/jobs/{id} [delete]
func (h *JobHandler) Cancel(c echo.Context) error {
	ownerID, err := pathInt(c, "uid")
	if err != nil {
		return err
	}
	jobID, err := pathInt(c, "id")
	if err != nil {
		return err
	}

	canceled, err := h.service.Cancel(c.Request().Context(), ownerID, jobID)
	if err != nil {
		return err
	}
	if !canceled {
		return c.JSON(http.StatusOK, messageResponse{Message: fmt.Sprintf("Unable to cancel job %d", jobID)})
	}

	metrics.JobsCanceledTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: fmt.Sprintf("Job %d has been canceled", jobID)})
}

func pathInt(c echo.Context, name string) (int64, error) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return v, nil
}
