package jobs

import (
	"errors"

	"github.com/fluswork/flus-backend/internal/authctx"
	"github.com/fluswork/flus-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type JobHandler struct {
	jobService *JobService
}

func NewJobHandler(jobService *JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// CreateJob handles POST /jobs.
func (h *JobHandler) CreateJob(c *fiber.Ctx) error {
	userID, err := authctx.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	job, err := h.jobService.Create(userID, &req)
	if err != nil {
		return badRequest(c, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(job)
}

// ListJobs handles GET /jobs - the public job board.
func (h *JobHandler) ListJobs(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	jobs, total, err := h.jobService.List(ListFilter{
		Status:       c.Query("status"),
		Category:     c.Query("category"),
		Municipality: c.Query("municipality"),
		Limit:        limit,
		Offset:       (page - 1) * limit,
	})
	if err != nil {
		return internalError(c, "Failed to fetch jobs")
	}

	return c.JSON(JobListResponse{Jobs: jobs, Total: total, Page: page, Limit: limit})
}

// GetJob handles GET /jobs/:id.
func (h *JobHandler) GetJob(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid job id")
	}

	job, err := h.jobService.Get(jobID)
	if err != nil {
		return notFound(c, "Job not found")
	}
	return c.JSON(job)
}

// ListMyJobs handles GET /my-jobs.
func (h *JobHandler) ListMyJobs(c *fiber.Ctx) error {
	userID, err := authctx.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	jobs, err := h.jobService.ListForEmployer(userID)
	if err != nil {
		return internalError(c, "Failed to fetch jobs")
	}
	return c.JSON(fiber.Map{"jobs": jobs})
}

// UpdateJob handles PUT /my-jobs/:id.
func (h *JobHandler) UpdateJob(c *fiber.Ctx) error {
	userID, err := authctx.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid job id")
	}

	var req UpdateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	job, err := h.jobService.Update(jobID, userID, &req)
	if err != nil {
		return h.mapError(c, err, "Failed to update job")
	}
	return c.JSON(job)
}

// DeleteJob handles DELETE /my-jobs/:id.
func (h *JobHandler) DeleteJob(c *fiber.Ctx) error {
	userID, err := authctx.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid job id")
	}

	if err := h.jobService.Delete(jobID, userID); err != nil {
		return h.mapError(c, err, "Failed to delete job")
	}
	return c.JSON(fiber.Map{"message": "Job deleted"})
}

// SelectCandidate handles POST /jobs/:id/select-candidate.
func (h *JobHandler) SelectCandidate(c *fiber.Ctx) error {
	userID, err := authctx.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid job id")
	}

	var req SelectCandidateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	workerID, err := uuid.Parse(req.WorkerID)
	if err != nil {
		return badRequest(c, "Invalid worker id")
	}

	job, err := h.jobService.SelectCandidate(jobID, workerID, userID)
	if err != nil {
		return h.mapError(c, err, "Failed to select candidate")
	}
	return c.JSON(job)
}

// MarkCompleted handles POST /jobs/:id/complete.
func (h *JobHandler) MarkCompleted(c *fiber.Ctx) error {
	userID, err := authctx.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid job id")
	}

	job, err := h.jobService.MarkCompleted(jobID, userID)
	if err != nil {
		return h.mapError(c, err, "Failed to complete job")
	}
	return c.JSON(job)
}

// ConfirmCompletion handles POST /jobs/:id/confirm-completion.
func (h *JobHandler) ConfirmCompletion(c *fiber.Ctx) error {
	userID, err := authctx.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid job id")
	}

	if err := h.jobService.ConfirmCompletion(jobID, userID); err != nil {
		return h.mapError(c, err, "Failed to confirm completion")
	}
	return c.JSON(fiber.Map{"message": "Completion confirmed"})
}

// CancelJob handles POST /jobs/:id/cancel.
func (h *JobHandler) CancelJob(c *fiber.Ctx) error {
	userID, err := authctx.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid job id")
	}

	job, err := h.jobService.Cancel(jobID, userID)
	if err != nil {
		return h.mapError(c, err, "Failed to cancel job")
	}
	return c.JSON(job)
}

func (h *JobHandler) mapError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, ErrJobNotFound), errors.Is(err, ErrNoApplication):
		return notFound(c, err.Error())
	case errors.Is(err, ErrNotOwner), errors.Is(err, ErrNotSelected):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
	case errors.Is(err, ErrInvalidState):
		return badRequest(c, err.Error())
	default:
		return badRequest(c, err.Error())
	}
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: msg})
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: msg})
}

func internalError(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: msg})
}
