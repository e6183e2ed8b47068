package jobs

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fluswork/flus-backend/internal/authctx"
	"github.com/fluswork/flus-backend/internal/models"
	"github.com/fluswork/flus-backend/internal/realtime"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrJobNotFound   = errors.New("job not found")
	ErrNotOwner      = errors.New("only the job owner can do this")
	ErrNotSelected   = errors.New("only the selected worker can do this")
	ErrInvalidState  = errors.New("job is not in a valid state for this operation")
	ErrNoApplication = errors.New("no pending application from this worker")
)

// CategoryChecker validates job categories against the catalog.
type CategoryChecker interface {
	Exists(slug string) bool
}

// ConversationLog appends workflow system messages to the job's conversation.
type ConversationLog interface {
	AppendSystemEvent(jobID, workerID uuid.UUID, event string) error
}

// Notifier pushes realtime events to connected users.
type Notifier interface {
	NotifyUsers(userIDs []uuid.UUID, ev realtime.Event)
}

// Mailer sends workflow notification mail.
type Mailer interface {
	Send(to, subject, body string) error
}

// Recorder is the metrics slice the job workflow needs.
type Recorder interface {
	RecordJobCreated()
	RecordSelection()
	RecordJobCompleted()
}

type JobService struct {
	db           *gorm.DB
	categories   CategoryChecker
	convLog      ConversationLog
	notifier     Notifier
	mailer       Mailer
	metrics      Recorder
	degradeReads bool
}

func NewJobService(db *gorm.DB, categories CategoryChecker, convLog ConversationLog, notifier Notifier, mailer Mailer, metrics Recorder, degradeReads bool) *JobService {
	return &JobService{
		db:           db,
		categories:   categories,
		convLog:      convLog,
		notifier:     notifier,
		mailer:       mailer,
		metrics:      metrics,
		degradeReads: degradeReads,
	}
}

// Create validates the posting rules and inserts the job with status open.
func (s *JobService) Create(employerID uuid.UUID, req *CreateJobRequest) (*models.Job, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" || strings.TrimSpace(req.Category) == "" {
		return nil, errors.New("title, description and category are required")
	}
	if !s.categories.Exists(req.Category) {
		return nil, fmt.Errorf("unknown category %q", req.Category)
	}
	if req.Pay < MinPay {
		return nil, fmt.Errorf("pay must be at least %d kr", MinPay)
	}
	if req.DurationMinutes < MinDurationMinutes {
		return nil, fmt.Errorf("duration must be at least %d minutes", MinDurationMinutes)
	}

	paymentType := req.PaymentType
	if paymentType == "" {
		paymentType = models.PaymentFixed
	}
	if paymentType != models.PaymentFixed && paymentType != models.PaymentHourly {
		return nil, errors.New("payment_type must be fixed or hourly")
	}

	scheduleType := req.ScheduleType
	if scheduleType == "" {
		scheduleType = models.ScheduleFlexible
	}
	switch scheduleType {
	case models.ScheduleFlexible, models.ScheduleFixed, models.ScheduleDeadline:
	default:
		return nil, errors.New("schedule_type must be flexible, fixed or deadline")
	}

	job := models.Job{
		ID:              uuid.New(),
		EmployerID:      employerID,
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		Category:        strings.ToLower(req.Category),
		Pay:             req.Pay,
		PaymentType:     paymentType,
		DurationMinutes: req.DurationMinutes,
		Area:            req.Area,
		StreetAddress:   req.StreetAddress,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		ScheduleType:    scheduleType,
		StartsAt:        req.StartsAt,
		EndsAt:          req.EndsAt,
		Requirements:    req.Requirements,
		Status:          models.JobStatusOpen,
	}

	if err := s.db.Create(&job).Error; err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	s.metrics.RecordJobCreated()
	return &job, nil
}

func (s *JobService) Get(jobID uuid.UUID) (*models.Job, error) {
	var job models.Job
	if err := s.db.First(&job, "id = ?", jobID).Error; err != nil {
		return nil, ErrJobNotFound
	}
	return &job, nil
}

// List returns open jobs by default, filterable by category and area.
// Store failures degrade to an empty list when the degrade-reads policy is on.
func (s *JobService) List(filter ListFilter) ([]models.Job, int64, error) {
	status := filter.Status
	if status == "" {
		status = models.JobStatusOpen
	}

	query := s.db.Model(&models.Job{}).Where("status = ?", status)
	if filter.Category != "" {
		query = query.Where("category = ?", strings.ToLower(filter.Category))
	}
	if filter.Municipality != "" {
		query = query.Where("area = ?", filter.Municipality)
	}

	var total int64
	query.Count(&total)

	var jobs []models.Job
	err := query.Order("created_at DESC").Limit(filter.Limit).Offset(filter.Offset).Find(&jobs).Error
	if err != nil {
		if s.degradeReads {
			slog.Error("job list degraded to empty", "error", err)
			return []models.Job{}, 0, nil
		}
		return nil, 0, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, total, nil
}

// ListForEmployer returns every job the employer owns, newest first.
func (s *JobService) ListForEmployer(employerID uuid.UUID) ([]models.Job, error) {
	var jobs []models.Job
	err := s.db.Scopes(authctx.EmployerScope(employerID)).Order("created_at DESC").Find(&jobs).Error
	if err != nil {
		if s.degradeReads {
			slog.Error("employer job list degraded to empty", "error", err, "user_id", employerID.String())
			return []models.Job{}, nil
		}
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

// Update applies a partial update. Only the owner may update, and only
// while the job is still open.
func (s *JobService) Update(jobID, callerID uuid.UUID, req *UpdateJobRequest) (*models.Job, error) {
	var job models.Job
	if err := s.db.First(&job, "id = ?", jobID).Error; err != nil {
		return nil, ErrJobNotFound
	}
	if job.EmployerID != callerID {
		return nil, ErrNotOwner
	}
	if job.Status != models.JobStatusOpen {
		return nil, ErrInvalidState
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, errors.New("title cannot be empty")
		}
		updates["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Category != nil {
		if !s.categories.Exists(*req.Category) {
			return nil, fmt.Errorf("unknown category %q", *req.Category)
		}
		updates["category"] = strings.ToLower(*req.Category)
	}
	if req.Pay != nil {
		if *req.Pay < MinPay {
			return nil, fmt.Errorf("pay must be at least %d kr", MinPay)
		}
		updates["pay"] = *req.Pay
	}
	if req.PaymentType != nil {
		updates["payment_type"] = *req.PaymentType
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes < MinDurationMinutes {
			return nil, fmt.Errorf("duration must be at least %d minutes", MinDurationMinutes)
		}
		updates["duration_minutes"] = *req.DurationMinutes
	}
	if req.Area != nil {
		updates["area"] = *req.Area
	}
	if req.StreetAddress != nil {
		updates["street_address"] = *req.StreetAddress
	}
	if req.Latitude != nil {
		updates["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		updates["longitude"] = *req.Longitude
	}
	if req.ScheduleType != nil {
		updates["schedule_type"] = *req.ScheduleType
	}
	if req.StartsAt != nil {
		updates["starts_at"] = *req.StartsAt
	}
	if req.EndsAt != nil {
		updates["ends_at"] = *req.EndsAt
	}
	if req.Requirements != nil {
		updates["requirements"] = *req.Requirements
	}

	if len(updates) > 0 {
		if err := s.db.Model(&job).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update job: %w", err)
		}
	}

	if err := s.db.First(&job, "id = ?", jobID).Error; err != nil {
		return nil, ErrJobNotFound
	}
	return &job, nil
}

// Delete removes an open job. Owner only.
func (s *JobService) Delete(jobID, callerID uuid.UUID) error {
	var job models.Job
	if err := s.db.First(&job, "id = ?", jobID).Error; err != nil {
		return ErrJobNotFound
	}
	if job.EmployerID != callerID {
		return ErrNotOwner
	}
	if job.Status != models.JobStatusOpen {
		return ErrInvalidState
	}
	return s.db.Delete(&job).Error
}

// SelectCandidate moves the job to assigned, accepts the chosen application
// and rejects every other pending one, all inside one transaction.
func (s *JobService) SelectCandidate(jobID, workerID, callerID uuid.UUID) (*models.Job, error) {
	var job models.Job

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&job, "id = ?", jobID).Error; err != nil {
			return ErrJobNotFound
		}
		if job.EmployerID != callerID {
			return ErrNotOwner
		}
		if job.Status != models.JobStatusOpen {
			return ErrInvalidState
		}

		var app models.Application
		if err := tx.Where("job_id = ? AND applicant_id = ? AND status = ?",
			jobID, workerID, models.ApplicationStatusSent).First(&app).Error; err != nil {
			return ErrNoApplication
		}

		if err := tx.Model(&job).Updates(map[string]interface{}{
			"status":             models.JobStatusAssigned,
			"selected_worker_id": workerID,
		}).Error; err != nil {
			return fmt.Errorf("failed to assign job: %w", err)
		}

		if err := tx.Model(&app).Update("status", models.ApplicationStatusAccepted).Error; err != nil {
			return fmt.Errorf("failed to accept application: %w", err)
		}

		if err := tx.Model(&models.Application{}).
			Where("job_id = ? AND status = ?", jobID, models.ApplicationStatusSent).
			Update("status", models.ApplicationStatusRejected).Error; err != nil {
			return fmt.Errorf("failed to reject other applications: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordSelection()
	s.afterTransition(&job, workerID, models.EventWorkStarted, realtime.EventJobAssigned,
		"Du har fått jobben!", "Gratulerer! Du er valgt for jobben \""+job.Title+"\".")

	job.Status = models.JobStatusAssigned
	job.SelectedWorkerID = &workerID
	return &job, nil
}

// MarkCompleted is the selected worker reporting the work done.
func (s *JobService) MarkCompleted(jobID, callerID uuid.UUID) (*models.Job, error) {
	var job models.Job

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&job, "id = ?", jobID).Error; err != nil {
			return ErrJobNotFound
		}
		if job.SelectedWorkerID == nil || *job.SelectedWorkerID != callerID {
			return ErrNotSelected
		}
		if job.Status != models.JobStatusAssigned {
			return ErrInvalidState
		}

		if err := tx.Model(&job).Update("status", models.JobStatusCompleted).Error; err != nil {
			return fmt.Errorf("failed to complete job: %w", err)
		}

		if err := tx.Model(&models.Application{}).
			Where("job_id = ? AND applicant_id = ?", jobID, callerID).
			Update("status", models.ApplicationStatusCompleted).Error; err != nil {
			return fmt.Errorf("failed to complete application: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordJobCompleted()
	s.notifyEmployer(&job, callerID, models.EventWorkCompleted, realtime.EventJobCompleted)

	job.Status = models.JobStatusCompleted
	return &job, nil
}

// ConfirmCompletion is the employer's sign-off. The job status stays
// completed; the worker's completed-job counter increments.
func (s *JobService) ConfirmCompletion(jobID, callerID uuid.UUID) error {
	var job models.Job
	if err := s.db.First(&job, "id = ?", jobID).Error; err != nil {
		return ErrJobNotFound
	}
	if job.EmployerID != callerID {
		return ErrNotOwner
	}
	if job.Status != models.JobStatusCompleted || job.SelectedWorkerID == nil {
		return ErrInvalidState
	}

	if err := s.db.Model(&models.User{}).
		Where("id = ?", *job.SelectedWorkerID).
		UpdateColumn("completed_jobs", gorm.Expr("completed_jobs + 1")).Error; err != nil {
		return fmt.Errorf("failed to credit worker: %w", err)
	}

	if err := s.convLog.AppendSystemEvent(job.ID, *job.SelectedWorkerID, models.EventWorkApproved); err != nil {
		slog.Error("failed to append approval event", "error", err, "action", "confirm_completion")
	}
	s.notifier.NotifyUsers([]uuid.UUID{*job.SelectedWorkerID}, realtime.Event{
		Type: realtime.EventJobCompleted,
		Data: map[string]interface{}{"job_id": job.ID, "status": "approved"},
	})

	return nil
}

// Cancel withdraws a job from open or assigned. Every application still in
// sendt or akseptert moves to avslått.
func (s *JobService) Cancel(jobID, callerID uuid.UUID) (*models.Job, error) {
	var job models.Job
	var hadWorker *uuid.UUID

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&job, "id = ?", jobID).Error; err != nil {
			return ErrJobNotFound
		}
		if job.EmployerID != callerID {
			return ErrNotOwner
		}
		if job.Status != models.JobStatusOpen && job.Status != models.JobStatusAssigned {
			return ErrInvalidState
		}
		hadWorker = job.SelectedWorkerID

		if err := tx.Model(&job).Updates(map[string]interface{}{
			"status":             models.JobStatusCancelled,
			"selected_worker_id": nil,
		}).Error; err != nil {
			return fmt.Errorf("failed to cancel job: %w", err)
		}

		if err := tx.Model(&models.Application{}).
			Where("job_id = ? AND status IN ?", jobID,
				[]string{models.ApplicationStatusSent, models.ApplicationStatusAccepted}).
			Update("status", models.ApplicationStatusRejected).Error; err != nil {
			return fmt.Errorf("failed to reject applications: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if hadWorker != nil {
		if err := s.convLog.AppendSystemEvent(job.ID, *hadWorker, models.EventWorkRejected); err != nil {
			slog.Error("failed to append cancellation event", "error", err, "action", "cancel_job")
		}
		s.notifier.NotifyUsers([]uuid.UUID{*hadWorker}, realtime.Event{
			Type: realtime.EventJobCompleted,
			Data: map[string]interface{}{"job_id": job.ID, "status": "cancelled"},
		})
	}

	job.Status = models.JobStatusCancelled
	job.SelectedWorkerID = nil
	return &job, nil
}

// afterTransition runs the post-commit side effects of SelectCandidate:
// system message, websocket push and notification mail. All best-effort.
func (s *JobService) afterTransition(job *models.Job, workerID uuid.UUID, systemEvent, wsEvent, mailSubject, mailBody string) {
	if err := s.convLog.AppendSystemEvent(job.ID, workerID, systemEvent); err != nil {
		slog.Error("failed to append system event", "error", err, "action", systemEvent)
	}

	s.notifier.NotifyUsers([]uuid.UUID{workerID}, realtime.Event{
		Type: wsEvent,
		Data: map[string]interface{}{"job_id": job.ID, "title": job.Title},
	})

	var worker models.User
	if err := s.db.First(&worker, "id = ?", workerID).Error; err == nil {
		if err := s.mailer.Send(worker.Email, mailSubject, mailBody); err != nil {
			slog.Error("failed to send notification mail", "error", err, "action", systemEvent)
		}
	}
}

func (s *JobService) notifyEmployer(job *models.Job, workerID uuid.UUID, systemEvent, wsEvent string) {
	if err := s.convLog.AppendSystemEvent(job.ID, workerID, systemEvent); err != nil {
		slog.Error("failed to append system event", "error", err, "action", systemEvent)
	}
	s.notifier.NotifyUsers([]uuid.UUID{job.EmployerID}, realtime.Event{
		Type: wsEvent,
		Data: map[string]interface{}{"job_id": job.ID, "title": job.Title},
	})
}

