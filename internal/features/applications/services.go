package applications

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/fluswork/flus-backend/internal/models"
	"github.com/fluswork/flus-backend/internal/realtime"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrJobNotFound = errors.New("job not found")
	ErrJobNotOpen  = errors.New("job is not open for applications")
	ErrOwnJob      = errors.New("you cannot apply to your own job")
	ErrNotJobOwner = errors.New("only the job owner can list applications")
)

// ConversationStarter bootstraps the chat channel on first application.
type ConversationStarter interface {
	FindOrCreate(jobID, workerID, employerID uuid.UUID) (*models.Conversation, error)
}

// Notifier pushes realtime events to connected users.
type Notifier interface {
	NotifyUsers(userIDs []uuid.UUID, ev realtime.Event)
}

// Mailer sends workflow notification mail.
type Mailer interface {
	Send(to, subject, body string) error
}

// Recorder is the metrics slice the matching workflow needs.
type Recorder interface {
	RecordApplication()
}

type ApplicationService struct {
	db            *gorm.DB
	conversations ConversationStarter
	notifier      Notifier
	mailer        Mailer
	metrics       Recorder
	degradeReads  bool
}

func NewApplicationService(db *gorm.DB, conversations ConversationStarter, notifier Notifier, mailer Mailer, metrics Recorder, degradeReads bool) *ApplicationService {
	return &ApplicationService{
		db:            db,
		conversations: conversations,
		notifier:      notifier,
		mailer:        mailer,
		metrics:       metrics,
		degradeReads:  degradeReads,
	}
}

// Apply is idempotent: a second application to the same job returns the
// existing row untouched. When the employer has auto-approval on, the new
// application lands directly in akseptert.
func (s *ApplicationService) Apply(jobID, workerID uuid.UUID, message string) (*models.Application, error) {
	var job models.Job
	if err := s.db.First(&job, "id = ?", jobID).Error; err != nil {
		return nil, ErrJobNotFound
	}
	if job.EmployerID == workerID {
		return nil, ErrOwnJob
	}
	if job.Status != models.JobStatusOpen {
		return nil, ErrJobNotOpen
	}

	var existing models.Application
	err := s.db.Where("job_id = ? AND applicant_id = ?", jobID, workerID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up application: %w", err)
	}

	status := models.ApplicationStatusSent
	var employer models.User
	if err := s.db.First(&employer, "id = ?", job.EmployerID).Error; err == nil {
		if employer.AutoApproveApplicants {
			status = models.ApplicationStatusAccepted
		}
	}

	app := models.Application{
		ID:          uuid.New(),
		JobID:       jobID,
		ApplicantID: workerID,
		Message:     message,
		Status:      status,
	}

	if err := s.db.Create(&app).Error; err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	s.metrics.RecordApplication()

	// First contact always opens the conversation channel.
	if _, err := s.conversations.FindOrCreate(jobID, workerID, job.EmployerID); err != nil {
		slog.Error("failed to open conversation for application", "error", err, "action", "apply")
	}

	s.notifier.NotifyUsers([]uuid.UUID{job.EmployerID}, realtime.Event{
		Type: realtime.EventNewApplicant,
		Data: map[string]interface{}{"job_id": jobID, "application_id": app.ID},
	})
	if employer.Email != "" {
		body := "Du har fått en ny søknad på jobben \"" + job.Title + "\". Logg inn for å se søkeren."
		if err := s.mailer.Send(employer.Email, "Ny søknad på "+job.Title, body); err != nil {
			slog.Error("failed to send application mail", "error", err, "action", "apply")
		}
	}

	return &app, nil
}

// ListForJob returns every application on the job with the applicant's
// profile denormalized. Related rows are fetched in bulk, one query per
// table, instead of per application.
func (s *ApplicationService) ListForJob(jobID, callerID uuid.UUID) ([]ApplicantCard, error) {
	var job models.Job
	if err := s.db.First(&job, "id = ?", jobID).Error; err != nil {
		return nil, ErrJobNotFound
	}
	if job.EmployerID != callerID {
		return nil, ErrNotJobOwner
	}

	var apps []models.Application
	if err := s.db.Where("job_id = ?", jobID).Order("created_at ASC").Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	if len(apps) == 0 {
		return []ApplicantCard{}, nil
	}

	applicantIDs := make([]uuid.UUID, 0, len(apps))
	for _, a := range apps {
		applicantIDs = append(applicantIDs, a.ApplicantID)
	}

	var users []models.User
	if err := s.db.Where("id IN ?", applicantIDs).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch applicants: %w", err)
	}
	userByID := make(map[uuid.UUID]models.User, len(users))
	for _, u := range users {
		userByID[u.ID] = u
	}

	var skills []models.Skill
	if err := s.db.Where("user_id IN ?", applicantIDs).Find(&skills).Error; err != nil {
		slog.Error("failed to fetch applicant skills", "error", err, "action", "list_for_job")
	}
	skillsByUser := make(map[uuid.UUID][]string)
	for _, sk := range skills {
		skillsByUser[sk.UserID] = append(skillsByUser[sk.UserID], sk.Name)
	}

	type ratingRow struct {
		RevieweeID uuid.UUID
		Avg        float64
		Cnt        int
	}
	var ratings []ratingRow
	if err := s.db.Model(&models.Review{}).
		Select("reviewee_id, AVG(rating) as avg, COUNT(*) as cnt").
		Where("reviewee_id IN ?", applicantIDs).
		Group("reviewee_id").
		Scan(&ratings).Error; err != nil {
		slog.Error("failed to fetch applicant ratings", "error", err, "action", "list_for_job")
	}
	ratingByUser := make(map[uuid.UUID]ratingRow, len(ratings))
	for _, r := range ratings {
		ratingByUser[r.RevieweeID] = r
	}

	cards := make([]ApplicantCard, 0, len(apps))
	for _, a := range apps {
		card := ApplicantCard{Application: a, Skills: []string{}}
		if u, ok := userByID[a.ApplicantID]; ok {
			card.Name = u.Name
			card.Municipality = u.Municipality
			card.Bio = u.Bio
			card.Phone = u.Phone
			card.AvatarURL = u.AvatarURL
			card.CompletedJobs = u.CompletedJobs
		}
		if sk, ok := skillsByUser[a.ApplicantID]; ok {
			card.Skills = sk
		}
		if r, ok := ratingByUser[a.ApplicantID]; ok {
			card.Rating = r.Avg
			card.ReviewCount = r.Cnt
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// ListForUser returns the caller's own applications with job summaries.
// Store failures degrade to an empty list when the policy is on.
func (s *ApplicationService) ListForUser(workerID uuid.UUID) ([]ApplicationWithJob, error) {
	var apps []models.Application
	if err := s.db.Where("applicant_id = ?", workerID).Order("created_at DESC").Find(&apps).Error; err != nil {
		if s.degradeReads {
			slog.Error("application list degraded to empty", "error", err, "user_id", workerID.String())
			return []ApplicationWithJob{}, nil
		}
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	if len(apps) == 0 {
		return []ApplicationWithJob{}, nil
	}

	jobIDs := make([]uuid.UUID, 0, len(apps))
	for _, a := range apps {
		jobIDs = append(jobIDs, a.JobID)
	}

	var jobList []models.Job
	if err := s.db.Unscoped().Where("id IN ?", jobIDs).Find(&jobList).Error; err != nil {
		if s.degradeReads {
			slog.Error("application job lookup degraded", "error", err, "user_id", workerID.String())
			jobList = nil
		} else {
			return nil, fmt.Errorf("failed to fetch jobs: %w", err)
		}
	}
	jobByID := make(map[uuid.UUID]models.Job, len(jobList))
	for _, j := range jobList {
		jobByID[j.ID] = j
	}

	result := make([]ApplicationWithJob, 0, len(apps))
	for _, a := range apps {
		entry := ApplicationWithJob{
			Application: a,
			JobID:       a.JobID,
			AppliedAt:   a.CreatedAt,
		}
		if j, ok := jobByID[a.JobID]; ok {
			entry.JobTitle = j.Title
			entry.JobStatus = j.Status
			entry.Category = j.Category
			entry.Pay = j.Pay
			entry.Area = j.Area
		}
		result = append(result, entry)
	}
	return result, nil
}
