package applications

import (
	"testing"

	"github.com/fluswork/flus-backend/internal/models"
	"github.com/fluswork/flus-backend/internal/realtime"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Skill{}, &models.Job{}, &models.Application{},
		&models.Conversation{}, &models.Message{}, &models.Review{},
	))
	return db
}

type stubStarter struct {
	calls int
}

func (s *stubStarter) FindOrCreate(jobID, workerID, employerID uuid.UUID) (*models.Conversation, error) {
	s.calls++
	return &models.Conversation{ID: uuid.New(), JobID: jobID, WorkerID: workerID, EmployerID: employerID}, nil
}

type stubNotifier struct {
	events []realtime.Event
}

func (s *stubNotifier) NotifyUsers(userIDs []uuid.UUID, ev realtime.Event) {
	s.events = append(s.events, ev)
}

type stubMailer struct {
	sent []string
}

func (s *stubMailer) Send(to, subject, body string) error {
	s.sent = append(s.sent, to)
	return nil
}

type stubRecorder struct {
	applications int
}

func (s *stubRecorder) RecordApplication() { s.applications++ }

type appFixture struct {
	db       *gorm.DB
	service  *ApplicationService
	starter  *stubStarter
	notifier *stubNotifier
	mailer   *stubMailer
	metrics  *stubRecorder
	employer models.User
	worker   models.User
	job      models.Job
}

func newAppFixture(t *testing.T) *appFixture {
	t.Helper()
	db := openTestDB(t)
	f := &appFixture{
		db:       db,
		starter:  &stubStarter{},
		notifier: &stubNotifier{},
		mailer:   &stubMailer{},
		metrics:  &stubRecorder{},
	}
	f.service = NewApplicationService(db, f.starter, f.notifier, f.mailer, f.metrics, false)

	f.employer = models.User{ID: uuid.New(), Email: "arbeidsgiver@example.no", Name: "Kari", Role: "employer"}
	f.worker = models.User{ID: uuid.New(), Email: "arbeider@example.no", Name: "Ola", Role: "worker"}
	require.NoError(t, db.Create(&f.employer).Error)
	require.NoError(t, db.Create(&f.worker).Error)

	f.job = models.Job{
		ID: uuid.New(), EmployerID: f.employer.ID, Title: "Rydde garasjen",
		Description: "d", Category: "rengjøring", Pay: 300, DurationMinutes: 60,
		Status: models.JobStatusOpen,
	}
	require.NoError(t, db.Create(&f.job).Error)
	return f
}

func TestApplyCreatesApplicationAndConversation(t *testing.T) {
	f := newAppFixture(t)

	app, err := f.service.Apply(f.job.ID, f.worker.ID, "Jeg kan ta denne i morgen")
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusSent, app.Status)
	assert.Equal(t, 1, f.starter.calls)
	assert.Equal(t, 1, f.metrics.applications)
	assert.Equal(t, []string{f.employer.Email}, f.mailer.sent)
	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, realtime.EventNewApplicant, f.notifier.events[0].Type)
}

func TestApplyIsIdempotent(t *testing.T) {
	f := newAppFixture(t)

	first, err := f.service.Apply(f.job.ID, f.worker.ID, "første")
	require.NoError(t, err)

	second, err := f.service.Apply(f.job.ID, f.worker.ID, "andre")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "første", second.Message)

	var count int64
	f.db.Model(&models.Application{}).Where("job_id = ?", f.job.ID).Count(&count)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, 1, f.metrics.applications)
}

func TestApplyGuards(t *testing.T) {
	f := newAppFixture(t)

	_, err := f.service.Apply(uuid.New(), f.worker.ID, "")
	assert.ErrorIs(t, err, ErrJobNotFound)

	_, err = f.service.Apply(f.job.ID, f.employer.ID, "")
	assert.ErrorIs(t, err, ErrOwnJob)

	require.NoError(t, f.db.Model(&models.Job{}).Where("id = ?", f.job.ID).
		Update("status", models.JobStatusAssigned).Error)
	_, err = f.service.Apply(f.job.ID, f.worker.ID, "")
	assert.ErrorIs(t, err, ErrJobNotOpen)
}

func TestApplyAutoApprove(t *testing.T) {
	f := newAppFixture(t)
	require.NoError(t, f.db.Model(&models.User{}).Where("id = ?", f.employer.ID).
		Update("auto_approve_applicants", true).Error)

	app, err := f.service.Apply(f.job.ID, f.worker.ID, "")
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusAccepted, app.Status)
}

func TestListForJobDenormalizesApplicants(t *testing.T) {
	f := newAppFixture(t)

	require.NoError(t, f.db.Create(&models.Skill{ID: uuid.New(), UserID: f.worker.ID, Name: "hagearbeid"}).Error)
	require.NoError(t, f.db.Create(&models.Review{
		ID: uuid.New(), ReviewerID: f.employer.ID, RevieweeID: f.worker.ID, Rating: 4,
	}).Error)

	_, err := f.service.Apply(f.job.ID, f.worker.ID, "hei")
	require.NoError(t, err)

	// Only the owner may list
	_, err = f.service.ListForJob(f.job.ID, f.worker.ID)
	assert.ErrorIs(t, err, ErrNotJobOwner)

	cards, err := f.service.ListForJob(f.job.ID, f.employer.ID)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, f.worker.Name, cards[0].Name)
	assert.Equal(t, []string{"hagearbeid"}, cards[0].Skills)
	assert.InDelta(t, 4.0, cards[0].Rating, 0.001)
	assert.Equal(t, 1, cards[0].ReviewCount)
}

func TestListForUserIncludesJobSummary(t *testing.T) {
	f := newAppFixture(t)

	_, err := f.service.Apply(f.job.ID, f.worker.ID, "")
	require.NoError(t, err)

	list, err := f.service.ListForUser(f.worker.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, f.job.Title, list[0].JobTitle)
	assert.Equal(t, models.JobStatusOpen, list[0].JobStatus)
	assert.Equal(t, f.job.Pay, list[0].Pay)

	// Soft-deleted jobs still show up
	require.NoError(t, f.db.Delete(&models.Job{}, "id = ?", f.job.ID).Error)
	list, err = f.service.ListForUser(f.worker.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, f.job.Title, list[0].JobTitle)
}
