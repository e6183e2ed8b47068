package conversations

import (
	"testing"
	"time"

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
		&models.User{}, &models.Job{}, &models.Conversation{}, &models.Message{},
	))
	return db
}

type stubNotifier struct {
	targets []uuid.UUID
	events  []realtime.Event
}

func (s *stubNotifier) NotifyUsers(userIDs []uuid.UUID, ev realtime.Event) {
	s.targets = append(s.targets, userIDs...)
	s.events = append(s.events, ev)
}

type stubRecorder struct {
	messages int
}

func (s *stubRecorder) RecordMessageSent() { s.messages++ }

type convFixture struct {
	db       *gorm.DB
	service  *ConversationService
	notifier *stubNotifier
	metrics  *stubRecorder
	employer models.User
	worker   models.User
	job      models.Job
}

func newConvFixture(t *testing.T) *convFixture {
	t.Helper()
	db := openTestDB(t)
	f := &convFixture{
		db:       db,
		notifier: &stubNotifier{},
		metrics:  &stubRecorder{},
	}
	f.service = NewConversationService(db, f.notifier, f.metrics, false)

	f.employer = models.User{ID: uuid.New(), Email: "arbeidsgiver@example.no", Name: "Kari", Role: "employer"}
	f.worker = models.User{ID: uuid.New(), Email: "arbeider@example.no", Name: "Ola", Role: "worker"}
	require.NoError(t, db.Create(&f.employer).Error)
	require.NoError(t, db.Create(&f.worker).Error)

	f.job = models.Job{
		ID: uuid.New(), EmployerID: f.employer.ID, Title: "Male gjerdet",
		Description: "d", Category: "maling", Pay: 500, DurationMinutes: 120,
		Status: models.JobStatusOpen,
	}
	require.NoError(t, db.Create(&f.job).Error)
	return f
}

func TestFindOrCreateIsUniquePerJobAndWorker(t *testing.T) {
	f := newConvFixture(t)

	first, err := f.service.FindOrCreate(f.job.ID, f.worker.ID, f.employer.ID)
	require.NoError(t, err)

	second, err := f.service.FindOrCreate(f.job.ID, f.worker.ID, f.employer.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	f.db.Model(&models.Conversation{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSendMessageRules(t *testing.T) {
	f := newConvFixture(t)
	conv, err := f.service.FindOrCreate(f.job.ID, f.worker.ID, f.employer.ID)
	require.NoError(t, err)

	_, err = f.service.SendMessage(conv.ID, f.worker.ID, &SendMessageRequest{Content: "   "})
	assert.ErrorIs(t, err, ErrEmptyMessage)

	outsider := uuid.New()
	_, err = f.service.SendMessage(conv.ID, outsider, &SendMessageRequest{Content: "hei"})
	assert.ErrorIs(t, err, ErrNotParticipant)

	msg, err := f.service.SendMessage(conv.ID, f.worker.ID, &SendMessageRequest{Content: "Hei, når passer det?"})
	require.NoError(t, err)
	assert.Equal(t, models.MessageTypeText, msg.Type)
	require.NotNil(t, msg.SenderID)
	assert.Equal(t, f.worker.ID, *msg.SenderID)

	photo, err := f.service.SendMessage(conv.ID, f.employer.ID, &SendMessageRequest{PhotoURL: "/uploads/photos/x.jpg"})
	require.NoError(t, err)
	assert.Equal(t, models.MessageTypePhoto, photo.Type)

	// Each push goes to the other party
	assert.Equal(t, []uuid.UUID{f.employer.ID, f.worker.ID}, f.notifier.targets)
	assert.Equal(t, 2, f.metrics.messages)
}

func TestListMessagesOrderAndReadOnView(t *testing.T) {
	f := newConvFixture(t)
	conv, err := f.service.FindOrCreate(f.job.ID, f.worker.ID, f.employer.ID)
	require.NoError(t, err)

	_, err = f.service.SendMessage(conv.ID, f.worker.ID, &SendMessageRequest{Content: "første"})
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = f.service.SendMessage(conv.ID, f.employer.ID, &SendMessageRequest{Content: "andre"})
	require.NoError(t, err)

	messages, err := f.service.ListMessages(conv.ID, f.worker.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "første", messages[0].Content)
	assert.Equal(t, "andre", messages[1].Content)

	// The employer's message is now read, the worker's own stays untouched
	var read models.Message
	require.NoError(t, f.db.First(&read, "content = ?", "andre").Error)
	assert.True(t, read.Read)

	var own models.Message
	require.NoError(t, f.db.First(&own, "content = ?", "første").Error)
	assert.False(t, own.Read)
}

func TestAppendSystemEventCreatesConversation(t *testing.T) {
	f := newConvFixture(t)

	// No conversation exists yet; the workflow event bootstraps it
	require.NoError(t, f.service.AppendSystemEvent(f.job.ID, f.worker.ID, models.EventWorkStarted))

	var conv models.Conversation
	require.NoError(t, f.db.First(&conv, "job_id = ? AND worker_id = ?", f.job.ID, f.worker.ID).Error)
	assert.Equal(t, f.employer.ID, conv.EmployerID)

	var msg models.Message
	require.NoError(t, f.db.First(&msg, "conversation_id = ?", conv.ID).Error)
	assert.Equal(t, models.MessageTypeSystem, msg.Type)
	assert.Equal(t, models.EventWorkStarted, msg.SystemEvent)
	assert.Nil(t, msg.SenderID)
}

func TestListForUserSummaries(t *testing.T) {
	f := newConvFixture(t)
	conv, err := f.service.FindOrCreate(f.job.ID, f.worker.ID, f.employer.ID)
	require.NoError(t, err)

	_, err = f.service.SendMessage(conv.ID, f.worker.ID, &SendMessageRequest{Content: "hei"})
	require.NoError(t, err)

	summaries, err := f.service.ListForUser(f.employer.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	s := summaries[0]
	assert.Equal(t, f.job.Title, s.JobTitle)
	assert.Equal(t, f.worker.ID, s.OtherUserID)
	assert.Equal(t, f.worker.Name, s.OtherName)
	assert.Equal(t, 1, s.UnreadCount)
	require.NotNil(t, s.LastMessage)
	assert.Equal(t, "hei", s.LastMessage.Content)

	// Viewing clears the unread counter
	_, err = f.service.ListMessages(conv.ID, f.employer.ID)
	require.NoError(t, err)
	summaries, err = f.service.ListForUser(f.employer.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 0, summaries[0].UnreadCount)
}
