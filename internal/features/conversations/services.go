package conversations

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fluswork/flus-backend/internal/models"
	"github.com/fluswork/flus-backend/internal/realtime"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotParticipant       = errors.New("you are not part of this conversation")
	ErrEmptyMessage         = errors.New("message must carry text or a photo")
)

// Notifier pushes realtime events to connected users.
type Notifier interface {
	NotifyUsers(userIDs []uuid.UUID, ev realtime.Event)
}

// Recorder is the metrics slice the messaging workflow needs.
type Recorder interface {
	RecordMessageSent()
}

type ConversationService struct {
	db           *gorm.DB
	notifier     Notifier
	metrics      Recorder
	degradeReads bool
}

func NewConversationService(db *gorm.DB, notifier Notifier, metrics Recorder, degradeReads bool) *ConversationService {
	return &ConversationService{
		db:           db,
		notifier:     notifier,
		metrics:      metrics,
		degradeReads: degradeReads,
	}
}

// FindOrCreate returns the single conversation for (job, worker), creating
// it on first contact.
func (s *ConversationService) FindOrCreate(jobID, workerID, employerID uuid.UUID) (*models.Conversation, error) {
	var conv models.Conversation
	err := s.db.Where("job_id = ? AND worker_id = ?", jobID, workerID).First(&conv).Error
	if err == nil {
		return &conv, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up conversation: %w", err)
	}

	conv = models.Conversation{
		ID:            uuid.New(),
		JobID:         jobID,
		WorkerID:      workerID,
		EmployerID:    employerID,
		LastMessageAt: time.Now(),
	}
	if err := s.db.Create(&conv).Error; err != nil {
		// A concurrent first contact may have won the unique index race.
		var winner models.Conversation
		if err2 := s.db.Where("job_id = ? AND worker_id = ?", jobID, workerID).First(&winner).Error; err2 == nil {
			return &winner, nil
		}
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	return &conv, nil
}

// Get returns the conversation if the caller is one of its parties.
func (s *ConversationService) Get(conversationID, callerID uuid.UUID) (*models.Conversation, error) {
	var conv models.Conversation
	if err := s.db.First(&conv, "id = ?", conversationID).Error; err != nil {
		return nil, ErrConversationNotFound
	}
	if conv.WorkerID != callerID && conv.EmployerID != callerID {
		return nil, ErrNotParticipant
	}
	return &conv, nil
}

// SendMessage appends a text or photo message and bumps the conversation's
// last-activity timestamp. The other party gets a realtime push.
func (s *ConversationService) SendMessage(conversationID, senderID uuid.UUID, req *SendMessageRequest) (*models.Message, error) {
	conv, err := s.Get(conversationID, senderID)
	if err != nil {
		return nil, err
	}

	content := strings.TrimSpace(req.Content)
	if content == "" && req.PhotoURL == "" {
		return nil, ErrEmptyMessage
	}

	msgType := models.MessageTypeText
	if req.PhotoURL != "" {
		msgType = models.MessageTypePhoto
	}

	sender := senderID
	msg := models.Message{
		ID:             uuid.New(),
		ConversationID: conv.ID,
		SenderID:       &sender,
		Type:           msgType,
		Content:        content,
		PhotoURL:       req.PhotoURL,
	}

	if err := s.db.Create(&msg).Error; err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	if err := s.db.Model(conv).Update("last_message_at", time.Now()).Error; err != nil {
		slog.Error("failed to bump conversation activity", "error", err, "action", "send_message")
	}

	s.metrics.RecordMessageSent()

	other := conv.WorkerID
	if senderID == conv.WorkerID {
		other = conv.EmployerID
	}
	s.notifier.NotifyUsers([]uuid.UUID{other}, realtime.Event{
		Type: realtime.EventNewMessage,
		Data: map[string]interface{}{"conversation_id": conv.ID, "message_id": msg.ID},
	})

	return &msg, nil
}

// AppendSystemEvent writes a workflow event marker into the conversation of
// (job, worker). Creating the conversation first if the workflow got here
// before any chat happened.
func (s *ConversationService) AppendSystemEvent(jobID, workerID uuid.UUID, event string) error {
	var conv models.Conversation
	err := s.db.Where("job_id = ? AND worker_id = ?", jobID, workerID).First(&conv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		var job models.Job
		if err := s.db.First(&job, "id = ?", jobID).Error; err != nil {
			return fmt.Errorf("job not found for system event: %w", err)
		}
		created, err := s.FindOrCreate(jobID, workerID, job.EmployerID)
		if err != nil {
			return err
		}
		conv = *created
	} else if err != nil {
		return fmt.Errorf("failed to find conversation: %w", err)
	}

	msg := models.Message{
		ID:             uuid.New(),
		ConversationID: conv.ID,
		Type:           models.MessageTypeSystem,
		SystemEvent:    event,
	}
	if err := s.db.Create(&msg).Error; err != nil {
		return fmt.Errorf("failed to append system event: %w", err)
	}
	return s.db.Model(&conv).Update("last_message_at", time.Now()).Error
}

// ListMessages returns the conversation's messages oldest first and marks
// everything the caller hasn't sent as read (read-on-view).
func (s *ConversationService) ListMessages(conversationID, callerID uuid.UUID) ([]models.Message, error) {
	conv, err := s.Get(conversationID, callerID)
	if err != nil {
		return nil, err
	}

	var messages []models.Message
	if err := s.db.Where("conversation_id = ?", conv.ID).
		Order("created_at ASC").Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	if err := s.db.Model(&models.Message{}).
		Where("conversation_id = ? AND read = ? AND (sender_id IS NULL OR sender_id <> ?)",
			conv.ID, false, callerID).
		Update("read", true).Error; err != nil {
		slog.Error("failed to mark messages read", "error", err, "action", "list_messages")
	}

	return messages, nil
}

// ListForUser returns every conversation the user takes part in, enriched
// with the job, the counterpart and the latest message. Related rows come
// from one bulk query per table.
func (s *ConversationService) ListForUser(userID uuid.UUID) ([]ConversationSummary, error) {
	var convs []models.Conversation
	err := s.db.Where("worker_id = ? OR employer_id = ?", userID, userID).
		Order("last_message_at DESC").Find(&convs).Error
	if err != nil {
		if s.degradeReads {
			slog.Error("conversation list degraded to empty", "error", err, "user_id", userID.String())
			return []ConversationSummary{}, nil
		}
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	if len(convs) == 0 {
		return []ConversationSummary{}, nil
	}

	jobIDs := make([]uuid.UUID, 0, len(convs))
	otherIDs := make([]uuid.UUID, 0, len(convs))
	convIDs := make([]uuid.UUID, 0, len(convs))
	for _, cv := range convs {
		jobIDs = append(jobIDs, cv.JobID)
		convIDs = append(convIDs, cv.ID)
		if cv.WorkerID == userID {
			otherIDs = append(otherIDs, cv.EmployerID)
		} else {
			otherIDs = append(otherIDs, cv.WorkerID)
		}
	}

	var jobList []models.Job
	if err := s.db.Unscoped().Where("id IN ?", jobIDs).Find(&jobList).Error; err != nil {
		slog.Error("failed to fetch conversation jobs", "error", err, "action", "list_conversations")
	}
	jobByID := make(map[uuid.UUID]models.Job, len(jobList))
	for _, j := range jobList {
		jobByID[j.ID] = j
	}

	var users []models.User
	if err := s.db.Where("id IN ?", otherIDs).Find(&users).Error; err != nil {
		slog.Error("failed to fetch conversation users", "error", err, "action", "list_conversations")
	}
	userByID := make(map[uuid.UUID]models.User, len(users))
	for _, u := range users {
		userByID[u.ID] = u
	}

	var lastMessages []models.Message
	if err := s.db.Raw(`
		SELECT m.* FROM messages m
		INNER JOIN (
			SELECT conversation_id, MAX(created_at) AS max_created
			FROM messages WHERE conversation_id IN ?
			GROUP BY conversation_id
		) latest ON m.conversation_id = latest.conversation_id AND m.created_at = latest.max_created`,
		convIDs).Scan(&lastMessages).Error; err != nil {
		slog.Error("failed to fetch last messages", "error", err, "action", "list_conversations")
	}
	lastByConv := make(map[uuid.UUID]models.Message, len(lastMessages))
	for _, m := range lastMessages {
		lastByConv[m.ConversationID] = m
	}

	type unreadRow struct {
		ConversationID uuid.UUID
		Cnt            int
	}
	var unread []unreadRow
	if err := s.db.Model(&models.Message{}).
		Select("conversation_id, COUNT(*) as cnt").
		Where("conversation_id IN ? AND read = ? AND (sender_id IS NULL OR sender_id <> ?)",
			convIDs, false, userID).
		Group("conversation_id").
		Scan(&unread).Error; err != nil {
		slog.Error("failed to count unread messages", "error", err, "action", "list_conversations")
	}
	unreadByConv := make(map[uuid.UUID]int, len(unread))
	for _, u := range unread {
		unreadByConv[u.ConversationID] = u.Cnt
	}

	summaries := make([]ConversationSummary, 0, len(convs))
	for _, cv := range convs {
		otherID := cv.EmployerID
		if cv.EmployerID == userID {
			otherID = cv.WorkerID
		}
		summary := ConversationSummary{
			Conversation: cv,
			OtherUserID:  otherID,
			UnreadCount:  unreadByConv[cv.ID],
		}
		if j, ok := jobByID[cv.JobID]; ok {
			summary.JobTitle = j.Title
			summary.JobStatus = j.Status
		}
		if u, ok := userByID[otherID]; ok {
			summary.OtherName = u.Name
			summary.OtherAvatar = u.AvatarURL
		}
		if m, ok := lastByConv[cv.ID]; ok {
			last := m
			summary.LastMessage = &last
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
