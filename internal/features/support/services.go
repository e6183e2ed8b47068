package support

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fluswork/flus-backend/internal/authctx"
	"github.com/fluswork/flus-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTicketNotFound  = errors.New("support ticket not found")
	ErrCuratorLocked   = errors.New("curator contact requires the category badge")
	ErrTicketClosed    = errors.New("support ticket is already closed")
	ErrInvalidCategory = errors.New("invalid ticket category")
	ErrMissingSubject  = errors.New("subject is required")
	ErrMissingBody     = errors.New("message body is required")
)

// CuratorGate answers whether a user has unlocked curator contact.
type CuratorGate interface {
	CuratorUnlocked(userID uuid.UUID) bool
}

type CreateTicketRequest struct {
	Category string `json:"category"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
}

type RespondRequest struct {
	AdminNote string `json:"admin_note"`
	Close     bool   `json:"close"`
}

type SupportService struct {
	db   *gorm.DB
	gate CuratorGate
}

func NewSupportService(db *gorm.DB, gate CuratorGate) *SupportService {
	return &SupportService{db: db, gate: gate}
}

func (s *SupportService) Create(userID uuid.UUID, req *CreateTicketRequest) (*models.SupportTicket, error) {
	category := req.Category
	if category == "" {
		category = models.TicketCategoryGeneral
	}
	if category != models.TicketCategoryGeneral && category != models.TicketCategoryCurator {
		return nil, ErrInvalidCategory
	}
	if strings.TrimSpace(req.Subject) == "" {
		return nil, ErrMissingSubject
	}
	if strings.TrimSpace(req.Body) == "" {
		return nil, ErrMissingBody
	}

	if category == models.TicketCategoryCurator {
		if s.gate == nil || !s.gate.CuratorUnlocked(userID) {
			return nil, ErrCuratorLocked
		}
	}

	ticket := models.SupportTicket{
		ID:       uuid.New(),
		UserID:   userID,
		Category: category,
		Subject:  strings.TrimSpace(req.Subject),
		Body:     strings.TrimSpace(req.Body),
		Status:   models.TicketStatusOpen,
	}
	if err := s.db.Create(&ticket).Error; err != nil {
		return nil, fmt.Errorf("failed to create support ticket: %w", err)
	}

	slog.Info("support ticket created",
		"ticket_id", ticket.ID,
		"user_id", userID,
		"category", category)
	return &ticket, nil
}

func (s *SupportService) ListForUser(userID uuid.UUID) ([]models.SupportTicket, error) {
	tickets := []models.SupportTicket{}
	if err := s.db.Scopes(authctx.OwnedBy(userID)).
		Order("created_at DESC").Find(&tickets).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch tickets: %w", err)
	}
	return tickets, nil
}

// ListAll returns tickets for the admin queue, optionally filtered by status.
func (s *SupportService) ListAll(status string) ([]models.SupportTicket, error) {
	tickets := []models.SupportTicket{}
	query := s.db.Order("created_at ASC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&tickets).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch tickets: %w", err)
	}
	return tickets, nil
}

// Respond attaches an admin note and optionally closes the ticket.
func (s *SupportService) Respond(ticketID uuid.UUID, req *RespondRequest) (*models.SupportTicket, error) {
	var ticket models.SupportTicket
	if err := s.db.First(&ticket, "id = ?", ticketID).Error; err != nil {
		return nil, ErrTicketNotFound
	}
	if ticket.Status == models.TicketStatusClosed {
		return nil, ErrTicketClosed
	}

	updates := map[string]interface{}{}
	if strings.TrimSpace(req.AdminNote) != "" {
		updates["admin_note"] = strings.TrimSpace(req.AdminNote)
	}
	if req.Close {
		updates["status"] = models.TicketStatusClosed
	}
	if len(updates) == 0 {
		return &ticket, nil
	}

	if err := s.db.Model(&ticket).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update ticket: %w", err)
	}
	return &ticket, nil
}
