package support

import (
	"testing"

	"github.com/fluswork/flus-backend/internal/models"
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
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.SupportTicket{}))
	return db
}

type stubGate struct {
	unlocked bool
}

func (s *stubGate) CuratorUnlocked(uuid.UUID) bool { return s.unlocked }

func TestCreateTicketValidation(t *testing.T) {
	db := openTestDB(t)
	service := NewSupportService(db, &stubGate{})
	userID := uuid.New()

	_, err := service.Create(userID, &CreateTicketRequest{Category: "ukjent", Subject: "s", Body: "b"})
	assert.ErrorIs(t, err, ErrInvalidCategory)

	_, err = service.Create(userID, &CreateTicketRequest{Subject: "  ", Body: "b"})
	assert.ErrorIs(t, err, ErrMissingSubject)

	_, err = service.Create(userID, &CreateTicketRequest{Subject: "s", Body: ""})
	assert.ErrorIs(t, err, ErrMissingBody)

	ticket, err := service.Create(userID, &CreateTicketRequest{Subject: "Feil i appen", Body: "Kartet laster ikke"})
	require.NoError(t, err)
	assert.Equal(t, models.TicketCategoryGeneral, ticket.Category)
	assert.Equal(t, models.TicketStatusOpen, ticket.Status)
}

func TestCuratorTicketsAreGated(t *testing.T) {
	db := openTestDB(t)
	gate := &stubGate{}
	service := NewSupportService(db, gate)
	userID := uuid.New()

	req := &CreateTicketRequest{Category: models.TicketCategoryCurator, Subject: "Kuratorkontakt", Body: "Hei"}

	_, err := service.Create(userID, req)
	assert.ErrorIs(t, err, ErrCuratorLocked)

	gate.unlocked = true
	ticket, err := service.Create(userID, req)
	require.NoError(t, err)
	assert.Equal(t, models.TicketCategoryCurator, ticket.Category)
}

func TestRespondAndClose(t *testing.T) {
	db := openTestDB(t)
	service := NewSupportService(db, &stubGate{})
	userID := uuid.New()

	ticket, err := service.Create(userID, &CreateTicketRequest{Subject: "s", Body: "b"})
	require.NoError(t, err)

	_, err = service.Respond(uuid.New(), &RespondRequest{AdminNote: "hei"})
	assert.ErrorIs(t, err, ErrTicketNotFound)

	updated, err := service.Respond(ticket.ID, &RespondRequest{AdminNote: "Vi ser på saken", Close: true})
	require.NoError(t, err)
	assert.Equal(t, "Vi ser på saken", updated.AdminNote)
	assert.Equal(t, models.TicketStatusClosed, updated.Status)

	_, err = service.Respond(ticket.ID, &RespondRequest{AdminNote: "mer"})
	assert.ErrorIs(t, err, ErrTicketClosed)
}

func TestListSeparatesUserAndAdminViews(t *testing.T) {
	db := openTestDB(t)
	service := NewSupportService(db, &stubGate{})
	alice := uuid.New()
	bob := uuid.New()

	_, err := service.Create(alice, &CreateTicketRequest{Subject: "a", Body: "b"})
	require.NoError(t, err)
	ticket, err := service.Create(bob, &CreateTicketRequest{Subject: "c", Body: "d"})
	require.NoError(t, err)

	mine, err := service.ListForUser(alice)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	all, err := service.ListAll("")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = service.Respond(ticket.ID, &RespondRequest{Close: true})
	require.NoError(t, err)

	open, err := service.ListAll(models.TicketStatusOpen)
	require.NoError(t, err)
	assert.Len(t, open, 1)
}
