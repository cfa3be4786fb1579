package supplier

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingSupplier(t *testing.T) *Supplier {
	s, err := NewSupplier(uuid.New(), "Brightblocks Ltd", "Sam Okafor", "Sam@Brightblocks.io")
	require.NoError(t, err)
	return s
}

func TestNewSupplier(t *testing.T) {
	t.Run("registers pending supplier", func(t *testing.T) {
		s := pendingSupplier(t)

		assert.Equal(t, SupplierStatusPending, s.Status)
		assert.Equal(t, "sam@brightblocks.io", s.ContactEmail)
		assert.False(t, s.IsApproved())

		events := s.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeSupplierRegistered, events[0].EventType())
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		_, err := NewSupplier(uuid.Nil, "Co", "Sam", "s@c.io")
		require.Error(t, err)
		_, err = NewSupplier(uuid.New(), "", "Sam", "s@c.io")
		require.Error(t, err)
		_, err = NewSupplier(uuid.New(), "Co", "", "s@c.io")
		require.Error(t, err)
		_, err = NewSupplier(uuid.New(), "Co", "Sam", "not-an-email")
		require.Error(t, err)
	})
}

func TestSupplier_Review(t *testing.T) {
	reviewer := uuid.New()

	t.Run("approve pending supplier", func(t *testing.T) {
		s := pendingSupplier(t)
		s.ClearDomainEvents()

		require.NoError(t, s.Approve(reviewer, "checks out"))
		assert.True(t, s.IsApproved())
		assert.Equal(t, "checks out", s.ReviewNote)
		require.NotNil(t, s.ReviewedBy)
		assert.Equal(t, reviewer, *s.ReviewedBy)
		assert.NotNil(t, s.ReviewedAt)

		events := s.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeSupplierReviewed, events[0].EventType())
	})

	t.Run("reject pending supplier", func(t *testing.T) {
		s := pendingSupplier(t)
		require.NoError(t, s.Reject(reviewer, "incomplete application"))
		assert.Equal(t, SupplierStatusRejected, s.Status)
	})

	t.Run("approve fails when not pending", func(t *testing.T) {
		s := pendingSupplier(t)
		require.NoError(t, s.Approve(reviewer, ""))
		require.Error(t, s.Approve(reviewer, ""))
		require.Error(t, s.Reject(reviewer, ""))
	})

	t.Run("suspend and reinstate", func(t *testing.T) {
		s := pendingSupplier(t)
		require.Error(t, s.Suspend(reviewer, ""), "cannot suspend pending supplier")

		require.NoError(t, s.Approve(reviewer, ""))
		require.NoError(t, s.Suspend(reviewer, "policy violation"))
		assert.Equal(t, SupplierStatusSuspended, s.Status)
	})

	t.Run("reinstate restores approved", func(t *testing.T) {
		s := pendingSupplier(t)
		require.NoError(t, s.Approve(reviewer, ""))
		require.NoError(t, s.Suspend(reviewer, ""))
		require.NoError(t, s.Reinstate(reviewer, "resolved"))
		assert.True(t, s.IsApproved())
	})
}

func TestNewTicket(t *testing.T) {
	supplierID := uuid.New()

	t.Run("opens with defaults", func(t *testing.T) {
		ticket, err := NewTicket(supplierID, "Late shipment", "PO-441 has not arrived", "")
		require.NoError(t, err)
		assert.Equal(t, TicketStatusOpen, ticket.Status)
		assert.Equal(t, TicketPriorityNormal, ticket.Priority)
	})

	t.Run("rejects invalid inputs", func(t *testing.T) {
		_, err := NewTicket(uuid.Nil, "Subject", "Body", TicketPriorityLow)
		require.Error(t, err)
		_, err = NewTicket(supplierID, "", "Body", TicketPriorityLow)
		require.Error(t, err)
		_, err = NewTicket(supplierID, "Subject", "", TicketPriorityLow)
		require.Error(t, err)
		_, err = NewTicket(supplierID, "Subject", "Body", "urgent")
		require.Error(t, err)
	})
}

func TestTicket_Responses(t *testing.T) {
	newTicket := func(t *testing.T) *Ticket {
		ticket, err := NewTicket(uuid.New(), "Question", "How do I update my catalog?", TicketPriorityLow)
		require.NoError(t, err)
		return ticket
	}

	t.Run("admin response moves open ticket to in_progress", func(t *testing.T) {
		ticket := newTicket(t)
		require.NoError(t, ticket.AddResponse(uuid.New(), ResponseAuthorAdmin, "You can use the portal catalog tab."))
		assert.Equal(t, TicketStatusInProgress, ticket.Status)
		require.Len(t, ticket.Responses, 1)
	})

	t.Run("supplier response keeps ticket open", func(t *testing.T) {
		ticket := newTicket(t)
		require.NoError(t, ticket.AddResponse(uuid.New(), ResponseAuthorSupplier, "Adding more detail."))
		assert.Equal(t, TicketStatusOpen, ticket.Status)
	})

	t.Run("closed ticket accepts no responses or attachments", func(t *testing.T) {
		ticket := newTicket(t)
		require.NoError(t, ticket.Close())
		assert.True(t, ticket.IsClosed())
		assert.NotNil(t, ticket.ClosedAt)

		err := ticket.AddResponse(uuid.New(), ResponseAuthorAdmin, "too late")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Closed tickets")

		require.Error(t, ticket.AddAttachment("key", "file.pdf", "application/pdf", 100))
	})

	t.Run("reopen returns ticket to in_progress", func(t *testing.T) {
		ticket := newTicket(t)
		require.Error(t, ticket.Reopen(), "not closed yet")

		require.NoError(t, ticket.Close())
		require.NoError(t, ticket.Reopen())
		assert.Equal(t, TicketStatusInProgress, ticket.Status)
		assert.Nil(t, ticket.ClosedAt)
		require.NoError(t, ticket.AddResponse(uuid.New(), ResponseAuthorSupplier, "following up"))
	})

	t.Run("close fails when already closed", func(t *testing.T) {
		ticket := newTicket(t)
		require.NoError(t, ticket.Close())
		require.Error(t, ticket.Close())
	})

	t.Run("attachment validation", func(t *testing.T) {
		ticket := newTicket(t)
		require.NoError(t, ticket.AddAttachment("tickets/abc/file.pdf", "file.pdf", "application/pdf", 2048))
		require.Len(t, ticket.Attachments, 1)

		require.Error(t, ticket.AddAttachment("", "file.pdf", "", 0))
		require.Error(t, ticket.AddAttachment("key", "", "", 0))
		require.Error(t, ticket.AddAttachment("key", "file.pdf", "", -1))
	})
}
