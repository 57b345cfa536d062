package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "Open"
	TicketStatusInProgress TicketStatus = "In Progress"
	TicketStatusResolved   TicketStatus = "Resolved"
)

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "Low"
	TicketPriorityMedium TicketPriority = "Medium"
	TicketPriorityHigh   TicketPriority = "High"
)

// TicketCategory enumerates the fixed request categories.
type TicketCategory string

const (
	TicketCategoryBilling   TicketCategory = "Billing"
	TicketCategoryTechnical TicketCategory = "Technical"
	TicketCategoryGeneral   TicketCategory = "General"
)

// Ticket is the aggregate for support requests. CreatedBy is immutable after
// creation; Owner is populated by reads that join the accounts table.
type Ticket struct {
	ID          string
	Title       string
	Description string
	Category    TicketCategory
	Priority    TicketPriority
	Status      TicketStatus
	CreatedBy   string
	Owner       *AccountRef
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
