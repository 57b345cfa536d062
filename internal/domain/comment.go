package domain

import "time"

// Comment is an immutable message on a ticket. Visibility follows the parent
// ticket's access scope, never the comment author.
type Comment struct {
	ID        string
	TicketID  string
	Message   string
	CreatedBy string
	Author    *AccountRef
	CreatedAt time.Time
}
