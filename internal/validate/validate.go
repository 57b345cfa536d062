// Package validate holds the pure field predicates shared by the account,
// ticket and comment flows. Each function takes a raw input value and reports
// whether it is acceptable; callers decide the error message and status.
package validate

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/helpdesk-io/helpdesk-api/internal/domain"
)

var (
	nameRe  = regexp.MustCompile(`^[A-Za-z\s'-]+$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Name requires 2-50 characters after trimming, limited to letters, spaces,
// hyphens and apostrophes.
func Name(name string) bool {
	trimmed := strings.TrimSpace(name)
	n := utf8.RuneCountInString(trimmed)
	if n < 2 || n > 50 {
		return false
	}
	return nameRe.MatchString(trimmed)
}

// Email checks basic syntactic shape: one @ separating non-blank local and
// domain parts, with a dot in the domain.
func Email(email string) bool {
	return emailRe.MatchString(email)
}

// Password enforces registration strength: at least 8 characters with one
// lowercase letter, one uppercase letter and one digit.
func Password(password string) bool {
	if len(password) < 8 {
		return false
	}
	var lower, upper, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return lower && upper && digit
}

// Role resolves a requested role case-insensitively. The empty string maps to
// the default user role.
func Role(role string) (domain.Role, bool) {
	if role == "" {
		return domain.RoleUser, true
	}
	switch strings.ToLower(role) {
	case string(domain.RoleUser):
		return domain.RoleUser, true
	case string(domain.RoleAdmin):
		return domain.RoleAdmin, true
	}
	return "", false
}

// TicketTitle requires 3-100 characters after trimming. Lengths count runes
// so multibyte text is not penalized.
func TicketTitle(title string) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(title))
	return n >= 3 && n <= 100
}

// TicketDescription requires 5-5000 characters after trimming.
func TicketDescription(description string) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(description))
	return n >= 5 && n <= 5000
}

// TicketCategory accepts only the fixed category enum.
func TicketCategory(category string) bool {
	switch domain.TicketCategory(category) {
	case domain.TicketCategoryBilling, domain.TicketCategoryTechnical, domain.TicketCategoryGeneral:
		return true
	}
	return false
}

// TicketPriority accepts only the fixed priority enum.
func TicketPriority(priority string) bool {
	switch domain.TicketPriority(priority) {
	case domain.TicketPriorityLow, domain.TicketPriorityMedium, domain.TicketPriorityHigh:
		return true
	}
	return false
}

// TicketStatus accepts only the fixed status enum.
func TicketStatus(status string) bool {
	switch domain.TicketStatus(status) {
	case domain.TicketStatusOpen, domain.TicketStatusInProgress, domain.TicketStatusResolved:
		return true
	}
	return false
}

// CommentMessage requires 1-5000 characters after trimming.
func CommentMessage(message string) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(message))
	return n >= 1 && n <= 5000
}

// NormalizeEmail lowercases and trims an email for storage and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
