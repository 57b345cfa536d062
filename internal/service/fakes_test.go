package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/helpdesk-io/helpdesk-api/internal/domain"
	"github.com/helpdesk-io/helpdesk-api/internal/repository"
)

// fakeAccountRepo is an in-memory AccountRepository honoring the password
// projection rules of the real one.
type fakeAccountRepo struct {
	seq      int
	accounts map[string]*domain.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]*domain.Account)}
}

func (f *fakeAccountRepo) Create(_ context.Context, account *domain.Account) error {
	f.seq++
	account.ID = fmt.Sprintf("acc-%d", f.seq)
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	stored := *account
	f.accounts[account.ID] = &stored
	return nil
}

func (f *fakeAccountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	stored, ok := f.accounts[id]
	if !ok {
		return nil, repository.ErrNoRows
	}
	out := *stored
	out.PasswordHash = ""
	return &out, nil
}

func (f *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	account, err := f.GetByEmailWithPassword(context.Background(), email)
	if err != nil {
		return nil, err
	}
	account.PasswordHash = ""
	return account, nil
}

func (f *fakeAccountRepo) GetByEmailWithPassword(_ context.Context, email string) (*domain.Account, error) {
	for _, stored := range f.accounts {
		if stored.Email == email {
			out := *stored
			return &out, nil
		}
	}
	return nil, repository.ErrNoRows
}

// fakeTicketRepo is an in-memory TicketRepository with the same filter and
// ordering semantics as the SQL implementation.
type fakeTicketRepo struct {
	seq     int
	tickets map[string]*domain.Ticket
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: make(map[string]*domain.Ticket)}
}

func (f *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	f.seq++
	ticket.ID = fmt.Sprintf("tic-%d", f.seq)
	ticket.CreatedAt = time.Unix(int64(f.seq), 0)
	ticket.UpdatedAt = ticket.CreatedAt
	stored := *ticket
	f.tickets[ticket.ID] = &stored
	return nil
}

func (f *fakeTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	if _, ok := f.tickets[ticket.ID]; !ok {
		return repository.ErrNoRows
	}
	ticket.UpdatedAt = time.Now()
	stored := *ticket
	f.tickets[ticket.ID] = &stored
	return nil
}

func (f *fakeTicketRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.tickets[id]; !ok {
		return repository.ErrNoRows
	}
	delete(f.tickets, id)
	return nil
}

func (f *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	stored, ok := f.tickets[id]
	if !ok {
		return nil, repository.ErrNoRows
	}
	out := *stored
	return &out, nil
}

func (f *fakeTicketRepo) List(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, int64, error) {
	var matched []domain.Ticket
	for _, stored := range f.tickets {
		if filter.OwnerID != nil && stored.CreatedBy != *filter.OwnerID {
			continue
		}
		if filter.Status != nil && stored.Status != *filter.Status {
			continue
		}
		if filter.Priority != nil && stored.Priority != *filter.Priority {
			continue
		}
		if filter.Category != nil && stored.Category != *filter.Category {
			continue
		}
		if filter.TitleQuery != nil {
			q := strings.ToLower(strings.TrimSpace(*filter.TitleQuery))
			if q != "" && !strings.Contains(strings.ToLower(stored.Title), q) {
				continue
			}
		}
		matched = append(matched, *stored)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := filter.Offset
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if filter.Limit <= 0 || end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// fakeCommentRepo is an in-memory CommentRepository preserving insertion
// order, which matches created_at ascending.
type fakeCommentRepo struct {
	seq      int
	comments []domain.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{}
}

func (f *fakeCommentRepo) Create(_ context.Context, comment *domain.Comment) error {
	f.seq++
	comment.ID = fmt.Sprintf("com-%d", f.seq)
	comment.CreatedAt = time.Unix(int64(f.seq), 0)
	f.comments = append(f.comments, *comment)
	return nil
}

func (f *fakeCommentRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.Comment, error) {
	var result []domain.Comment
	for _, comment := range f.comments {
		if comment.TicketID == ticketID {
			result = append(result, comment)
		}
	}
	return result, nil
}
