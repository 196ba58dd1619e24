package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/empresta/ledger-engine/internal/domain"
	"github.com/empresta/ledger-engine/internal/ledger"
	customError "github.com/empresta/ledger-engine/pkg/errors"
)

// Dashboard carries the portfolio summary plus the lists shown on the
// landing screen: the next dues and the most recent settlements.
type Dashboard struct {
	Summary       ledger.Summary         `json:"summary"`
	UpcomingDue   []*domain.LoanResponse `json:"upcoming_due"`
	RecentSettled []*domain.LoanResponse `json:"recent_settled"`
}

// ClientReport is the per-client cut of the portfolio figures.
type ClientReport struct {
	Client  *domain.Client         `json:"client"`
	Summary ledger.Summary         `json:"summary"`
	Loans   []*domain.LoanResponse `json:"loans"`
}

const (
	upcomingDueLimit   = 3
	recentSettledLimit = 5
)

// GetDashboard assembles the owner's dashboard. The summary block is served
// from Redis when fresh; loan lists are always read live.
func (s *LedgerService) GetDashboard(ctx context.Context, ownerID uuid.UUID) (*Dashboard, error) {
	loans, err := s.loans.List(ctx, ownerID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	clients, err := s.clients.List(ctx, ownerID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	names := make(map[uuid.UUID]string, len(clients))
	for _, client := range clients {
		names[client.ID] = client.Name
	}

	now := s.now()

	summary := s.cachedSummary(ctx, ownerID)
	if summary == nil {
		computed := ledger.Summarize(loans, now, s.dueSoonDays())
		s.storeSummary(ctx, ownerID, computed)
		summary = &computed
	}

	var open, settled []*domain.Loan
	for _, loan := range loans {
		if loan.Status == domain.LoanStatusPaid {
			settled = append(settled, loan)
		} else {
			open = append(open, loan)
		}
	}

	sort.Slice(open, func(i, j int) bool {
		return open[i].DueDate.Before(open[j].DueDate)
	})
	sort.Slice(settled, func(i, j int) bool {
		return settled[i].CreatedAt.After(settled[j].CreatedAt)
	})

	if len(open) > upcomingDueLimit {
		open = open[:upcomingDueLimit]
	}
	if len(settled) > recentSettledLimit {
		settled = settled[:recentSettledLimit]
	}

	return &Dashboard{
		Summary:       *summary,
		UpcomingDue:   decorate(open, names, now),
		RecentSettled: decorate(settled, names, now),
	}, nil
}

// GetClientReport computes the portfolio figures restricted to one client.
func (s *LedgerService) GetClientReport(ctx context.Context, ownerID, clientID uuid.UUID) (*ClientReport, error) {
	client, err := s.GetClient(ctx, ownerID, clientID)
	if err != nil {
		return nil, err
	}

	loans, err := s.loans.ListByClient(ctx, ownerID, clientID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	now := s.now()
	names := map[uuid.UUID]string{client.ID: client.Name}

	return &ClientReport{
		Client:  client,
		Summary: ledger.Summarize(loans, now, s.dueSoonDays()),
		Loans:   decorate(loans, names, now),
	}, nil
}

func decorate(loans []*domain.Loan, names map[uuid.UUID]string, now time.Time) []*domain.LoanResponse {
	responses := make([]*domain.LoanResponse, 0, len(loans))
	for _, loan := range loans {
		responses = append(responses, &domain.LoanResponse{
			Loan:          loan,
			DisplayStatus: ledger.Classify(loan, now),
			ClientName:    names[loan.ClientID],
		})
	}
	return responses
}
