package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/empresta/ledger-engine/internal/config"
	"github.com/empresta/ledger-engine/internal/ledger"
	"github.com/empresta/ledger-engine/internal/repository"
)

// LedgerService orchestrates the ledger engine over the repositories:
// validation, persistence, lazy installment materialization, reminder
// sweeps and dashboard aggregation.
type LedgerService struct {
	clients       repository.ClientRepository
	loans         repository.LoanRepository
	installments  repository.InstallmentRepository
	notifications repository.NotificationRepository
	collections   repository.CollectionRepository
	signatures    repository.SignatureRepository
	redis         *redis.Client
	config        *config.Config

	// now is swappable so business-date logic is testable.
	now func() time.Time
}

func NewLedgerService(
	clients repository.ClientRepository,
	loans repository.LoanRepository,
	installments repository.InstallmentRepository,
	notifications repository.NotificationRepository,
	collections repository.CollectionRepository,
	signatures repository.SignatureRepository,
	redisClient *redis.Client,
	cfg *config.Config,
) *LedgerService {
	return &LedgerService{
		clients:       clients,
		loans:         loans,
		installments:  installments,
		notifications: notifications,
		collections:   collections,
		signatures:    signatures,
		redis:         redisClient,
		config:        cfg,
		now:           time.Now,
	}
}

func (s *LedgerService) dueSoonDays() int {
	if s.config == nil {
		return 3
	}
	return s.config.Business.DueSoonThresholdDays
}

func summaryCacheKey(ownerID uuid.UUID) string {
	return fmt.Sprintf("summary:%s", ownerID)
}

// cachedSummary returns the owner's cached portfolio summary, if any.
// Cache failures are logged and treated as misses.
func (s *LedgerService) cachedSummary(ctx context.Context, ownerID uuid.UUID) *ledger.Summary {
	if s.redis == nil {
		return nil
	}

	payload, err := s.redis.Get(ctx, summaryCacheKey(ownerID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("summary cache read failed: %v", err)
		}
		return nil
	}

	var summary ledger.Summary
	if err := json.Unmarshal(payload, &summary); err != nil {
		log.Printf("summary cache decode failed: %v", err)
		return nil
	}

	return &summary
}

func (s *LedgerService) storeSummary(ctx context.Context, ownerID uuid.UUID, summary ledger.Summary) {
	if s.redis == nil {
		return
	}

	payload, err := json.Marshal(summary)
	if err != nil {
		return
	}

	if err := s.redis.Set(ctx, summaryCacheKey(ownerID), payload, s.config.GetSummaryCacheTTL()).Err(); err != nil {
		log.Printf("summary cache write failed: %v", err)
	}
}

// invalidateSummary drops the cached summary after any loan mutation.
func (s *LedgerService) invalidateSummary(ctx context.Context, ownerID uuid.UUID) {
	if s.redis == nil {
		return
	}

	if err := s.redis.Del(ctx, summaryCacheKey(ownerID)).Err(); err != nil {
		log.Printf("summary cache invalidation failed: %v", err)
	}
}
