package service

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/empresta/ledger-engine/internal/domain"
	"github.com/empresta/ledger-engine/internal/ledger"
	customError "github.com/empresta/ledger-engine/pkg/errors"
)

const sweepLockKey = "reminder_sweep_lock"

func (s *LedgerService) ListNotifications(ctx context.Context, ownerID uuid.UUID) ([]*domain.Notification, error) {
	notifications, err := s.notifications.List(ctx, ownerID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return notifications, nil
}

func (s *LedgerService) MarkNotificationRead(ctx context.Context, ownerID, notificationID uuid.UUID) error {
	if err := s.notifications.MarkRead(ctx, ownerID, notificationID); err != nil {
		return customError.WrapDatabaseError(err)
	}

	return nil
}

// RunReminderSweep scans unpaid loans and inserts the due-soon and overdue
// reminders that do not exist yet. Every insert goes through the database's
// insert-if-absent primitive, so the sweep is safe to run on any cadence
// and from concurrent processes; the Redis lock only avoids wasted work.
// Returns the number of notifications created.
func (s *LedgerService) RunReminderSweep(ctx context.Context) (int, error) {
	if !s.acquireSweepLock(ctx) {
		return 0, nil
	}
	defer s.releaseSweepLock(ctx)

	loans, err := s.loans.ListUnpaid(ctx)
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	existing, err := s.notifications.ListAll(ctx)
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	planned := ledger.PlanReminders(loans, existing, s.now(), s.dueSoonDays())

	created := 0
	for _, notification := range planned {
		inserted, err := s.notifications.InsertIfAbsent(ctx, notification)
		if err != nil {
			return created, customError.WrapDatabaseError(err)
		}
		if inserted {
			created++
		}
	}

	return created, nil
}

func (s *LedgerService) acquireSweepLock(ctx context.Context) bool {
	if s.redis == nil {
		return true
	}

	ok, err := s.redis.SetNX(ctx, sweepLockKey, "1", s.config.GetSweepLockTTL()).Result()
	if err != nil {
		// Dedup still holds at the database; run anyway.
		log.Printf("sweep lock unavailable: %v", err)
		return true
	}

	return ok
}

func (s *LedgerService) releaseSweepLock(ctx context.Context) {
	if s.redis == nil {
		return
	}

	if err := s.redis.Del(ctx, sweepLockKey).Err(); err != nil {
		log.Printf("sweep lock release failed: %v", err)
	}
}
