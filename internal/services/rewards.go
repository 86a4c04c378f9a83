package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"hogar/internal/core"
	"hogar/internal/ledger"
	"hogar/internal/log"
	"hogar/internal/repo"
)

// RewardService manages the reward catalog and redemptions.
type RewardService struct {
	rewards *repo.Rewards
	history *repo.History
	ledger  *ledger.Ledger
	now     func() time.Time

	// Redeem pairs a ledger debit with a history append.
	mu sync.Mutex
}

func NewRewardService(rewards *repo.Rewards, history *repo.History, l *ledger.Ledger) *RewardService {
	return &RewardService{rewards: rewards, history: history, ledger: l, now: time.Now}
}

func (s *RewardService) List(ctx context.Context) ([]core.Reward, error) {
	return s.rewards.All(ctx)
}

func (s *RewardService) AddCustom(ctx context.Context, title, description, rawCost string) (core.Reward, error) {
	rw := core.Reward{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Cost:        int(core.ParseAmount(rawCost)),
	}
	if err := rw.Validate(); err != nil {
		return core.Reward{}, err
	}
	id, err := s.rewards.AddCustom(ctx, rw)
	if err != nil {
		return core.Reward{}, err
	}
	rw.ID = id
	rw.IsCustom = true
	return rw, nil
}

func (s *RewardService) RemoveCustom(ctx context.Context, id string) error {
	return s.rewards.RemoveCustom(ctx, id)
}

// Redeem spends points on a reward. The debit and the history entry go
// together: if the append fails after a successful debit, the points are
// awarded back before the error is returned. An insufficient balance
// leaves both the ledger and the history untouched.
func (s *RewardService) Redeem(ctx context.Context, displayName, rewardID string) (core.RedemptionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rw, err := s.rewards.Get(ctx, rewardID)
	if err != nil {
		return core.RedemptionRecord{}, err
	}

	balance, err := s.ledger.Debit(ctx, displayName, rw.Cost)
	if err != nil {
		return core.RedemptionRecord{}, err
	}

	rec := core.RedemptionRecord{
		User:        displayName,
		Title:       rw.Title,
		Description: rw.Description,
		RedeemedAt:  s.now(),
	}
	id, err := s.history.Append(ctx, rec)
	if err != nil {
		if _, awardErr := s.ledger.Award(ctx, displayName, rw.Cost); awardErr != nil {
			return core.RedemptionRecord{}, fmt.Errorf("record redemption: %w (refund also failed: %v)", err, awardErr)
		}
		return core.RedemptionRecord{}, fmt.Errorf("record redemption: %w", err)
	}
	rec.ID = id

	slog.InfoContext(ctx, "Reward redeemed",
		log.FieldUser, displayName,
		"reward", rw.Title,
		"cost", rw.Cost,
		"balance", balance)
	return rec, nil
}

func (s *RewardService) History(ctx context.Context) ([]core.RedemptionRecord, error) {
	return s.history.List(ctx)
}

func (s *RewardService) ClearHistory(ctx context.Context) error {
	return s.history.Clear(ctx)
}
