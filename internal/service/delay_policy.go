package service

import (
	"time"

	"github.com/rahul-9386/emi-management-system/internal/config"
	"github.com/rahul-9386/emi-management-system/internal/domain"
	"github.com/rahul-9386/emi-management-system/pkg/utils"
)

// DelayPolicy decides how many days an account's EMI is considered delayed.
// Penalty is always dailyPenaltyRate * DaysDelayed; only the derivation of the
// day count varies.
type DelayPolicy interface {
	DaysDelayed(snapshot *domain.ObligationSnapshot) int64
}

// FixedDelayPolicy reports the same delay for every account.
type FixedDelayPolicy struct {
	Days int64
}

func (p FixedDelayPolicy) DaysDelayed(_ *domain.ObligationSnapshot) int64 {
	return p.Days
}

// CalendarDelayPolicy derives the delay from the whole calendar days elapsed
// since the snapshot was recorded.
type CalendarDelayPolicy struct {
	Now func() time.Time
}

func (p CalendarDelayPolicy) DaysDelayed(snapshot *domain.ObligationSnapshot) int64 {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	return utils.CalendarDaysBetween(snapshot.CreatedDate, now())
}

// DelayPolicyFromConfig selects the configured delay policy.
func DelayPolicyFromConfig(cfg *config.Config) DelayPolicy {
	if cfg.Business.DelayPolicy == config.DelayPolicyCalendar {
		return CalendarDelayPolicy{}
	}
	return FixedDelayPolicy{Days: cfg.Business.FixedDaysDelayed}
}
