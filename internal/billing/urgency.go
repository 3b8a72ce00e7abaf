package billing

import (
	"math"
	"time"

	"github.com/theirongolddev/subtrack/internal/model"
)

// Tier is the display urgency bucket derived from days remaining.
type Tier int

const (
	TierNormal Tier = iota
	TierUrgent
	TierDueToday
)

// urgentWithin is the first day count that is no longer urgent.
const urgentWithin = 3

func (t Tier) String() string {
	switch t {
	case TierDueToday:
		return "due today"
	case TierUrgent:
		return "urgent"
	default:
		return "normal"
	}
}

// DaysUntil returns the whole calendar days from now's date to target,
// rounded up and clamped at zero. Both sides are compared as dates, so the
// time of day of now never matters.
func DaysUntil(target model.Date, now time.Time) int {
	today := model.DateOf(now).Time()
	diff := target.Time().Sub(today).Hours() / 24
	days := int(math.Ceil(diff))
	if days < 0 {
		return 0
	}
	return days
}

// TierFor maps days remaining to an urgency tier.
func TierFor(days int) Tier {
	switch {
	case days <= 0:
		return TierDueToday
	case days < urgentWithin:
		return TierUrgent
	default:
		return TierNormal
	}
}

// Urgency bundles the days remaining and tier for one target date.
type Urgency struct {
	Days int
	Tier Tier
}

// UrgencyOf computes the days remaining and tier for target relative to now.
func UrgencyOf(target model.Date, now time.Time) Urgency {
	d := DaysUntil(target, now)
	return Urgency{Days: d, Tier: TierFor(d)}
}
