// Package schedule classifies tasks into the agenda buckets (today,
// tomorrow, overdue tiers) and defines the ordering rules the views share.
// All functions take "now" as an argument; nothing here reads the clock.
package schedule

import (
	"math"
	"sort"
	"time"

	"github.com/listit/api/internal/domain/dates"
	"github.com/listit/api/internal/domain/entities"
)

// Bucket is the agenda slot a task's due date maps to.
type Bucket string

const (
	BucketNone            Bucket = "none"
	BucketToday           Bucket = "today"
	BucketTomorrow        Bucket = "tomorrow"
	BucketOverdueMedium   Bucket = "overdue:medium"
	BucketOverdueHigh     Bucket = "overdue:high"
	BucketOverdueCritical Bucket = "overdue:critical"
)

// IsOverdue reports whether b is one of the overdue tiers.
func (b Bucket) IsOverdue() bool {
	return b == BucketOverdueMedium || b == BucketOverdueHigh || b == BucketOverdueCritical
}

// Classify maps a due date to its bucket relative to now. Both sides are
// truncated to local midnight first; time of day never affects the result,
// so a task due today stays "today" however late it is opened. A nil due
// date is excluded from every bucketed view.
func Classify(now time.Time, due *time.Time) Bucket {
	if due == nil {
		return BucketNone
	}

	nowMid := dates.Midnight(now)
	dueMid := dates.Midnight(due.In(now.Location()))

	switch days := daysBetween(dueMid, nowMid); {
	case days == 0:
		return BucketToday
	case days == -1:
		return BucketTomorrow
	case days >= 1 && days <= 2:
		return BucketOverdueMedium
	case days >= 3 && days <= 7:
		return BucketOverdueHigh
	case days > 7:
		return BucketOverdueCritical
	default:
		return BucketNone
	}
}

// DaysOverdue returns how many whole days past due the task is, or 0 when
// it is not overdue.
func DaysOverdue(now time.Time, due *time.Time) int {
	if due == nil {
		return 0
	}
	days := daysBetween(dates.Midnight(due.In(now.Location())), dates.Midnight(now))
	if days < 1 {
		return 0
	}
	return days
}

// daysBetween counts calendar days from due midnight up to now midnight,
// rounding up so a partial DST-shortened day still counts as one.
func daysBetween(dueMid, nowMid time.Time) int {
	diff := nowMid.Sub(dueMid).Hours() / 24
	if diff >= 0 {
		return int(math.Ceil(diff))
	}
	return -int(math.Ceil(-diff))
}

// SortTasks orders tasks the way every view renders them: pinned first,
// then due date ascending, falling back to creation date when a due date is
// absent. The sort is stable.
func SortTasks(tasks []entities.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := &tasks[i], &tasks[j]
		if a.IsPinned != b.IsPinned {
			return a.IsPinned
		}
		return sortKey(a).Before(sortKey(b))
	})
}

func sortKey(t *entities.Task) time.Time {
	if t.DueDate != nil {
		return *t.DueDate
	}
	return t.CreatedAt
}

// SortCollections orders a list's collections: "General" first, then by
// creation date ascending.
func SortCollections(cols []entities.Collection) {
	sort.SliceStable(cols, func(i, j int) bool {
		a, b := &cols[i], &cols[j]
		if a.IsDefault() != b.IsDefault() {
			return a.IsDefault()
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
}
