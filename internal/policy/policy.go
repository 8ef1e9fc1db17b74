// Package policy implements the posting eligibility rules for the public
// space: friend-count-tiered daily quotas, like toggling, and comment
// ordering. Every function is pure over explicit arguments; callers load
// state, decide here, then persist.
package policy

import (
	"strconv"
	"time"

	"connectsphere/internal/models"
)

// Quota is the number of posts a user may create within one UTC calendar
// day. The Unlimited sentinel lifts the cap entirely.
type Quota int

// Unlimited marks a tier with no daily cap.
const Unlimited Quota = -1

// IsUnlimited reports whether the quota has no cap.
func (q Quota) IsUnlimited() bool {
	return q == Unlimited
}

// Remaining returns how many posts are left after `used` posts today.
// An unlimited quota stays unlimited.
func (q Quota) Remaining(used int) Quota {
	if q.IsUnlimited() {
		return Unlimited
	}
	left := int(q) - used
	if left < 0 {
		left = 0
	}
	return Quota(left)
}

// String renders the quota for display ("unlimited" or a count).
func (q Quota) String() string {
	if q.IsUnlimited() {
		return "unlimited"
	}
	return strconv.Itoa(int(q))
}

// DailyQuota maps a user's friend count to their post quota tier.
//
//	0 friends  -> 0 posts
//	1 friend   -> 1 post
//	2-9        -> 2 posts
//	10 or more -> unlimited
func DailyQuota(friendCount int) Quota {
	switch {
	case friendCount <= 0:
		return 0
	case friendCount == 1:
		return 1
	case friendCount <= 9:
		return 2
	default:
		return Unlimited
	}
}

// Reason explains why posting was denied.
type Reason string

const (
	// ReasonEmptyContent rejects a post with no text content.
	ReasonEmptyContent Reason = "empty content"
	// ReasonQuotaExceeded rejects a post beyond the daily quota.
	ReasonQuotaExceeded Reason = "quota exceeded"
	// ReasonNoFriends is the zero-friend case of a quota rejection. The
	// rule is the same (quota 0), the reason lets clients show the
	// make-a-friend prompt instead of a come-back-tomorrow one.
	ReasonNoFriends Reason = "no friends"
)

// Decision is the outcome of a posting eligibility check.
type Decision struct {
	Allowed bool
	Reason  Reason
}

// CanPost decides whether a new post may be created right now. Checks are
// ordered; the first failing check wins.
func CanPost(friendCount, postsToday int, hasContent bool) Decision {
	if !hasContent {
		return Decision{Reason: ReasonEmptyContent}
	}
	quota := DailyQuota(friendCount)
	if !quota.IsUnlimited() && postsToday >= int(quota) {
		if friendCount == 0 {
			return Decision{Reason: ReasonNoFriends}
		}
		return Decision{Reason: ReasonQuotaExceeded}
	}
	return Decision{Allowed: true}
}

// PostsCreatedToday counts posts authored by userID whose creation
// timestamp falls on the same UTC calendar day as asOf. Pure over the
// given snapshot; it never reads storage or the clock.
func PostsCreatedToday(posts []*models.Post, userID string, asOf time.Time) int {
	y, m, d := asOf.UTC().Date()
	count := 0
	for _, p := range posts {
		if p == nil || p.UserID != userID {
			continue
		}
		py, pm, pd := p.CreatedAt.UTC().Date()
		if py == y && pm == m && pd == d {
			count++
		}
	}
	return count
}
