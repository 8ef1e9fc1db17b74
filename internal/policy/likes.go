package policy

import "connectsphere/internal/models"

// ToggleLike returns a copy of likes with userID's membership flipped:
// present users are removed, absent users are added. The input set is
// never mutated, so applying the toggle twice with the same user yields
// a set equal to the original.
func ToggleLike(likes models.LikeSet, userID string) models.LikeSet {
	next := likes.Clone()
	if next.Contains(userID) {
		next.Remove(userID)
	} else {
		next.Add(userID)
	}
	return next
}
