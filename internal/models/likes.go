package models

import (
	"encoding/json"
	"sort"
)

// LikeSet is the set of user IDs that liked a post. It enforces the
// at-most-once invariant that a plain slice cannot, while still
// serializing as a JSON array so stored blobs keep the original shape.
type LikeSet map[string]struct{}

// NewLikeSet builds a set from the given user IDs, deduplicating.
func NewLikeSet(userIDs ...string) LikeSet {
	s := make(LikeSet, len(userIDs))
	for _, id := range userIDs {
		s[id] = struct{}{}
	}
	return s
}

// Contains reports whether userID is in the set.
func (s LikeSet) Contains(userID string) bool {
	_, ok := s[userID]
	return ok
}

// Add inserts userID into the set.
func (s LikeSet) Add(userID string) {
	s[userID] = struct{}{}
}

// Remove deletes userID from the set.
func (s LikeSet) Remove(userID string) {
	delete(s, userID)
}

// Len returns the number of likes.
func (s LikeSet) Len() int {
	return len(s)
}

// Clone returns an independent copy of the set.
func (s LikeSet) Clone() LikeSet {
	out := make(LikeSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// UserIDs returns the members sorted lexicographically. Sorting keeps
// serialized blobs byte-stable across writes.
func (s LikeSet) UserIDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// MarshalJSON encodes the set as a sorted JSON array of user IDs.
func (s LikeSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.UserIDs())
}

// UnmarshalJSON decodes a JSON array of user IDs, deduplicating entries.
func (s *LikeSet) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewLikeSet(ids...)
	return nil
}
