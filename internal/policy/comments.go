package policy

import (
	"sort"

	"connectsphere/internal/models"
)

// AppendComment returns a new sequence with c appended after the existing
// comments. Existing entries keep their insertion order; the input slice
// is not modified.
func AppendComment(comments []models.Comment, c models.Comment) []models.Comment {
	out := make([]models.Comment, len(comments), len(comments)+1)
	copy(out, comments)
	return append(out, c)
}

// SortComments returns the comments ordered by creation timestamp
// ascending, as used for display. Stored order is insertion order and is
// left untouched; ties keep their stored relative order.
func SortComments(comments []models.Comment) []models.Comment {
	out := make([]models.Comment, len(comments))
	copy(out, comments)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
