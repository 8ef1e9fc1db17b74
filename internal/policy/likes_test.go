package policy

import (
	"testing"

	"connectsphere/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestToggleLikeAddsAndRemoves(t *testing.T) {
	likes := models.NewLikeSet()

	liked := ToggleLike(likes, "u1")
	assert.True(t, liked.Contains("u1"))
	assert.Equal(t, 1, liked.Len())

	unliked := ToggleLike(liked, "u1")
	assert.False(t, unliked.Contains("u1"))
	assert.Equal(t, 0, unliked.Len())
}

func TestToggleLikeIsIdempotentPerState(t *testing.T) {
	likes := models.NewLikeSet("u1", "u2")

	// Toggling twice returns to the original membership.
	roundTrip := ToggleLike(ToggleLike(likes, "u3"), "u3")
	assert.Equal(t, likes.UserIDs(), roundTrip.UserIDs())
}

func TestToggleLikeDoesNotMutateInput(t *testing.T) {
	likes := models.NewLikeSet("u1")

	_ = ToggleLike(likes, "u2")
	_ = ToggleLike(likes, "u1")

	assert.Equal(t, []string{"u1"}, likes.UserIDs())
}

func TestToggleLikeNilInput(t *testing.T) {
	liked := ToggleLike(nil, "u1")
	assert.True(t, liked.Contains("u1"))
}
