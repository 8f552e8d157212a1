package collatex

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/rbacdash/internal/models"
)

func names(users []models.User) []string {
	out := make([]string, len(users))
	for i, u := range users {
		out[i] = u.Name
	}
	return out
}

func TestSortedUsers(t *testing.T) {
	in := []models.User{
		{ID: "1", Name: "bob"},
		{ID: "2", Name: "Émile"},
		{ID: "3", Name: "Alice"},
		{ID: "4", Name: "Zed"},
		{ID: "5", Name: "anna"},
		{ID: "6", Name: "eve"},
	}

	out := SortedUsers(in, "en")

	assert.Equal(t, []string{"Alice", "anna", "bob", "Émile", "eve", "Zed"}, names(out))
	assert.Equal(t, "bob", in[0].Name, "input must not be reordered")
}

func TestSortUsersByName_StableForTies(t *testing.T) {
	users := []models.User{
		{ID: "b", Name: "Sam"},
		{ID: "a", Name: "Sam"},
		{ID: "c", Name: "Ann"},
	}

	SortUsersByName(users, "en")

	ids := []string{users[0].ID, users[1].ID, users[2].ID}
	assert.Equal(t, []string{"c", "b", "a"}, ids)
}

func TestNew_BadLocaleFallsBack(t *testing.T) {
	users := []models.User{{Name: "b"}, {Name: "a"}}
	SortUsersByName(users, "not a locale!")
	assert.Equal(t, []string{"a", "b"}, names(users))
}
