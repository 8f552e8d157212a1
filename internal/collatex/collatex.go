// Package collatex orders display names the way a person reading them in a
// given locale expects.
package collatex

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/dmitrijs2005/rbacdash/internal/models"
)

// DefaultLocale is used when no locale is configured or it does not parse.
const DefaultLocale = "en"

// New returns a collator for locale. Collators are not safe for concurrent
// use, so callers build one per sort.
func New(locale string) *collate.Collator {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Make(DefaultLocale)
	}
	return collate.New(tag)
}

// SortUsersByName sorts users by display name in place, keeping the
// relative order of equal names.
func SortUsersByName(users []models.User, locale string) {
	c := New(locale)
	slices.SortStableFunc(users, func(a, b models.User) int {
		return c.CompareString(a.Name, b.Name)
	})
}

// SortedUsers returns a sorted copy of users.
func SortedUsers(users []models.User, locale string) []models.User {
	out := slices.Clone(users)
	SortUsersByName(out, locale)
	return out
}
