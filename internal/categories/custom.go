package categories

import (
	"strings"
	"time"
)

// Custom is a user-defined category stored under users/{uid}/categories.
// At most one per user has IsOtherAccount set; that one is excluded from
// balances and cannot be deleted.
type Custom struct {
	ID             string    `firestore:"id" json:"id"`
	Name           Name      `firestore:"name" json:"name"`
	Keywords       []string  `firestore:"keywords" json:"keywords"`
	IsOtherAccount bool      `firestore:"isOtherAccount" json:"isOtherAccount"`
	CreatedAt      time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// FindOtherAccount returns the first custom category flagged as the
// other-account sentinel.
func FindOtherAccount(custom []Custom) (Custom, bool) {
	for _, c := range custom {
		if c.IsOtherAccount {
			return c, true
		}
	}
	return Custom{}, false
}

// IsExcluded reports whether transactions in name stay out of summary
// balances: cash, Turemoney and the other-account sentinel.
func IsExcluded(name Name, custom []Custom) bool {
	if name.IsPassThrough() {
		return true
	}
	other, ok := FindOtherAccount(custom)
	return ok && other.Name == name
}

var businessTerms = []string{"company", "store", "shop", "shop name", "business"}

// IsBusiness reports whether a category reads as business related, either by
// its own name or by the keywords of the matching custom category.
func IsBusiness(name Name, custom []Custom) bool {
	if containsAny(strings.ToLower(string(name)), businessTerms) {
		return true
	}
	for _, c := range custom {
		if c.Name != name {
			continue
		}
		for _, kw := range c.Keywords {
			if containsAny(strings.ToLower(kw), businessTerms) {
				return true
			}
		}
		return false
	}
	return false
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
