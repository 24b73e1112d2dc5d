// Package categories holds the built-in category tables and resolves free
// text to a category name using built-in and user-defined keywords.
package categories

// Name identifies a category. Built-in names are fixed by the keyword and
// group tables; custom names are whatever the user created.
type Name string

// Pass-through and fallback categories used by the parsers.
const (
	Cash         Name = "cash"
	Turemoney    Name = "Turemoney"
	OtherIncome  Name = "Other income"
	OtherExpense Name = "Other expense"
)

// Defaults for the auto-created other-account sentinel.
const (
	OtherAccountName Name = "Other Account"
)

var OtherAccountKeywords = []string{"other", "account", "misc"}

func (n Name) String() string { return string(n) }

// IsPassThrough reports whether n is a transfer between the user's own
// wallets and must stay out of balance figures.
func (n Name) IsPassThrough() bool {
	return n == Cash || n == Turemoney
}
