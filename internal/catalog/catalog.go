// Package catalog holds the entity types the reflected CLI manages, each with
// the static field table a code generator would emit for it.
package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/reflected/pkg/reflected"
)

// Settings is stored with a User in memory only; it has no string form.
type Settings struct {
	Theme  string
	Locale string
}

// User is an account holder.
type User struct {
	ID       uint64
	Name     string
	Email    string
	Password string
	Birthday time.Time
	Age      uint32
	Balance  decimal.Decimal
	Rating   float64
	Active   bool
	Nickname *string
	WalletID *uint64
	Settings Settings
}

// Users is the field table of User.
var Users = reflected.NewTable[User]("User",
	reflected.Integer("id", func(u *User) *uint64 { return &u.ID }),
	reflected.Text("name", func(u *User) *string { return &u.Name }, reflected.Unique()),
	reflected.Text("email", func(u *User) *string { return &u.Email }, reflected.Unique()),
	reflected.Text("password", func(u *User) *string { return &u.Password }, reflected.Secure()),
	reflected.Date("birthday", func(u *User) *time.Time { return &u.Birthday }),
	reflected.Integer("age", func(u *User) *uint32 { return &u.Age }),
	reflected.Decimal("balance", func(u *User) *decimal.Decimal { return &u.Balance }),
	reflected.Float("rating", func(u *User) *float64 { return &u.Rating }),
	reflected.Bool("active", func(u *User) *bool { return &u.Active }),
	reflected.OptionalText("nickname", func(u *User) **string { return &u.Nickname }),
	reflected.OptionalInteger("wallet_id", func(u *User) **uint64 { return &u.WalletID }),
	reflected.Custom[User]("settings"),
)

// Currencies accepted by Wallet.Currency.
var Currencies = []string{"EUR", "GBP", "USD"}

// Wallet holds funds in one currency for an owner.
type Wallet struct {
	ID       int64
	OwnerID  int64
	Currency string
	Amount   decimal.Decimal
	Limit    *decimal.Decimal
	Opened   time.Time
	Closed   *time.Time
	Frozen   *bool
}

// Wallets is the field table of Wallet.
var Wallets = reflected.NewTable[Wallet]("Wallet",
	reflected.Integer("id", func(w *Wallet) *int64 { return &w.ID }),
	reflected.Integer("owner_id", func(w *Wallet) *int64 { return &w.OwnerID }),
	reflected.Text("currency", func(w *Wallet) *string { return &w.Currency }, reflected.Variants(Currencies...)),
	reflected.Decimal("amount", func(w *Wallet) *decimal.Decimal { return &w.Amount }),
	reflected.OptionalDecimal("limit", func(w *Wallet) **decimal.Decimal { return &w.Limit }),
	reflected.Date("opened", func(w *Wallet) *time.Time { return &w.Opened }),
	reflected.OptionalDate("closed", func(w *Wallet) **time.Time { return &w.Closed }),
	reflected.OptionalBool("frozen", func(w *Wallet) **bool { return &w.Frozen }),
)

// Registry returns a registry holding every catalog type.
func Registry() *reflected.Registry {
	return reflected.NewRegistry().MustRegister(Users, Wallets)
}
