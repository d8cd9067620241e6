package reflected_test

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/reflected/pkg/reflected"
)

type customField struct {
	Tag string
}

type user struct {
	ID         uint64
	Name       string
	Birthday   time.Time
	Age        uint
	Custom     customField
	CustomID   uint
	Cash       decimal.Decimal
	IsPoros    bool
	StrOpt     *string
	UintOpt    *uint
	BoolOpt    *bool
	DecimalOpt *decimal.Decimal
}

var users = reflected.NewTable[user]("User",
	reflected.Integer("id", func(u *user) *uint64 { return &u.ID }),
	reflected.Text("name", func(u *user) *string { return &u.Name }, reflected.Unique()),
	reflected.Date("birthday", func(u *user) *time.Time { return &u.Birthday }),
	reflected.Integer("age", func(u *user) *uint { return &u.Age }),
	reflected.Custom[user]("custom"),
	reflected.Integer("custom_id", func(u *user) *uint { return &u.CustomID }),
	reflected.Decimal("cash", func(u *user) *decimal.Decimal { return &u.Cash }),
	reflected.Bool("is_poros", func(u *user) *bool { return &u.IsPoros }),
	reflected.OptionalText("str_opt", func(u *user) **string { return &u.StrOpt }),
	reflected.OptionalInteger("usize_opt", func(u *user) **uint { return &u.UintOpt }),
	reflected.OptionalBool("bool_opt", func(u *user) **bool { return &u.BoolOpt }),
	reflected.OptionalDecimal("decimal_opt", func(u *user) **decimal.Decimal { return &u.DecimalOpt }),
)

type account struct {
	Name     string
	Age      int32
	Password string
}

var accounts = reflected.NewTable[account]("Account",
	reflected.Text("name", func(a *account) *string { return &a.Name }, reflected.Unique()),
	reflected.Integer("age", func(a *account) *int32 { return &a.Age }),
	reflected.Text("password", func(a *account) *string { return &a.Password }, reflected.Secure()),
)

type measurement struct {
	Ratio    float64
	Weight   float32
	Maybe    *float64
	Taken    *time.Time
	Status   string
	Nickname *string
}

var measurements = reflected.NewTable[measurement]("Measurement",
	reflected.Float("ratio", func(m *measurement) *float64 { return &m.Ratio }),
	reflected.Float("weight", func(m *measurement) *float32 { return &m.Weight }),
	reflected.OptionalFloat("maybe", func(m *measurement) **float64 { return &m.Maybe }),
	reflected.OptionalDate("taken", func(m *measurement) **time.Time { return &m.Taken }),
	reflected.Text("status", func(m *measurement) *string { return &m.Status }, reflected.Variants("open", "closed")),
	reflected.OptionalText("nickname", func(m *measurement) **string { return &m.Nickname }),
).WithTypeName("measurements")

func ptr[V any](v V) *V { return &v }

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
