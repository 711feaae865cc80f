package entities

import "github.com/shopspring/decimal"

type Product struct {
	ID    string
	Name  string
	Image string
	Price decimal.Decimal
}

type Identity struct {
	UserID  string
	Name    string
	Email   string
	IsAdmin bool
}

func (i Identity) Guest() bool {
	return i.UserID == ""
}
