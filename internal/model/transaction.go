package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a brokerage deal as served by the transaction store.
type Transaction struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Status    Status          `json:"status"`
	Address   string          `json:"address,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Parties   []string        `json:"parties,omitempty"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Clone returns a copy that shares no memory with t.
func (t Transaction) Clone() Transaction {
	c := t
	if t.Parties != nil {
		c.Parties = make([]string, len(t.Parties))
		copy(c.Parties, t.Parties)
	}
	return c
}

// StatusChange is one entry of a transaction's status history.
type StatusChange struct {
	ID            int64     `json:"id"`
	TransactionID int64     `json:"transaction_id"`
	From          Status    `json:"from"`
	To            Status    `json:"to"`
	ChangedAt     time.Time `json:"changed_at"`
}
