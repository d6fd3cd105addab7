// Package events публикует события журнала (взносы и выплаты) в RabbitMQ для квитанций и уведомлений.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindContributionRecorded Kind = "contribution.recorded"
	KindPayoutProcessed      Kind = "payout.processed"
)

type LedgerEvent struct {
	Kind           Kind            `json:"kind"`
	TransactionIDs []uuid.UUID     `json:"transaction_ids"`
	UserID         uuid.UUID       `json:"user_id"`
	SchemeID       uuid.UUID       `json:"scheme_id"`
	AdminID        uuid.UUID       `json:"admin_id"`
	Amount         decimal.Decimal `json:"amount"`
	ServiceCharge  decimal.Decimal `json:"service_charge"`
	OccurredAt     time.Time       `json:"occurred_at"`
}

func (e LedgerEvent) ToJSON() ([]byte, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal %s event: %w", e.Kind, err)
	}
	return b, nil
}

func LedgerEventFromJSON(data []byte) (*LedgerEvent, error) {
	var e LedgerEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("unmarshal ledger event: %w", err)
	}
	return &e, nil
}
