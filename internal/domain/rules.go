package domain

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	RuleServiceChargePercent = "service_charge_percent"
	RuleFixedServiceCharge   = "fixed_service_charge"
	RuleChargeStrategy       = "charge_strategy"
)

// SchemeRules открытый набор настроек схемы. Движок читает только ключи комиссии и стратегии,
// остальные ключи сохраняются как есть и записываются обратно без изменений.
type SchemeRules struct {
	ServiceChargePercent decimal.NullDecimal
	FixedServiceCharge   decimal.NullDecimal
	ChargeStrategy       string

	extra map[string]json.RawMessage
}

// Extra возвращает сырое значение ключа, который движок не интерпретирует.
func (r SchemeRules) Extra(key string) (json.RawMessage, bool) {
	v, ok := r.extra[key]
	return v, ok
}

func (r *SchemeRules) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse scheme rules: %w", err)
	}

	*r = SchemeRules{extra: make(map[string]json.RawMessage, len(raw))}
	for key, value := range raw {
		switch key {
		case RuleServiceChargePercent:
			if err := r.ServiceChargePercent.UnmarshalJSON(value); err != nil {
				return fmt.Errorf("parse %s: %w", key, err)
			}
		case RuleFixedServiceCharge:
			if err := r.FixedServiceCharge.UnmarshalJSON(value); err != nil {
				return fmt.Errorf("parse %s: %w", key, err)
			}
		case RuleChargeStrategy:
			if err := json.Unmarshal(value, &r.ChargeStrategy); err != nil {
				return fmt.Errorf("parse %s: %w", key, err)
			}
		default:
			r.extra[key] = value
		}
	}
	return nil
}

func (r SchemeRules) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(r.extra)+3) //nolint:mnd
	for key, value := range r.extra {
		out[key] = value
	}

	if r.ServiceChargePercent.Valid {
		b, err := r.ServiceChargePercent.Decimal.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", RuleServiceChargePercent, err)
		}
		out[RuleServiceChargePercent] = b
	}
	if r.FixedServiceCharge.Valid {
		b, err := r.FixedServiceCharge.Decimal.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", RuleFixedServiceCharge, err)
		}
		out[RuleFixedServiceCharge] = b
	}
	if r.ChargeStrategy != "" {
		b, err := json.Marshal(r.ChargeStrategy)
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", RuleChargeStrategy, err)
		}
		out[RuleChargeStrategy] = b
	}

	return json.Marshal(out) //nolint:wrapcheck
}
