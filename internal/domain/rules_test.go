package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemeRules_PassthroughKeys(t *testing.T) {
	src := `{"service_charge_percent": 5, "fixed_service_charge": "100.50", "payout_order": "random"}`

	var rules SchemeRules
	require.NoError(t, json.Unmarshal([]byte(src), &rules))

	assert.True(t, rules.ServiceChargePercent.Valid)
	assert.True(t, decimal.NewFromInt(5).Equal(rules.ServiceChargePercent.Decimal))
	assert.True(t, decimal.RequireFromString("100.50").Equal(rules.FixedServiceCharge.Decimal))
	assert.Empty(t, rules.ChargeStrategy)

	raw, ok := rules.Extra("payout_order")
	require.True(t, ok)
	assert.JSONEq(t, `"random"`, string(raw))

	// непрочитанные движком ключи записываются обратно без изменений.
	out, err := json.Marshal(rules)
	require.NoError(t, err)

	var back map[string]any
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, "random", back["payout_order"])
	assert.Contains(t, back, RuleServiceChargePercent)
	assert.Contains(t, back, RuleFixedServiceCharge)
	assert.NotContains(t, back, RuleChargeStrategy)
}

func TestSchemeRules_Empty(t *testing.T) {
	var rules SchemeRules
	require.NoError(t, json.Unmarshal([]byte(`{}`), &rules))
	assert.False(t, rules.ServiceChargePercent.Valid)
	assert.False(t, rules.FixedServiceCharge.Valid)

	out, err := json.Marshal(rules)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(out))
}

func TestSchemeRules_InvalidValue(t *testing.T) {
	var rules SchemeRules
	err := json.Unmarshal([]byte(`{"service_charge_percent": "five"}`), &rules)
	require.Error(t, err)
}

func TestScheme_LockedAt(t *testing.T) {
	end := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	before := end.Add(-time.Hour)
	after := end.Add(time.Hour)

	ajita := Scheme{Type: SchemeAjita, EndDate: &end}
	assert.True(t, ajita.LockedAt(before))
	assert.False(t, ajita.LockedAt(after))

	noEnd := Scheme{Type: SchemeAjita}
	assert.False(t, noEnd.LockedAt(before))

	akawo := Scheme{Type: SchemeAkawo, EndDate: &end}
	assert.False(t, akawo.LockedAt(before))
}

func TestActor(t *testing.T) {
	var anonymous Actor
	assert.False(t, anonymous.Authenticated())
	assert.False(t, anonymous.IsAdmin())
}
