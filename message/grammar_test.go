// SPDX-FileCopyrightText: 2026 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package message

import (
	"errors"
	"testing"
)

func TestPayloadRulesKnownExchanges(t *testing.T) {
	for _, exchangeType := range []uint8{IKE_SA_INIT, IKE_AUTH, CREATE_CHILD_SA, INFORMATIONAL} {
		for _, isRequest := range []bool{true, false} {
			rules, err := PayloadRules(exchangeType, isRequest)
			if err != nil {
				t.Errorf("PayloadRules(%s, %t) failed: %v", ExchangeTypeName(exchangeType), isRequest, err)
				continue
			}
			if len(rules) == 0 {
				t.Errorf("PayloadRules(%s, %t) returned no rules", ExchangeTypeName(exchangeType), isRequest)
			}
		}
	}
}

func TestPayloadRulesUnknownExchange(t *testing.T) {
	_, err := PayloadRules(ExchangeTypeUndefined, true)
	if !errors.Is(err, ErrRuleNotFound) {
		t.Errorf("Expected ErrRuleNotFound for undefined exchange type, got %v", err)
	}

	_, err = PayloadRules(200, false)
	if !errors.Is(err, ErrRuleNotFound) {
		t.Errorf("Expected ErrRuleNotFound for unknown exchange type, got %v", err)
	}
}

func TestSaInitMandatoryPayloads(t *testing.T) {
	rules, err := PayloadRules(IKE_SA_INIT, true)
	if err != nil {
		t.Fatalf("PayloadRules failed: %v", err)
	}

	for _, mandatory := range []IKEPayloadType{TypeSA, TypeKE, TypeNiNr} {
		rule := ruleFor(rules, mandatory)
		if rule == nil {
			t.Errorf("No rule for mandatory payload %s", mandatory)
			continue
		}
		if rule.MinOccurrence != 1 || rule.MaxOccurrence != 1 {
			t.Errorf("Payload %s: expected occurrence [1,1], got [%d,%d]",
				mandatory, rule.MinOccurrence, rule.MaxOccurrence)
		}
	}

	if ruleFor(rules, TypeEAP) != nil {
		t.Error("EAP must not be allowed in IKE_SA_INIT")
	}
}

func TestRuleForLookup(t *testing.T) {
	rules, err := PayloadRules(INFORMATIONAL, true)
	if err != nil {
		t.Fatalf("PayloadRules failed: %v", err)
	}

	if rule := ruleFor(rules, TypeD); rule == nil {
		t.Error("Expected a rule for delete payloads in INFORMATIONAL")
	}
	if rule := ruleFor(rules, TypeKE); rule != nil {
		t.Error("Key exchange must not be allowed in INFORMATIONAL")
	}
}
