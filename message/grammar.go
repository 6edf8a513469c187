// SPDX-FileCopyrightText: 2026 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package message

import (
	"fmt"
	"math"
)

// PayloadRule allows a payload type to occur between MinOccurrence and
// MaxOccurrence times in one message.
type PayloadRule struct {
	Type          IKEPayloadType
	MinOccurrence int
	MaxOccurrence int
}

type messageRule struct {
	exchangeType uint8
	isRequest    bool
	rules        []PayloadRule
}

var messageRules = []messageRule{
	{
		exchangeType: IKE_SA_INIT,
		isRequest:    true,
		rules: []PayloadRule{
			{TypeN, 0, math.MaxInt},
			{TypeSA, 1, 1},
			{TypeKE, 1, 1},
			{TypeNiNr, 1, 1},
			{TypeCERTreq, 0, 1},
			{TypeV, 0, 10},
		},
	},
	{
		exchangeType: IKE_SA_INIT,
		isRequest:    false,
		rules: []PayloadRule{
			{TypeN, 0, math.MaxInt},
			{TypeSA, 1, 1},
			{TypeKE, 1, 1},
			{TypeNiNr, 1, 1},
			{TypeCERTreq, 0, 1},
			{TypeV, 0, 10},
		},
	},
	{
		exchangeType: IKE_AUTH,
		isRequest:    true,
		rules: []PayloadRule{
			{TypeN, 0, math.MaxInt},
			{TypeSK, 0, 1},
			{TypeIDi, 0, 1},
			{TypeCERT, 0, 4},
			{TypeCERTreq, 0, 1},
			{TypeIDr, 0, 1},
			{TypeAUTH, 0, 1},
			{TypeEAP, 0, 1},
			{TypeSA, 0, 1},
			{TypeTSi, 0, 1},
			{TypeTSr, 0, 1},
			{TypeCP, 0, 1},
			{TypeV, 0, 10},
		},
	},
	{
		exchangeType: IKE_AUTH,
		isRequest:    false,
		rules: []PayloadRule{
			{TypeN, 0, math.MaxInt},
			{TypeSK, 0, 1},
			{TypeIDr, 0, 1},
			{TypeCERT, 0, 4},
			{TypeAUTH, 0, 1},
			{TypeEAP, 0, 1},
			{TypeSA, 0, 1},
			{TypeTSi, 0, 1},
			{TypeTSr, 0, 1},
			{TypeCP, 0, 1},
			{TypeV, 0, 10},
		},
	},
	{
		exchangeType: CREATE_CHILD_SA,
		isRequest:    true,
		rules: []PayloadRule{
			{TypeN, 0, math.MaxInt},
			{TypeSK, 0, 1},
			{TypeSA, 0, 1},
			{TypeNiNr, 0, 1},
			{TypeKE, 0, 1},
			{TypeTSi, 0, 1},
			{TypeTSr, 0, 1},
		},
	},
	{
		exchangeType: CREATE_CHILD_SA,
		isRequest:    false,
		rules: []PayloadRule{
			{TypeN, 0, math.MaxInt},
			{TypeSK, 0, 1},
			{TypeSA, 0, 1},
			{TypeNiNr, 0, 1},
			{TypeKE, 0, 1},
			{TypeTSi, 0, 1},
			{TypeTSr, 0, 1},
		},
	},
	{
		exchangeType: INFORMATIONAL,
		isRequest:    true,
		rules: []PayloadRule{
			{TypeN, 0, math.MaxInt},
			{TypeSK, 0, 1},
			{TypeD, 0, math.MaxInt},
			{TypeCP, 0, 1},
		},
	},
	{
		exchangeType: INFORMATIONAL,
		isRequest:    false,
		rules: []PayloadRule{
			{TypeN, 0, math.MaxInt},
			{TypeSK, 0, 1},
			{TypeD, 0, math.MaxInt},
			{TypeCP, 0, 1},
		},
	},
}

// PayloadRules returns the payload occurrence rules for one exchange type
// and direction. An exchange type without rules yields ErrRuleNotFound.
func PayloadRules(exchangeType uint8, isRequest bool) ([]PayloadRule, error) {
	for i := range messageRules {
		if messageRules[i].exchangeType == exchangeType && messageRules[i].isRequest == isRequest {
			return messageRules[i].rules, nil
		}
	}
	return nil, fmt.Errorf("no message rule for exchange type %s request %t: %w",
		ExchangeTypeName(exchangeType), isRequest, ErrRuleNotFound)
}

func ruleFor(rules []PayloadRule, payloadType IKEPayloadType) *PayloadRule {
	for i := range rules {
		if rules[i].Type == payloadType {
			return &rules[i]
		}
	}
	return nil
}
