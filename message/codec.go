// SPDX-FileCopyrightText: 2026 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package message

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Generic payload header layout (RFC 7296, Section 3.2): next payload type,
// critical flag, payload length including the 4-byte header itself.
const payloadHeaderLen = 4

// Helper function for bounds checking
func checkLen(data []byte, minLen int, errMsg string) error {
	if len(data) < minLen {
		return errors.New(errMsg)
	}
	return nil
}

// newPayload constructs an empty payload of the given kind.
func newPayload(payloadType IKEPayloadType) (Payload, error) {
	switch payloadType {
	case TypeSA:
		return new(SecurityAssociation), nil
	case TypeKE:
		return new(KeyExchange), nil
	case TypeIDi:
		return new(IdentificationInitiator), nil
	case TypeIDr:
		return new(IdentificationResponder), nil
	case TypeCERT:
		return new(Certificate), nil
	case TypeCERTreq:
		return new(CertificateRequest), nil
	case TypeAUTH:
		return new(Authentication), nil
	case TypeNiNr:
		return new(Nonce), nil
	case TypeN:
		return new(Notification), nil
	case TypeD:
		return new(Delete), nil
	case TypeV:
		return new(VendorID), nil
	case TypeTSi:
		return new(TrafficSelectorInitiator), nil
	case TypeTSr:
		return new(TrafficSelectorResponder), nil
	case TypeSK:
		return new(Encrypted), nil
	case TypeCP:
		return new(Configuration), nil
	case TypeEAP:
		return new(EAP), nil
	default:
		return nil, fmt.Errorf("unknown payload type: %d", payloadType)
	}
}

// decodePayload reads exactly one payload of the given type from the head of
// rawData and returns it together with the remaining bytes. The decoded
// payload's next-type link is taken from the generic payload header; for an
// Encrypted payload the wire field names the first inner payload instead, so
// the chain link is terminated there.
func decodePayload(payloadType IKEPayloadType, rawData []byte) (Payload, []byte, error) {
	if err := checkLen(rawData, payloadHeaderLen, "no sufficient bytes to decode next payload"); err != nil {
		return nil, nil, err
	}
	payloadLength := binary.BigEndian.Uint16(rawData[2:4])
	if payloadLength < payloadHeaderLen {
		return nil, nil, fmt.Errorf("illegal payload length %d < header length %d", payloadLength, payloadHeaderLen)
	}
	if err := checkLen(rawData, int(payloadLength), "the length of received message not match the length specified in header"); err != nil {
		return nil, nil, err
	}

	payload, err := newPayload(payloadType)
	if err != nil {
		return nil, nil, err
	}

	if encrypted, ok := payload.(*Encrypted); ok {
		encrypted.NextPayload = IKEPayloadType(rawData[0])
		payload.SetNextType(NoNext)
	} else {
		payload.SetNextType(IKEPayloadType(rawData[0]))
	}

	if err := payload.unmarshal(rawData[payloadHeaderLen:payloadLength]); err != nil {
		return nil, nil, fmt.Errorf("unmarshal payload failed: %w", err)
	}

	return payload, rawData[payloadLength:], nil
}

// encodePayload serializes one payload with its generic payload header. The
// next-payload field is taken from the payload's recorded link; for an
// Encrypted payload it is the first inner payload type.
func encodePayload(p Payload) ([]byte, error) {
	payloadData := make([]byte, payloadHeaderLen)
	if encrypted, ok := p.(*Encrypted); ok {
		payloadData[0] = byte(encrypted.NextPayload)
	} else {
		payloadData[0] = byte(p.NextType())
	}

	data, err := p.marshal()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	payloadData = append(payloadData, data...)
	payloadDataLen := len(payloadData)
	if payloadDataLen > math.MaxUint16 {
		return nil, fmt.Errorf("payload data length exceeds uint16 limit: %d", payloadDataLen)
	}
	binary.BigEndian.PutUint16(payloadData[2:4], uint16(payloadDataLen))

	return payloadData, nil
}
