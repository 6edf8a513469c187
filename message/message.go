// SPDX-FileCopyrightText: 2026 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package message

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/omec-project/ike/logger"
)

// Message models one IKEv2 message. It carries the header fields, the SA
// identity, the payload chain and the packet the message was read from or
// will be written to. A zero exchange type means the message is still
// unconfigured and cannot be generated.
type Message struct {
	majorVersion uint8
	minorVersion uint8
	exchangeType uint8
	isRequest    bool
	messageID    uint32
	firstPayload IKEPayloadType
	saID         *SaID
	packet       *Packet
	chain        PayloadChain
	body         []byte
	log          *zap.SugaredLogger
}

// NewMessage returns an empty outbound message. A nil log falls back to the
// package IKE logger.
func NewMessage(log *zap.SugaredLogger) *Message {
	if log == nil {
		log = logger.IKELog
	}
	return &Message{
		majorVersion: 2,
		minorVersion: 0,
		exchangeType: ExchangeTypeUndefined,
		isRequest:    true,
		firstPayload: NoNext,
		log:          log,
	}
}

// NewMessageFromPacket returns a message wrapping a received packet, ready
// for ParseHeader and ParseBody.
func NewMessageFromPacket(packet *Packet, log *zap.SugaredLogger) *Message {
	m := NewMessage(log)
	m.packet = packet
	return m
}

func (m *Message) MajorVersion() uint8 { return m.majorVersion }

func (m *Message) MinorVersion() uint8 { return m.minorVersion }

func (m *Message) ExchangeType() uint8 { return m.exchangeType }

func (m *Message) SetExchangeType(exchangeType uint8) { m.exchangeType = exchangeType }

func (m *Message) IsRequest() bool { return m.isRequest }

func (m *Message) SetRequest(isRequest bool) { m.isRequest = isRequest }

func (m *Message) MessageID() uint32 { return m.messageID }

func (m *Message) SetMessageID(messageID uint32) { m.messageID = messageID }

// FirstPayloadType returns the type of the first payload in the chain, or
// NoNext when the chain is empty.
func (m *Message) FirstPayloadType() IKEPayloadType { return m.firstPayload }

func (m *Message) Packet() *Packet { return m.packet }

func (m *Message) SetPacket(packet *Packet) { m.packet = packet }

// SetSaID stores a private copy of the SA identity.
func (m *Message) SetSaID(saID *SaID) error {
	if saID == nil {
		return fmt.Errorf("SA identity must not be nil: %w", ErrInvalidState)
	}
	m.saID = saID.Clone()
	return nil
}

// SaID returns a copy of the SA identity, or ErrSaIDUnavailable when none
// has been set or parsed yet.
func (m *Message) SaID() (*SaID, error) {
	if m.saID == nil {
		return nil, ErrSaIDUnavailable
	}
	return m.saID.Clone(), nil
}

// AddPayload appends a payload to the chain and maintains the next-payload
// links. On error the payload still belongs to the caller.
func (m *Message) AddPayload(payload Payload) error {
	last := m.chain.Last()
	if err := m.chain.Append(payload); err != nil {
		return err
	}
	if last == nil {
		m.firstPayload = payload.Type()
	} else {
		last.SetNextType(payload.Type())
	}
	payload.SetNextType(NoNext)
	return nil
}

func (m *Message) PayloadCount() int { return m.chain.Len() }

func (m *Message) PayloadIterator() *ChainIterator { return m.chain.Iterator() }

// Generate encodes the message onto its packet and returns a clone of the
// packet. The exchange type, the packet endpoints and the SA identity must
// all be configured first.
func (m *Message) Generate() (*Packet, error) {
	if m.exchangeType == ExchangeTypeUndefined {
		return nil, fmt.Errorf("exchange type is not defined: %w", ErrInvalidState)
	}
	if m.packet == nil || m.packet.Source == nil || m.packet.Destination == nil {
		return nil, fmt.Errorf("address of packet not defined: %w", ErrInvalidState)
	}
	if m.saID == nil {
		return nil, fmt.Errorf("no SA identity bound to message: %w", ErrInvalidState)
	}

	m.log.Debugf("generating message: exchange type %s, request %t, message ID %d",
		ExchangeTypeName(m.exchangeType), m.isRequest, m.messageID)

	// re-derive the next-type links from chain order; the last payload
	// terminates the chain
	m.firstPayload = NoNext
	var previous Payload
	iterator := m.chain.Iterator()
	for payload, ok := iterator.Next(); ok; payload, ok = iterator.Next() {
		if previous == nil {
			m.firstPayload = payload.Type()
		} else {
			previous.SetNextType(payload.Type())
		}
		previous = payload
	}
	if previous != nil {
		previous.SetNextType(NoNext)
	}

	payloadBytes, err := m.chain.encode()
	if err != nil {
		return nil, fmt.Errorf("generate message failed: %w: %v", ErrCodecFailed, err)
	}

	header := NewHeader(m.saID.InitiatorSPI, m.saID.ResponderSPI, m.exchangeType,
		!m.isRequest, m.saID.Initiator, m.messageID, m.firstPayload, payloadBytes)

	data, err := header.Marshal()
	if err != nil {
		return nil, fmt.Errorf("generate message header failed: %w: %v", ErrCodecFailed, err)
	}

	m.packet.Data = data
	return m.packet.Clone(), nil
}

// ParseHeader decodes and verifies the fixed header of the wrapped packet
// and resets the message to the header's view. Any previously parsed
// payloads and SA identity are discarded.
func (m *Message) ParseHeader() error {
	if m.packet == nil {
		return fmt.Errorf("no packet bound to message: %w", ErrInvalidState)
	}

	m.chain.Reset()
	m.firstPayload = NoNext
	m.body = nil

	header, err := ParseHeader(m.packet.Data)
	if err != nil {
		return fmt.Errorf("parse message header failed: %w: %v", ErrCodecFailed, err)
	}
	if err := header.Verify(); err != nil {
		return fmt.Errorf("message header verification failed: %w: %v", ErrVerifyFailed, err)
	}

	m.saID = NewSaID(header.InitiatorSPI, header.ResponderSPI, header.IsInitiator())
	m.majorVersion = header.MajorVersion
	m.minorVersion = header.MinorVersion
	m.exchangeType = header.ExchangeType
	m.isRequest = !header.IsResponse()
	m.messageID = header.MessageID
	m.firstPayload = header.NextPayload
	m.body = header.PayloadBytes

	m.log.Debugf("parsed header: exchange type %s, request %t, message ID %d, first payload %s",
		ExchangeTypeName(m.exchangeType), m.isRequest, m.messageID, m.firstPayload)

	return nil
}

// ParseBody decodes the payloads announced by the parsed header into the
// chain and checks them against the occurrence rules of the exchange type.
// ParseHeader must have succeeded first.
func (m *Message) ParseBody() error {
	rules, err := PayloadRules(m.exchangeType, m.isRequest)
	if err != nil {
		return err
	}

	current := m.firstPayload
	data := m.body

	for current != NoNext {
		if ruleFor(rules, current) == nil {
			return fmt.Errorf("payload type %s not allowed in %s request %t: %w",
				current, ExchangeTypeName(m.exchangeType), m.isRequest, ErrNotSupported)
		}

		payload, rest, err := decodePayload(current, data)
		if err != nil {
			return fmt.Errorf("payload type %s could not be parsed: %w: %v", current, ErrCodecFailed, err)
		}

		if err := payload.Verify(); err != nil {
			return fmt.Errorf("payload type %s verification failed: %w: %v", current, ErrVerifyFailed, err)
		}

		next := payload.NextType()
		if err := m.chain.Append(payload); err != nil {
			return err
		}

		current = next
		data = rest
	}

	if len(data) > 0 {
		m.log.Warnf("%d trailing bytes after last payload", len(data))
	}

	return m.checkOccurrences(rules)
}

// checkOccurrences counts each rule's payload type over the whole chain. A
// count above the maximum is reported as soon as the scan reaches it, a
// count below the minimum only after the full scan.
func (m *Message) checkOccurrences(rules []PayloadRule) error {
	iterator := m.chain.Iterator()
	for i := range rules {
		rule := &rules[i]
		found := 0

		iterator.Reset()
		for payload, ok := iterator.Next(); ok; payload, ok = iterator.Next() {
			if payload.Type() != rule.Type {
				continue
			}
			found++
			if found > rule.MaxOccurrence {
				return fmt.Errorf("payload type %s occurs more than %d times: %w",
					rule.Type, rule.MaxOccurrence, ErrNotSupported)
			}
		}

		if found < rule.MinOccurrence {
			return fmt.Errorf("payload type %s occurs less than %d times: %w",
				rule.Type, rule.MinOccurrence, ErrNotSupported)
		}
	}

	return nil
}

// Destroy releases everything the message holds. The message may be reused
// afterwards as an empty outbound message.
func (m *Message) Destroy() {
	iterator := m.chain.Iterator()
	for payload, ok := iterator.Next(); ok; payload, ok = iterator.Next() {
		m.log.Debugf("destroying payload of type %s", payload.Type())
	}
	m.chain.Reset()
	m.firstPayload = NoNext
	m.exchangeType = ExchangeTypeUndefined
	m.isRequest = true
	m.messageID = 0
	m.saID = nil
	m.packet = nil
	m.body = nil
}
