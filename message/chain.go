// SPDX-FileCopyrightText: 2026 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package message

import "fmt"

// maxChainPayloads caps the number of payloads one message may carry. The
// cap bounds the decode loop on hostile input and gives Append a defined
// failure condition.
const maxChainPayloads = 64

// Payload is implemented by every concrete IKE payload kind. The marshal and
// unmarshal methods are unexported so the set of payload kinds stays closed
// within this package.
type Payload interface {
	// Type specifies the IKE payload type
	Type() IKEPayloadType

	// NextType reports the type of the payload following this one on the
	// wire, NoNext for the last payload
	NextType() IKEPayloadType

	// SetNextType updates the next-payload chaining field
	SetNextType(IKEPayloadType)

	// Verify checks the payload's structural validity independent of the
	// message grammar
	Verify() error

	// Called by encodePayload() or decodePayload()
	marshal() ([]byte, error)
	unmarshal(rawData []byte) error
}

// payloadBase carries the next-payload chaining field shared by all payload
// kinds.
type payloadBase struct {
	next IKEPayloadType
}

func (b *payloadBase) NextType() IKEPayloadType { return b.next }

func (b *payloadBase) SetNextType(t IKEPayloadType) { b.next = t }

// PayloadChain is the ordered sequence of payloads belonging to one message.
// Insertion order is wire order. The chain exclusively owns each payload
// once appended.
type PayloadChain struct {
	elements []Payload
}

func (c *PayloadChain) Len() int {
	return len(c.elements)
}

// Last returns the most recently appended payload, nil on an empty chain.
func (c *PayloadChain) Last() Payload {
	if len(c.elements) == 0 {
		return nil
	}
	return c.elements[len(c.elements)-1]
}

// Append takes ownership of the payload. On failure the payload remains the
// caller's responsibility.
func (c *PayloadChain) Append(p Payload) error {
	if len(c.elements) >= maxChainPayloads {
		return fmt.Errorf("%w: %d payloads", ErrChainFull, len(c.elements))
	}
	c.elements = append(c.elements, p)
	return nil
}

// Reset drops every payload in the chain.
func (c *PayloadChain) Reset() {
	c.elements = nil
}

// Iterator returns a restartable, non-owning view over the chain in
// insertion order.
func (c *PayloadChain) Iterator() *ChainIterator {
	return &ChainIterator{chain: c}
}

// encode serializes every payload in chain order, honoring the next-type
// link recorded on each payload.
func (c *PayloadChain) encode() ([]byte, error) {
	var out []byte
	for _, p := range c.elements {
		data, err := encodePayload(p)
		if err != nil {
			return nil, fmt.Errorf("encode payload of type %s: %w", p.Type(), err)
		}
		out = append(out, data...)
	}
	return out, nil
}

// ChainIterator walks a PayloadChain in insertion order. It does not own the
// payloads it yields.
type ChainIterator struct {
	chain *PayloadChain
	pos   int
}

// Next returns the next payload, or false when the chain is exhausted.
func (it *ChainIterator) Next() (Payload, bool) {
	if it.pos >= len(it.chain.elements) {
		return nil, false
	}
	p := it.chain.elements[it.pos]
	it.pos++
	return p, true
}

// Reset restarts the iteration from the first payload.
func (it *ChainIterator) Reset() {
	it.pos = 0
}
