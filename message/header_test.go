// SPDX-FileCopyrightText: 2026 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package message

import (
	"testing"
)

func TestHeaderMarshalParseRoundTrip(t *testing.T) {
	payloadBytes := []byte{0x01, 0x02, 0x03, 0x04}
	header := NewHeader(0x1122334455667788, 0x99aabbccddeeff00,
		IKE_AUTH, true, false, 7, TypeSK, payloadBytes)

	data, err := header.Marshal()
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if len(data) != IKE_HEADER_LEN+len(payloadBytes) {
		t.Fatalf("Expected %d bytes, got %d", IKE_HEADER_LEN+len(payloadBytes), len(data))
	}

	parsed, err := ParseHeader(data)
	if err != nil {
		t.Fatalf("ParseHeader failed: %v", err)
	}

	if parsed.InitiatorSPI != header.InitiatorSPI {
		t.Errorf("Initiator SPI mismatch: %016x", parsed.InitiatorSPI)
	}
	if parsed.ResponderSPI != header.ResponderSPI {
		t.Errorf("Responder SPI mismatch: %016x", parsed.ResponderSPI)
	}
	if parsed.MajorVersion != 2 || parsed.MinorVersion != 0 {
		t.Errorf("Version mismatch: %d.%d", parsed.MajorVersion, parsed.MinorVersion)
	}
	if parsed.ExchangeType != IKE_AUTH {
		t.Errorf("Exchange type mismatch: %d", parsed.ExchangeType)
	}
	if !parsed.IsResponse() {
		t.Error("Response flag lost")
	}
	if parsed.IsInitiator() {
		t.Error("Initiator flag set unexpectedly")
	}
	if parsed.MessageID != 7 {
		t.Errorf("Message ID mismatch: %d", parsed.MessageID)
	}
	if parsed.NextPayload != TypeSK {
		t.Errorf("Next payload mismatch: %s", parsed.NextPayload)
	}
	if len(parsed.PayloadBytes) != len(payloadBytes) {
		t.Errorf("Payload bytes length mismatch: %d", len(parsed.PayloadBytes))
	}
}

func TestParseHeaderTooShort(t *testing.T) {
	if _, err := ParseHeader(make([]byte, IKE_HEADER_LEN-1)); err == nil {
		t.Error("Expected error for truncated header, got nil")
	}
}

func TestParseHeaderLengthMismatch(t *testing.T) {
	header := NewHeader(1, 2, INFORMATIONAL, false, true, 0, NoNext, []byte{0xaa, 0xbb})
	data, err := header.Marshal()
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	// announced length larger than the datagram
	if _, err := ParseHeader(data[:len(data)-1]); err == nil {
		t.Error("Expected error for announced length beyond datagram, got nil")
	}
}

func TestHeaderVerify(t *testing.T) {
	header := NewHeader(1, 2, IKE_SA_INIT, false, true, 0, NoNext, nil)
	if err := header.Verify(); err != nil {
		t.Errorf("Verify failed on valid header: %v", err)
	}

	header.MajorVersion = 1
	if err := header.Verify(); err == nil {
		t.Error("Expected error for major version 1, got nil")
	}

	header.MajorVersion = 2
	header.ExchangeType = 5
	if err := header.Verify(); err == nil {
		t.Error("Expected error for unknown exchange type, got nil")
	}
}
