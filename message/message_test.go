// SPDX-FileCopyrightText: 2026 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package message

import (
	"bytes"
	"errors"
	"net"
	"testing"
)

func testPacket(data []byte) *Packet {
	src := &net.UDPAddr{IP: net.ParseIP("192.168.1.100"), Port: 500}
	dst := &net.UDPAddr{IP: net.ParseIP("10.0.0.50"), Port: 500}
	return NewPacket(src, dst, data)
}

func testNonceData() []byte {
	nonceData := make([]byte, 32)
	for i := range nonceData {
		nonceData[i] = byte(i)
	}
	return nonceData
}

// buildSaInitRequest assembles a valid IKE_SA_INIT request carrying
// SA, KE and Nonce payloads.
func buildSaInitRequest(t *testing.T) *Message {
	t.Helper()

	m := NewMessage(nil)
	m.SetExchangeType(IKE_SA_INIT)
	m.SetRequest(true)
	m.SetMessageID(0)
	m.SetPacket(testPacket(nil))
	if err := m.SetSaID(NewSaID(0x1122334455667788, 0, true)); err != nil {
		t.Fatalf("SetSaID failed: %v", err)
	}

	sa, err := m.BuildSecurityAssociation()
	if err != nil {
		t.Fatalf("BuildSecurityAssociation failed: %v", err)
	}
	proposal := sa.Proposals.BuildProposal(1, TypeIKE, nil)
	attrType := uint16(AttributeTypeKeyLength)
	keyLength := uint16(256)
	proposal.EncryptionAlgorithm.BuildTransform(TypeEncryptionAlgorithm, ENCR_AES_CBC, &attrType, &keyLength, nil)
	proposal.PseudorandomFunction.BuildTransform(TypePseudorandomFunction, PRF_HMAC_SHA2_256, nil, nil, nil)
	proposal.IntegrityAlgorithm.BuildTransform(TypeIntegrityAlgorithm, AUTH_HMAC_SHA2_256_128, nil, nil, nil)
	proposal.DiffieHellmanGroup.BuildTransform(TypeDiffieHellmanGroup, DH_2048_BIT_MODP, nil, nil, nil)

	keyData := make([]byte, 256)
	keyData[0] = 0x01
	if err := m.BuildKeyExchange(DH_2048_BIT_MODP, keyData); err != nil {
		t.Fatalf("BuildKeyExchange failed: %v", err)
	}

	if err := m.BuildNonce(testNonceData()); err != nil {
		t.Fatalf("BuildNonce failed: %v", err)
	}

	return m
}

func TestAddPayloadMaintainsChainLinks(t *testing.T) {
	m := NewMessage(nil)

	if m.FirstPayloadType() != NoNext {
		t.Errorf("Expected first payload NoNext on empty message, got %s", m.FirstPayloadType())
	}

	nonce := &Nonce{NonceData: testNonceData()}
	if err := m.AddPayload(nonce); err != nil {
		t.Fatalf("AddPayload failed: %v", err)
	}
	if m.FirstPayloadType() != TypeNiNr {
		t.Errorf("Expected first payload Ni/Nr, got %s", m.FirstPayloadType())
	}
	if nonce.NextType() != NoNext {
		t.Errorf("Expected last payload to link to NoNext, got %s", nonce.NextType())
	}

	vendorID := &VendorID{VendorIDData: []byte("test vendor")}
	if err := m.AddPayload(vendorID); err != nil {
		t.Fatalf("AddPayload failed: %v", err)
	}
	if m.FirstPayloadType() != TypeNiNr {
		t.Errorf("First payload changed after second append: %s", m.FirstPayloadType())
	}
	if nonce.NextType() != TypeV {
		t.Errorf("Expected first payload to link to V, got %s", nonce.NextType())
	}
	if vendorID.NextType() != NoNext {
		t.Errorf("Expected last payload to link to NoNext, got %s", vendorID.NextType())
	}
	if m.PayloadCount() != 2 {
		t.Errorf("Expected 2 payloads, got %d", m.PayloadCount())
	}
}

func TestGenerateWithoutExchangeType(t *testing.T) {
	m := NewMessage(nil)
	m.SetPacket(testPacket(nil))
	if err := m.SetSaID(NewSaID(1, 2, true)); err != nil {
		t.Fatalf("SetSaID failed: %v", err)
	}

	_, err := m.Generate()
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("Expected ErrInvalidState for undefined exchange type, got %v", err)
	}
}

func TestGenerateWithoutEndpoints(t *testing.T) {
	m := NewMessage(nil)
	m.SetExchangeType(INFORMATIONAL)
	if err := m.SetSaID(NewSaID(1, 2, true)); err != nil {
		t.Fatalf("SetSaID failed: %v", err)
	}

	_, err := m.Generate()
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("Expected ErrInvalidState for missing endpoints, got %v", err)
	}

	m.SetPacket(NewPacket(nil, nil, nil))
	_, err = m.Generate()
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("Expected ErrInvalidState for nil endpoint addresses, got %v", err)
	}
}

func TestGenerateWithoutSaID(t *testing.T) {
	m := NewMessage(nil)
	m.SetExchangeType(INFORMATIONAL)
	m.SetPacket(testPacket(nil))

	_, err := m.Generate()
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("Expected ErrInvalidState for missing SA identity, got %v", err)
	}
}

func TestGenerateReturnsPacketClone(t *testing.T) {
	m := buildSaInitRequest(t)

	packet, err := m.Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if packet == m.Packet() {
		t.Error("Generate should return a clone, not the bound packet")
	}
	if !bytes.Equal(packet.Data, m.Packet().Data) {
		t.Error("Clone data differs from bound packet data")
	}

	packet.Data[0] ^= 0xff
	if bytes.Equal(packet.Data, m.Packet().Data) {
		t.Error("Modifying the clone changed the bound packet")
	}
}

func TestGenerateParseRoundTrip(t *testing.T) {
	m := buildSaInitRequest(t)

	packet, err := m.Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	parsed := NewMessageFromPacket(packet, nil)
	if err := parsed.ParseHeader(); err != nil {
		t.Fatalf("ParseHeader failed: %v", err)
	}

	if parsed.ExchangeType() != IKE_SA_INIT {
		t.Errorf("Expected exchange type IKE_SA_INIT, got %s", ExchangeTypeName(parsed.ExchangeType()))
	}
	if !parsed.IsRequest() {
		t.Error("Expected a request")
	}
	if parsed.MessageID() != 0 {
		t.Errorf("Expected message ID 0, got %d", parsed.MessageID())
	}
	if parsed.MajorVersion() != 2 || parsed.MinorVersion() != 0 {
		t.Errorf("Expected version 2.0, got %d.%d", parsed.MajorVersion(), parsed.MinorVersion())
	}
	if parsed.FirstPayloadType() != TypeSA {
		t.Errorf("Expected first payload SA, got %s", parsed.FirstPayloadType())
	}

	saID, err := parsed.SaID()
	if err != nil {
		t.Fatalf("SaID failed: %v", err)
	}
	if saID.InitiatorSPI != 0x1122334455667788 {
		t.Errorf("Initiator SPI mismatch: got %016x", saID.InitiatorSPI)
	}
	if saID.ResponderSPI != 0 {
		t.Errorf("Responder SPI mismatch: got %016x", saID.ResponderSPI)
	}
	if !saID.Initiator {
		t.Error("Expected initiator flag set")
	}

	if err := parsed.ParseBody(); err != nil {
		t.Fatalf("ParseBody failed: %v", err)
	}
	if parsed.PayloadCount() != 3 {
		t.Fatalf("Expected 3 payloads, got %d", parsed.PayloadCount())
	}

	expectedTypes := []IKEPayloadType{TypeSA, TypeKE, TypeNiNr}
	iterator := parsed.PayloadIterator()
	for i, expected := range expectedTypes {
		payload, ok := iterator.Next()
		if !ok {
			t.Fatalf("Iterator exhausted at position %d", i)
		}
		if payload.Type() != expected {
			t.Errorf("Payload %d: expected %s, got %s", i, expected, payload.Type())
		}
	}
	if _, ok := iterator.Next(); ok {
		t.Error("Iterator returned a payload past the end")
	}
}

func TestParseBodyPayloadContent(t *testing.T) {
	m := buildSaInitRequest(t)

	packet, err := m.Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	parsed := NewMessageFromPacket(packet, nil)
	if err := parsed.ParseHeader(); err != nil {
		t.Fatalf("ParseHeader failed: %v", err)
	}
	if err := parsed.ParseBody(); err != nil {
		t.Fatalf("ParseBody failed: %v", err)
	}

	iterator := parsed.PayloadIterator()

	payload, _ := iterator.Next()
	sa, ok := payload.(*SecurityAssociation)
	if !ok {
		t.Fatalf("Expected *SecurityAssociation, got %T", payload)
	}
	if len(sa.Proposals) != 1 {
		t.Fatalf("Expected 1 proposal, got %d", len(sa.Proposals))
	}
	proposal := sa.Proposals[0]
	if proposal.ProposalNumber != 1 || proposal.ProtocolID != TypeIKE {
		t.Errorf("Proposal header mismatch: number %d protocol %d", proposal.ProposalNumber, proposal.ProtocolID)
	}
	if len(proposal.EncryptionAlgorithm) != 1 {
		t.Fatalf("Expected 1 encryption transform, got %d", len(proposal.EncryptionAlgorithm))
	}
	encr := proposal.EncryptionAlgorithm[0]
	if encr.TransformID != ENCR_AES_CBC {
		t.Errorf("Expected ENCR_AES_CBC, got %d", encr.TransformID)
	}
	if !encr.AttributePresent || encr.AttributeType != AttributeTypeKeyLength || encr.AttributeValue != 256 {
		t.Errorf("Key length attribute not preserved: %+v", encr)
	}
	if len(proposal.DiffieHellmanGroup) != 1 {
		t.Errorf("Expected 1 DH transform, got %d", len(proposal.DiffieHellmanGroup))
	}

	payload, _ = iterator.Next()
	ke, ok := payload.(*KeyExchange)
	if !ok {
		t.Fatalf("Expected *KeyExchange, got %T", payload)
	}
	if ke.DiffieHellmanGroup != DH_2048_BIT_MODP {
		t.Errorf("Expected DH group %d, got %d", DH_2048_BIT_MODP, ke.DiffieHellmanGroup)
	}
	if len(ke.KeyExchangeData) != 256 {
		t.Errorf("Expected 256 bytes of key data, got %d", len(ke.KeyExchangeData))
	}

	payload, _ = iterator.Next()
	nonce, ok := payload.(*Nonce)
	if !ok {
		t.Fatalf("Expected *Nonce, got %T", payload)
	}
	if !bytes.Equal(nonce.NonceData, testNonceData()) {
		t.Error("Nonce data not preserved through round trip")
	}
}

func TestParseBodyRejectsDuplicateSA(t *testing.T) {
	m := buildSaInitRequest(t)

	// second SA exceeds the allowed occurrence count
	sa, err := m.BuildSecurityAssociation()
	if err != nil {
		t.Fatalf("BuildSecurityAssociation failed: %v", err)
	}
	proposal := sa.Proposals.BuildProposal(2, TypeIKE, nil)
	proposal.PseudorandomFunction.BuildTransform(TypePseudorandomFunction, PRF_HMAC_SHA1, nil, nil, nil)

	packet, err := m.Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	parsed := NewMessageFromPacket(packet, nil)
	if err := parsed.ParseHeader(); err != nil {
		t.Fatalf("ParseHeader failed: %v", err)
	}
	err = parsed.ParseBody()
	if !errors.Is(err, ErrNotSupported) {
		t.Errorf("Expected ErrNotSupported for duplicate SA, got %v", err)
	}
}

func TestParseBodyRejectsMissingMandatoryPayload(t *testing.T) {
	m := NewMessage(nil)
	m.SetExchangeType(IKE_SA_INIT)
	m.SetRequest(true)
	m.SetPacket(testPacket(nil))
	if err := m.SetSaID(NewSaID(1, 0, true)); err != nil {
		t.Fatalf("SetSaID failed: %v", err)
	}

	keyData := make([]byte, 128)
	if err := m.BuildKeyExchange(DH_1024_BIT_MODP, keyData); err != nil {
		t.Fatalf("BuildKeyExchange failed: %v", err)
	}
	if err := m.BuildNonce(testNonceData()); err != nil {
		t.Fatalf("BuildNonce failed: %v", err)
	}

	packet, err := m.Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	parsed := NewMessageFromPacket(packet, nil)
	if err := parsed.ParseHeader(); err != nil {
		t.Fatalf("ParseHeader failed: %v", err)
	}
	err = parsed.ParseBody()
	if !errors.Is(err, ErrNotSupported) {
		t.Errorf("Expected ErrNotSupported for missing SA, got %v", err)
	}
}

func TestParseBodyRejectsDisallowedPayloadType(t *testing.T) {
	m := NewMessage(nil)
	m.SetExchangeType(INFORMATIONAL)
	m.SetRequest(true)
	m.SetPacket(testPacket(nil))
	if err := m.SetSaID(NewSaID(1, 2, true)); err != nil {
		t.Fatalf("SetSaID failed: %v", err)
	}

	// key exchange payload has no place in an INFORMATIONAL exchange
	keyData := make([]byte, 128)
	if err := m.BuildKeyExchange(DH_1024_BIT_MODP, keyData); err != nil {
		t.Fatalf("BuildKeyExchange failed: %v", err)
	}

	packet, err := m.Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	parsed := NewMessageFromPacket(packet, nil)
	if err := parsed.ParseHeader(); err != nil {
		t.Fatalf("ParseHeader failed: %v", err)
	}
	err = parsed.ParseBody()
	if !errors.Is(err, ErrNotSupported) {
		t.Errorf("Expected ErrNotSupported for disallowed payload type, got %v", err)
	}
}

func TestParseBodyWithoutRules(t *testing.T) {
	m := NewMessage(nil)
	err := m.ParseBody()
	if !errors.Is(err, ErrRuleNotFound) {
		t.Errorf("Expected ErrRuleNotFound for undefined exchange type, got %v", err)
	}
}

func TestParseHeaderWithoutPacket(t *testing.T) {
	m := NewMessage(nil)
	err := m.ParseHeader()
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("Expected ErrInvalidState for missing packet, got %v", err)
	}
}

func TestParseHeaderRejectsBadVersion(t *testing.T) {
	m := buildSaInitRequest(t)
	packet, err := m.Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// major version 1
	packet.Data[17] = 0x10

	parsed := NewMessageFromPacket(packet, nil)
	err = parsed.ParseHeader()
	if !errors.Is(err, ErrVerifyFailed) {
		t.Errorf("Expected ErrVerifyFailed for major version 1, got %v", err)
	}
}

func TestParseHeaderRejectsTruncatedData(t *testing.T) {
	parsed := NewMessageFromPacket(testPacket([]byte{0x01, 0x02, 0x03}), nil)
	err := parsed.ParseHeader()
	if !errors.Is(err, ErrCodecFailed) {
		t.Errorf("Expected ErrCodecFailed for truncated header, got %v", err)
	}
}

func TestParseHeaderRejectsUnknownExchangeType(t *testing.T) {
	m := buildSaInitRequest(t)
	packet, err := m.Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	packet.Data[18] = 99

	parsed := NewMessageFromPacket(packet, nil)
	err = parsed.ParseHeader()
	if !errors.Is(err, ErrVerifyFailed) {
		t.Errorf("Expected ErrVerifyFailed for unknown exchange type, got %v", err)
	}
}

func TestResponseFlagRoundTrip(t *testing.T) {
	m := buildSaInitRequest(t)
	m.SetRequest(false)
	if err := m.SetSaID(NewSaID(0x1122334455667788, 0x8877665544332211, false)); err != nil {
		t.Fatalf("SetSaID failed: %v", err)
	}

	packet, err := m.Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	parsed := NewMessageFromPacket(packet, nil)
	if err := parsed.ParseHeader(); err != nil {
		t.Fatalf("ParseHeader failed: %v", err)
	}
	if parsed.IsRequest() {
		t.Error("Expected a response")
	}
	saID, err := parsed.SaID()
	if err != nil {
		t.Fatalf("SaID failed: %v", err)
	}
	if saID.Initiator {
		t.Error("Expected initiator flag cleared")
	}
}

func TestSaIDCloneSemantics(t *testing.T) {
	m := NewMessage(nil)

	if _, err := m.SaID(); !errors.Is(err, ErrSaIDUnavailable) {
		t.Errorf("Expected ErrSaIDUnavailable on fresh message, got %v", err)
	}

	if err := m.SetSaID(nil); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Expected ErrInvalidState for nil SA identity, got %v", err)
	}

	original := NewSaID(1, 2, true)
	if err := m.SetSaID(original); err != nil {
		t.Fatalf("SetSaID failed: %v", err)
	}

	// mutating the caller's copy must not affect the message
	original.InitiatorSPI = 99

	stored, err := m.SaID()
	if err != nil {
		t.Fatalf("SaID failed: %v", err)
	}
	if stored.InitiatorSPI != 1 {
		t.Errorf("Message SA identity affected by caller mutation: %+v", stored)
	}

	// mutating the returned copy must not affect the message either
	stored.ResponderSPI = 77
	again, err := m.SaID()
	if err != nil {
		t.Fatalf("SaID failed: %v", err)
	}
	if again.ResponderSPI != 2 {
		t.Errorf("Message SA identity affected by returned copy mutation: %+v", again)
	}

	if !again.Equal(NewSaID(1, 2, true)) {
		t.Errorf("Equal mismatch for identical SA identities")
	}
	if again.Equal(NewSaID(1, 2, false)) {
		t.Error("Equal should distinguish initiator role")
	}
}

func TestEncryptedPayloadKeepsInnerNextType(t *testing.T) {
	m := NewMessage(nil)
	m.SetExchangeType(IKE_AUTH)
	m.SetRequest(true)
	m.SetMessageID(1)
	m.SetPacket(testPacket(nil))
	if err := m.SetSaID(NewSaID(1, 2, true)); err != nil {
		t.Fatalf("SetSaID failed: %v", err)
	}

	encryptedData := make([]byte, 64)
	if _, err := m.BuildEncrypted(TypeIDi, encryptedData); err != nil {
		t.Fatalf("BuildEncrypted failed: %v", err)
	}

	packet, err := m.Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// generic payload header of the SK payload starts right after the
	// message header, and its next-payload field must name the payload
	// inside the encrypted blob
	if packet.Data[IKE_HEADER_LEN] != byte(TypeIDi) {
		t.Errorf("Expected SK next-payload field %d, got %d", TypeIDi, packet.Data[IKE_HEADER_LEN])
	}

	parsed := NewMessageFromPacket(packet, nil)
	if err := parsed.ParseHeader(); err != nil {
		t.Fatalf("ParseHeader failed: %v", err)
	}
	if err := parsed.ParseBody(); err != nil {
		t.Fatalf("ParseBody failed: %v", err)
	}
	if parsed.PayloadCount() != 1 {
		t.Fatalf("Expected 1 payload, got %d", parsed.PayloadCount())
	}

	payload, _ := parsed.PayloadIterator().Next()
	encrypted, ok := payload.(*Encrypted)
	if !ok {
		t.Fatalf("Expected *Encrypted, got %T", payload)
	}
	if encrypted.NextPayload != TypeIDi {
		t.Errorf("Expected inner next-payload IDi, got %s", encrypted.NextPayload)
	}
	if encrypted.NextType() != NoNext {
		t.Errorf("SK payload must terminate the outer chain, got %s", encrypted.NextType())
	}
}

func TestParseHeaderResetsPreviousState(t *testing.T) {
	m := buildSaInitRequest(t)
	packet, err := m.Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	parsed := NewMessageFromPacket(packet, nil)
	if err := parsed.ParseHeader(); err != nil {
		t.Fatalf("ParseHeader failed: %v", err)
	}
	if err := parsed.ParseBody(); err != nil {
		t.Fatalf("ParseBody failed: %v", err)
	}
	if parsed.PayloadCount() != 3 {
		t.Fatalf("Expected 3 payloads, got %d", parsed.PayloadCount())
	}

	// parsing the header again discards the previously decoded payloads
	if err := parsed.ParseHeader(); err != nil {
		t.Fatalf("Second ParseHeader failed: %v", err)
	}
	if parsed.PayloadCount() != 0 {
		t.Errorf("Expected chain reset after re-parse, got %d payloads", parsed.PayloadCount())
	}
	if err := parsed.ParseBody(); err != nil {
		t.Fatalf("Second ParseBody failed: %v", err)
	}
	if parsed.PayloadCount() != 3 {
		t.Errorf("Expected 3 payloads after re-parse, got %d", parsed.PayloadCount())
	}
}

// rawDatagram frames a single payload body into a complete datagram.
func rawDatagram(t *testing.T, exchangeType uint8, payloadType IKEPayloadType, body []byte) *Packet {
	t.Helper()

	payload := make([]byte, payloadHeaderLen)
	payload = append(payload, body...)
	payload[2] = byte(len(payload) >> 8)
	payload[3] = byte(len(payload))

	header := NewHeader(1, 0, exchangeType, false, true, 0, payloadType, payload)
	data, err := header.Marshal()
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	return testPacket(data)
}

func TestParseBodyRejectsMalformedTransform(t *testing.T) {
	// SA proposal carrying a 9-byte transform, too short for the attribute
	// bytes its length implies
	saBody := []byte{
		0x00, 0x00, 0x00, 0x11, 0x01, TypeIKE, 0x00, 0x01,
		0x00, 0x00, 0x00, 0x09, TypeEncryptionAlgorithm, 0x00, 0x00, ENCR_AES_CBC,
		0xff,
	}

	parsed := NewMessageFromPacket(rawDatagram(t, IKE_SA_INIT, TypeSA, saBody), nil)
	if err := parsed.ParseHeader(); err != nil {
		t.Fatalf("ParseHeader failed: %v", err)
	}
	err := parsed.ParseBody()
	if !errors.Is(err, ErrCodecFailed) {
		t.Errorf("Expected ErrCodecFailed for malformed transform, got %v", err)
	}
}

func TestParseBodyRejectsMalformedDelete(t *testing.T) {
	// delete payload announcing a 1-byte SPI size
	deleteBody := []byte{TypeESP, 0x01, 0x00, 0x01, 0xaa}

	parsed := NewMessageFromPacket(rawDatagram(t, INFORMATIONAL, TypeD, deleteBody), nil)
	if err := parsed.ParseHeader(); err != nil {
		t.Fatalf("ParseHeader failed: %v", err)
	}
	err := parsed.ParseBody()
	if !errors.Is(err, ErrCodecFailed) {
		t.Errorf("Expected ErrCodecFailed for malformed delete, got %v", err)
	}
}

func TestDestroyReleasesState(t *testing.T) {
	m := buildSaInitRequest(t)
	if _, err := m.Generate(); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	m.Destroy()

	if m.PayloadCount() != 0 {
		t.Errorf("Expected empty chain after Destroy, got %d payloads", m.PayloadCount())
	}
	if m.FirstPayloadType() != NoNext {
		t.Errorf("Expected first payload NoNext after Destroy, got %s", m.FirstPayloadType())
	}
	if m.ExchangeType() != ExchangeTypeUndefined {
		t.Errorf("Expected undefined exchange type after Destroy, got %s", ExchangeTypeName(m.ExchangeType()))
	}
	if m.Packet() != nil {
		t.Error("Expected packet released after Destroy")
	}
	if _, err := m.SaID(); !errors.Is(err, ErrSaIDUnavailable) {
		t.Errorf("Expected ErrSaIDUnavailable after Destroy, got %v", err)
	}

	// destroyed message is reusable as an empty outbound message
	if err := m.BuildNonce(testNonceData()); err != nil {
		t.Fatalf("BuildNonce after Destroy failed: %v", err)
	}
	if m.PayloadCount() != 1 {
		t.Errorf("Expected 1 payload after reuse, got %d", m.PayloadCount())
	}
}

func BenchmarkGenerateParseRoundTrip(b *testing.B) {
	m := NewMessage(nil)
	m.SetExchangeType(IKE_SA_INIT)
	m.SetRequest(true)
	m.SetPacket(testPacket(nil))
	if err := m.SetSaID(NewSaID(0x1122334455667788, 0, true)); err != nil {
		b.Fatal(err)
	}
	sa, err := m.BuildSecurityAssociation()
	if err != nil {
		b.Fatal(err)
	}
	proposal := sa.Proposals.BuildProposal(1, TypeIKE, nil)
	proposal.PseudorandomFunction.BuildTransform(TypePseudorandomFunction, PRF_HMAC_SHA2_256, nil, nil, nil)
	if err := m.BuildKeyExchange(DH_2048_BIT_MODP, make([]byte, 256)); err != nil {
		b.Fatal(err)
	}
	if err := m.BuildNonce(testNonceData()); err != nil {
		b.Fatal(err)
	}

	for b.Loop() {
		packet, err := m.Generate()
		if err != nil {
			b.Fatal(err)
		}
		parsed := NewMessageFromPacket(packet, nil)
		if err := parsed.ParseHeader(); err != nil {
			b.Fatal(err)
		}
		if err := parsed.ParseBody(); err != nil {
			b.Fatal(err)
		}
	}
}
