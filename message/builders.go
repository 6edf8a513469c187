// SPDX-FileCopyrightText: 2026 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package message

// Utility: assign slice directly if empty, else append
func assignOrAppend(dst, src []byte) []byte {
	if len(dst) == 0 {
		return src
	}
	return append(dst, src...)
}

// Notification
func (m *Message) BuildNotification(
	protocolID uint8,
	notifyMessageType uint16,
	spi []byte,
	notificationData []byte,
) error {
	notification := new(Notification)
	notification.ProtocolID = protocolID
	notification.NotifyMessageType = notifyMessageType
	notification.SPI = assignOrAppend(nil, spi)
	notification.NotificationData = assignOrAppend(nil, notificationData)
	return m.AddPayload(notification)
}

// Certificate
func (m *Message) BuildCertificate(certificateEncode uint8, certificateData []byte) error {
	certificate := new(Certificate)
	certificate.CertificateEncoding = certificateEncode
	certificate.CertificateData = assignOrAppend(nil, certificateData)
	return m.AddPayload(certificate)
}

func (m *Message) BuildCertificateRequest(certificateEncode uint8, certificationAuthority []byte) error {
	certificateRequest := new(CertificateRequest)
	certificateRequest.CertificateEncoding = certificateEncode
	certificateRequest.CertificationAuthority = assignOrAppend(nil, certificationAuthority)
	return m.AddPayload(certificateRequest)
}

// Encrypted
func (m *Message) BuildEncrypted(nextPayload IKEPayloadType, encryptedData []byte) (*Encrypted, error) {
	encrypted := new(Encrypted)
	encrypted.NextPayload = nextPayload
	encrypted.EncryptedData = assignOrAppend(nil, encryptedData)
	if err := m.AddPayload(encrypted); err != nil {
		return nil, err
	}
	return encrypted, nil
}

// Key Exchange
func (m *Message) BuildKeyExchange(diffiehellmanGroup uint16, keyExchangeData []byte) error {
	keyExchange := new(KeyExchange)
	keyExchange.DiffieHellmanGroup = diffiehellmanGroup
	keyExchange.KeyExchangeData = assignOrAppend(nil, keyExchangeData)
	return m.AddPayload(keyExchange)
}

// Identification
func (m *Message) BuildIdentificationInitiator(idType uint8, idData []byte) error {
	identification := new(IdentificationInitiator)
	identification.IDType = idType
	identification.IDData = assignOrAppend(nil, idData)
	return m.AddPayload(identification)
}

func (m *Message) BuildIdentificationResponder(idType uint8, idData []byte) error {
	identification := new(IdentificationResponder)
	identification.IDType = idType
	identification.IDData = assignOrAppend(nil, idData)
	return m.AddPayload(identification)
}

// Authentication
func (m *Message) BuildAuthentication(authenticationMethod uint8, authenticationData []byte) error {
	authentication := new(Authentication)
	authentication.AuthenticationMethod = authenticationMethod
	authentication.AuthenticationData = assignOrAppend(nil, authenticationData)
	return m.AddPayload(authentication)
}

// Configuration
func (m *Message) BuildConfiguration(configurationType uint8) (*Configuration, error) {
	configuration := new(Configuration)
	configuration.ConfigurationType = configurationType
	if err := m.AddPayload(configuration); err != nil {
		return nil, err
	}
	return configuration, nil
}

func (container *ConfigurationAttributeContainer) Reset() {
	*container = nil
}

func (container *ConfigurationAttributeContainer) BuildConfigurationAttribute(
	attributeType uint16,
	attributeValue []byte,
) {
	configurationAttribute := new(IndividualConfigurationAttribute)
	configurationAttribute.Type = attributeType
	configurationAttribute.Value = assignOrAppend(nil, attributeValue)
	*container = append(*container, configurationAttribute)
}

// Nonce
func (m *Message) BuildNonce(nonceData []byte) error {
	nonce := new(Nonce)
	nonce.NonceData = assignOrAppend(nil, nonceData)
	return m.AddPayload(nonce)
}

// Traffic Selector
func (m *Message) BuildTrafficSelectorInitiator() (*TrafficSelectorInitiator, error) {
	tsInitiator := new(TrafficSelectorInitiator)
	if err := m.AddPayload(tsInitiator); err != nil {
		return nil, err
	}
	return tsInitiator, nil
}

func (m *Message) BuildTrafficSelectorResponder() (*TrafficSelectorResponder, error) {
	tsResponder := new(TrafficSelectorResponder)
	if err := m.AddPayload(tsResponder); err != nil {
		return nil, err
	}
	return tsResponder, nil
}

func (container *IndividualTrafficSelectorContainer) Reset() {
	*container = nil
}

func (container *IndividualTrafficSelectorContainer) BuildIndividualTrafficSelector(
	tsType uint8,
	ipProtocolID uint8,
	startPort uint16,
	endPort uint16,
	startAddr []byte,
	endAddr []byte,
) {
	ts := new(IndividualTrafficSelector)
	ts.TSType = tsType
	ts.IPProtocolID = ipProtocolID
	ts.StartPort = startPort
	ts.EndPort = endPort
	ts.StartAddress = assignOrAppend(nil, startAddr)
	ts.EndAddress = assignOrAppend(nil, endAddr)
	*container = append(*container, ts)
}

// Security Association
func (m *Message) BuildSecurityAssociation() (*SecurityAssociation, error) {
	sa := new(SecurityAssociation)
	if err := m.AddPayload(sa); err != nil {
		return nil, err
	}
	return sa, nil
}

func (container *ProposalContainer) Reset() {
	*container = nil
}

func (container *ProposalContainer) BuildProposal(proposalNumber uint8, protocolID uint8, spi []byte) *Proposal {
	proposal := new(Proposal)
	proposal.ProposalNumber = proposalNumber
	proposal.ProtocolID = protocolID
	proposal.SPI = assignOrAppend(nil, spi)
	*container = append(*container, proposal)
	return proposal
}

// Delete Payload
func (m *Message) BuildDeletePayload(protocolID uint8, spiSize uint8, numberOfSPI uint16, spis []uint32) error {
	deletePayload := new(Delete)
	deletePayload.ProtocolID = protocolID
	deletePayload.SPISize = spiSize
	deletePayload.NumberOfSPI = numberOfSPI
	deletePayload.SPIs = spis
	return m.AddPayload(deletePayload)
}

// Vendor ID
func (m *Message) BuildVendorID(vendorIDData []byte) error {
	vendorID := new(VendorID)
	vendorID.VendorIDData = assignOrAppend(nil, vendorIDData)
	return m.AddPayload(vendorID)
}

func (container *TransformContainer) Reset() {
	*container = nil
}

func (container *TransformContainer) BuildTransform(
	transformType uint8,
	transformID uint16,
	attributeType *uint16,
	attributeValue *uint16,
	variableLengthAttributeValue []byte,
) {
	transform := new(Transform)
	transform.TransformType = transformType
	transform.TransformID = transformID
	if attributeType != nil {
		transform.AttributePresent = true
		transform.AttributeType = *attributeType
		if attributeValue != nil {
			transform.AttributeFormat = AttributeFormatUseTV
			transform.AttributeValue = *attributeValue
		} else if len(variableLengthAttributeValue) != 0 {
			transform.AttributeFormat = AttributeFormatUseTLV
			transform.VariableLengthAttributeValue = assignOrAppend(nil, variableLengthAttributeValue)
		} else {
			return
		}
	} else {
		transform.AttributePresent = false
	}
	*container = append(*container, transform)
}

// EAP
func (m *Message) BuildEAP(code uint8, identifier uint8) (*EAP, error) {
	eap := new(EAP)
	eap.Code = code
	eap.Identifier = identifier
	if err := m.AddPayload(eap); err != nil {
		return nil, err
	}
	return eap, nil
}

func (m *Message) BuildEAPSuccess(identifier uint8) error {
	eap := new(EAP)
	eap.Code = EAPCodeSuccess
	eap.Identifier = identifier
	return m.AddPayload(eap)
}

func (m *Message) BuildEAPFailure(identifier uint8) error {
	eap := new(EAP)
	eap.Code = EAPCodeFailure
	eap.Identifier = identifier
	return m.AddPayload(eap)
}

func (container *EAPTypeDataContainer) BuildEAPExpanded(vendorID uint32, vendorType uint32, vendorData []byte) {
	eapExpanded := new(EAPExpanded)
	eapExpanded.VendorID = vendorID
	eapExpanded.VendorType = vendorType
	eapExpanded.VendorData = assignOrAppend(nil, vendorData)
	*container = append(*container, eapExpanded)
}
