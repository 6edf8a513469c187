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

	"github.com/omec-project/ike/logger"
)

// Definition of Security Association

var _ Payload = &SecurityAssociation{}

type SecurityAssociation struct {
	payloadBase
	Proposals ProposalContainer
}

type ProposalContainer []*Proposal

type Proposal struct {
	ProposalNumber          uint8
	ProtocolID              uint8
	SPI                     []byte
	EncryptionAlgorithm     TransformContainer
	PseudorandomFunction    TransformContainer
	IntegrityAlgorithm      TransformContainer
	DiffieHellmanGroup      TransformContainer
	ExtendedSequenceNumbers TransformContainer
}

type TransformContainer []*Transform

type Transform struct {
	TransformType                uint8
	TransformID                  uint16
	AttributePresent             bool
	AttributeFormat              uint8
	AttributeType                uint16
	AttributeValue               uint16
	VariableLengthAttributeValue []byte
}

func (p *Proposal) transforms() []*Transform {
	var transformList []*Transform
	transformList = append(transformList, p.EncryptionAlgorithm...)
	transformList = append(transformList, p.PseudorandomFunction...)
	transformList = append(transformList, p.IntegrityAlgorithm...)
	transformList = append(transformList, p.DiffieHellmanGroup...)
	transformList = append(transformList, p.ExtendedSequenceNumbers...)
	return transformList
}

func (securityAssociation *SecurityAssociation) Type() IKEPayloadType { return TypeSA }

func (securityAssociation *SecurityAssociation) Verify() error {
	if len(securityAssociation.Proposals) == 0 {
		return errors.New("security association contains no proposal")
	}
	for _, proposal := range securityAssociation.Proposals {
		if len(proposal.transforms()) == 0 {
			return fmt.Errorf("proposal %d contains no transform", proposal.ProposalNumber)
		}
	}
	return nil
}

func (securityAssociation *SecurityAssociation) marshal() ([]byte, error) {
	securityAssociationData := make([]byte, 0)

	for proposalIndex, proposal := range securityAssociation.Proposals {
		proposalData := make([]byte, 8)

		if (proposalIndex + 1) < len(securityAssociation.Proposals) {
			proposalData[0] = 2
		} else {
			proposalData[0] = 0
		}

		proposalData[4] = proposal.ProposalNumber
		proposalData[5] = proposal.ProtocolID

		numberofSPI := len(proposal.SPI)
		if numberofSPI > math.MaxUint8 {
			return nil, fmt.Errorf("proposal: too many SPI: %d", numberofSPI)
		}
		proposalData[6] = uint8(numberofSPI)
		if len(proposal.SPI) > 0 {
			proposalData = append(proposalData, proposal.SPI...)
		}

		transformList := proposal.transforms()
		if len(transformList) == 0 {
			return nil, errors.New("one proposal has no any transform")
		}

		transformListCount := len(transformList)
		if transformListCount > math.MaxUint8 {
			return nil, fmt.Errorf("transform: too many transform: %d", transformListCount)
		}
		proposalData[7] = uint8(transformListCount)

		proposalTransformData := make([]byte, 0)

		for transformIndex, transform := range transformList {
			transformData := make([]byte, 8)

			if (transformIndex + 1) < len(transformList) {
				transformData[0] = 3
			} else {
				transformData[0] = 0
			}

			transformData[4] = transform.TransformType
			binary.BigEndian.PutUint16(transformData[6:8], transform.TransformID)

			if transform.AttributePresent {
				attributeData := make([]byte, 4)
				attributeFormatAndType := ((uint16(transform.AttributeFormat) & 0x1) << 15) | transform.AttributeType
				binary.BigEndian.PutUint16(attributeData[0:2], attributeFormatAndType)

				if transform.AttributeFormat == AttributeFormatUseTLV {
					if len(transform.VariableLengthAttributeValue) == 0 {
						return nil, errors.New("attribute of one transform not specified")
					}
					variableLen := len(transform.VariableLengthAttributeValue)
					if variableLen > math.MaxUint16 {
						return nil, fmt.Errorf("variable length attribute value exceeds uint16 limit: %d", variableLen)
					}
					binary.BigEndian.PutUint16(attributeData[2:4], uint16(variableLen))
					attributeData = append(attributeData, transform.VariableLengthAttributeValue...)
				} else {
					binary.BigEndian.PutUint16(attributeData[2:4], transform.AttributeValue)
				}

				transformData = append(transformData, attributeData...)
			}
			transformDataLen := len(transformData)
			if transformDataLen > math.MaxUint16 {
				return nil, fmt.Errorf("transform data length exceeds uint16 limit: %d", transformDataLen)
			}
			binary.BigEndian.PutUint16(transformData[2:4], uint16(transformDataLen))

			proposalTransformData = append(proposalTransformData, transformData...)
		}

		proposalData = append(proposalData, proposalTransformData...)
		proposalDataLen := len(proposalData)
		if proposalDataLen > math.MaxUint16 {
			return nil, fmt.Errorf("proposal data length exceeds uint16 limit: %d", proposalDataLen)
		}
		binary.BigEndian.PutUint16(proposalData[2:4], uint16(proposalDataLen))

		securityAssociationData = append(securityAssociationData, proposalData...)
	}

	return securityAssociationData, nil
}

func (securityAssociation *SecurityAssociation) unmarshal(rawData []byte) error {
	for len(rawData) > 0 {
		logger.IKELog.Debugln("unmarshal 1 proposal")
		// bounds checking
		if err := checkLen(rawData, 8, "no sufficient bytes to decode next proposal"); err != nil {
			return err
		}
		proposalLength := binary.BigEndian.Uint16(rawData[2:4])
		if proposalLength < 8 {
			return fmt.Errorf("illegal proposal length %d < header length 8", proposalLength)
		}
		if err := checkLen(rawData, int(proposalLength), "length of received message not match the length specified in header"); err != nil {
			return err
		}

		proposal := new(Proposal)

		proposal.ProposalNumber = rawData[4]
		proposal.ProtocolID = rawData[5]

		spiSize := rawData[6]
		if spiSize > 0 {
			// bounds checking
			if err := checkLen(rawData, int(8+spiSize), "no sufficient bytes for unmarshalling SPI of proposal"); err != nil {
				return err
			}
			proposal.SPI = append(proposal.SPI, rawData[8:8+spiSize]...)
		}

		transformData := rawData[8+spiSize : proposalLength]

		for len(transformData) > 0 {
			// bounds checking
			if err := checkLen(transformData, 8, "no sufficient bytes to decode next transform"); err != nil {
				return err
			}
			transformLength := binary.BigEndian.Uint16(transformData[2:4])
			if transformLength < 8 {
				return fmt.Errorf("illegal transform length %d < header length 8", transformLength)
			}
			if err := checkLen(transformData, int(transformLength), "length of received message not match the length specified in header"); err != nil {
				return err
			}

			transform := new(Transform)

			transform.TransformType = transformData[4]
			transform.TransformID = binary.BigEndian.Uint16(transformData[6:8])
			if transformLength > 8 {
				// the 4-byte attribute header must fit inside the transform
				if transformLength < 12 {
					return fmt.Errorf("illegal transform length %d for transform carrying an attribute",
						transformLength)
				}
				transform.AttributePresent = true
				transform.AttributeFormat = (transformData[8] & 0x80) >> 7
				transform.AttributeType = binary.BigEndian.Uint16(transformData[8:10]) & 0x7f

				if transform.AttributeFormat == AttributeFormatUseTLV {
					attributeLength := binary.BigEndian.Uint16(transformData[10:12])
					// bounds checking
					if (12 + attributeLength) != transformLength {
						return fmt.Errorf("illegal attribute length %d not satisfies the transform length %d",
							attributeLength, transformLength)
					}
					transform.VariableLengthAttributeValue = append(transform.VariableLengthAttributeValue,
						transformData[12:12+attributeLength]...)
				} else {
					transform.AttributeValue = binary.BigEndian.Uint16(transformData[10:12])
				}
			}

			switch transform.TransformType {
			case TypeEncryptionAlgorithm:
				proposal.EncryptionAlgorithm = append(proposal.EncryptionAlgorithm, transform)
			case TypePseudorandomFunction:
				proposal.PseudorandomFunction = append(proposal.PseudorandomFunction, transform)
			case TypeIntegrityAlgorithm:
				proposal.IntegrityAlgorithm = append(proposal.IntegrityAlgorithm, transform)
			case TypeDiffieHellmanGroup:
				proposal.DiffieHellmanGroup = append(proposal.DiffieHellmanGroup, transform)
			case TypeExtendedSequenceNumbers:
				proposal.ExtendedSequenceNumbers = append(proposal.ExtendedSequenceNumbers, transform)
			}

			transformData = transformData[transformLength:]
		}

		securityAssociation.Proposals = append(securityAssociation.Proposals, proposal)

		rawData = rawData[proposalLength:]
	}

	return nil
}

// Definition of Key Exchange

var _ Payload = &KeyExchange{}

type KeyExchange struct {
	payloadBase
	DiffieHellmanGroup uint16
	KeyExchangeData    []byte
}

func (keyExchange *KeyExchange) Type() IKEPayloadType { return TypeKE }

func (keyExchange *KeyExchange) Verify() error {
	if keyExchange.DiffieHellmanGroup == DH_NONE {
		return errors.New("key exchange has no Diffie-Hellman group")
	}
	if len(keyExchange.KeyExchangeData) == 0 {
		return errors.New("key exchange data is empty")
	}
	return nil
}

func (keyExchange *KeyExchange) marshal() ([]byte, error) {
	keyExchangeData := make([]byte, 4)

	binary.BigEndian.PutUint16(keyExchangeData[0:2], keyExchange.DiffieHellmanGroup)
	keyExchangeData = append(keyExchangeData, keyExchange.KeyExchangeData...)

	return keyExchangeData, nil
}

func (keyExchange *KeyExchange) unmarshal(rawData []byte) error {
	if len(rawData) > 0 {
		// bounds checking
		if len(rawData) <= 4 {
			return errors.New("no sufficient bytes to decode next key exchange data")
		}

		keyExchange.DiffieHellmanGroup = binary.BigEndian.Uint16(rawData[0:2])
		keyExchange.KeyExchangeData = append(keyExchange.KeyExchangeData, rawData[4:]...)
	}

	return nil
}

// Definition of Identification - Initiator

var _ Payload = &IdentificationInitiator{}

type IdentificationInitiator struct {
	payloadBase
	IDType uint8
	IDData []byte
}

func (identification *IdentificationInitiator) Type() IKEPayloadType { return TypeIDi }

func (identification *IdentificationInitiator) Verify() error {
	return verifyIdentification(identification.IDType, identification.IDData)
}

func (identification *IdentificationInitiator) marshal() ([]byte, error) {
	return marshalIdentification(identification.IDType, identification.IDData), nil
}

func (identification *IdentificationInitiator) unmarshal(rawData []byte) error {
	return unmarshalIdentification(rawData, &identification.IDType, &identification.IDData)
}

// Definition of Identification - Responder

var _ Payload = &IdentificationResponder{}

type IdentificationResponder struct {
	payloadBase
	IDType uint8
	IDData []byte
}

func (identification *IdentificationResponder) Type() IKEPayloadType { return TypeIDr }

func (identification *IdentificationResponder) Verify() error {
	return verifyIdentification(identification.IDType, identification.IDData)
}

func (identification *IdentificationResponder) marshal() ([]byte, error) {
	return marshalIdentification(identification.IDType, identification.IDData), nil
}

func (identification *IdentificationResponder) unmarshal(rawData []byte) error {
	return unmarshalIdentification(rawData, &identification.IDType, &identification.IDData)
}

func verifyIdentification(idType uint8, idData []byte) error {
	switch idType {
	case ID_IPV4_ADDR, ID_FQDN, ID_RFC822_ADDR, ID_IPV6_ADDR,
		ID_DER_ASN1_DN, ID_DER_ASN1_GN, ID_KEY_ID:
	default:
		return fmt.Errorf("unknown identification type %d", idType)
	}
	if len(idData) == 0 {
		return errors.New("identification data is empty")
	}
	return nil
}

func marshalIdentification(idType uint8, idData []byte) []byte {
	identificationData := make([]byte, 4)
	identificationData[0] = idType
	return append(identificationData, idData...)
}

func unmarshalIdentification(rawData []byte, idType *uint8, idData *[]byte) error {
	if len(rawData) > 0 {
		// bounds checking
		if len(rawData) <= 4 {
			return errors.New("no sufficient bytes to decode next identification")
		}
		*idType = rawData[0]
		*idData = append(*idData, rawData[4:]...)
	}
	return nil
}

// Definition of Certificate

var _ Payload = &Certificate{}

type Certificate struct {
	payloadBase
	CertificateEncoding uint8
	CertificateData     []byte
}

func (certificate *Certificate) Type() IKEPayloadType { return TypeCERT }

func (certificate *Certificate) Verify() error {
	if certificate.CertificateEncoding == 0 {
		return errors.New("certificate encoding is not set")
	}
	if len(certificate.CertificateData) == 0 {
		return errors.New("certificate data is empty")
	}
	return nil
}

func (certificate *Certificate) marshal() ([]byte, error) {
	certificateData := make([]byte, 1)

	certificateData[0] = certificate.CertificateEncoding
	certificateData = append(certificateData, certificate.CertificateData...)

	return certificateData, nil
}

func (certificate *Certificate) unmarshal(rawData []byte) error {
	if len(rawData) > 0 {
		// bounds checking
		if len(rawData) <= 1 {
			return errors.New("no sufficient bytes to decode next certificate")
		}

		certificate.CertificateEncoding = rawData[0]
		certificate.CertificateData = append(certificate.CertificateData, rawData[1:]...)
	}

	return nil
}

// Definition of Certificate Request

var _ Payload = &CertificateRequest{}

type CertificateRequest struct {
	payloadBase
	CertificateEncoding    uint8
	CertificationAuthority []byte
}

func (certificateRequest *CertificateRequest) Type() IKEPayloadType { return TypeCERTreq }

func (certificateRequest *CertificateRequest) Verify() error {
	if certificateRequest.CertificateEncoding == 0 {
		return errors.New("certificate encoding is not set")
	}
	return nil
}

func (certificateRequest *CertificateRequest) marshal() ([]byte, error) {
	certificateRequestData := make([]byte, 1)

	certificateRequestData[0] = certificateRequest.CertificateEncoding
	certificateRequestData = append(certificateRequestData, certificateRequest.CertificationAuthority...)

	return certificateRequestData, nil
}

func (certificateRequest *CertificateRequest) unmarshal(rawData []byte) error {
	if len(rawData) > 0 {
		// bounds checking
		if len(rawData) < 1 {
			return errors.New("no sufficient bytes to decode next certificate request")
		}

		certificateRequest.CertificateEncoding = rawData[0]
		certificateRequest.CertificationAuthority = append(certificateRequest.CertificationAuthority, rawData[1:]...)
	}

	return nil
}

// Definition of Authentication

var _ Payload = &Authentication{}

type Authentication struct {
	payloadBase
	AuthenticationMethod uint8
	AuthenticationData   []byte
}

func (authentication *Authentication) Type() IKEPayloadType { return TypeAUTH }

func (authentication *Authentication) Verify() error {
	if authentication.AuthenticationMethod == 0 {
		return errors.New("authentication method is not set")
	}
	if len(authentication.AuthenticationData) == 0 {
		return errors.New("authentication data is empty")
	}
	return nil
}

func (authentication *Authentication) marshal() ([]byte, error) {
	authenticationData := make([]byte, 4)

	authenticationData[0] = authentication.AuthenticationMethod
	authenticationData = append(authenticationData, authentication.AuthenticationData...)

	return authenticationData, nil
}

func (authentication *Authentication) unmarshal(rawData []byte) error {
	if len(rawData) > 0 {
		// bounds checking
		if len(rawData) <= 4 {
			return errors.New("no sufficient bytes to decode next authentication")
		}

		authentication.AuthenticationMethod = rawData[0]
		authentication.AuthenticationData = append(authentication.AuthenticationData, rawData[4:]...)
	}

	return nil
}

// Definition of Nonce

var _ Payload = &Nonce{}

type Nonce struct {
	payloadBase
	NonceData []byte
}

func (nonce *Nonce) Type() IKEPayloadType { return TypeNiNr }

// Nonce length bounds per RFC 7296, Section 3.9
func (nonce *Nonce) Verify() error {
	if len(nonce.NonceData) < 16 || len(nonce.NonceData) > 256 {
		return fmt.Errorf("illegal nonce length %d", len(nonce.NonceData))
	}
	return nil
}

func (nonce *Nonce) marshal() ([]byte, error) {
	nonceData := make([]byte, 0)
	nonceData = append(nonceData, nonce.NonceData...)

	return nonceData, nil
}

func (nonce *Nonce) unmarshal(rawData []byte) error {
	if len(rawData) > 0 {
		nonce.NonceData = append(nonce.NonceData, rawData...)
	}

	return nil
}

// Definition of Notification

var _ Payload = &Notification{}

type Notification struct {
	payloadBase
	ProtocolID        uint8
	NotifyMessageType uint16
	SPI               []byte
	NotificationData  []byte
}

func (notification *Notification) Type() IKEPayloadType { return TypeN }

func (notification *Notification) Verify() error {
	if notification.NotifyMessageType == 0 {
		return errors.New("notify message type is not set")
	}
	if len(notification.SPI) > 16 {
		return fmt.Errorf("illegal SPI size %d", len(notification.SPI))
	}
	return nil
}

func (notification *Notification) marshal() ([]byte, error) {
	notificationData := make([]byte, 4)

	notificationData[0] = notification.ProtocolID
	numberofSPI := len(notification.SPI)
	if numberofSPI > math.MaxUint8 {
		return nil, fmt.Errorf("number of SPI exceeds uint8 limit: %d", numberofSPI)
	}
	notificationData[1] = uint8(numberofSPI)
	binary.BigEndian.PutUint16(notificationData[2:4], notification.NotifyMessageType)

	notificationData = append(notificationData, notification.SPI...)
	notificationData = append(notificationData, notification.NotificationData...)

	return notificationData, nil
}

func (notification *Notification) unmarshal(rawData []byte) error {
	if len(rawData) > 0 {
		// bounds checking
		if len(rawData) < 4 {
			return errors.New("no sufficient bytes to decode next notification")
		}
		spiSize := rawData[1]
		if len(rawData) < int(4+spiSize) {
			return errors.New("no sufficient bytes to get SPI according to the length specified in header")
		}

		notification.ProtocolID = rawData[0]
		notification.NotifyMessageType = binary.BigEndian.Uint16(rawData[2:4])

		notification.SPI = append(notification.SPI, rawData[4:4+spiSize]...)
		notification.NotificationData = append(notification.NotificationData, rawData[4+spiSize:]...)
	}

	return nil
}

// Definition of Delete

var _ Payload = &Delete{}

type Delete struct {
	payloadBase
	ProtocolID  uint8
	SPISize     uint8
	NumberOfSPI uint16
	SPIs        []uint32
}

func (del *Delete) Type() IKEPayloadType { return TypeD }

func (del *Delete) Verify() error {
	if len(del.SPIs) != int(del.NumberOfSPI) {
		return fmt.Errorf("number of SPI %d not match the specified count %d", len(del.SPIs), del.NumberOfSPI)
	}
	return nil
}

func (del *Delete) marshal() ([]byte, error) {
	if len(del.SPIs) != int(del.NumberOfSPI) {
		return nil, errors.New("number of SPI not correct")
	}

	deleteData := make([]byte, 4)

	deleteData[0] = del.ProtocolID
	deleteData[1] = del.SPISize
	binary.BigEndian.PutUint16(deleteData[2:4], del.NumberOfSPI)

	if int(del.NumberOfSPI) > 0 {
		byteSlice := make([]byte, del.SPISize)
		for _, v := range del.SPIs {
			binary.BigEndian.PutUint32(byteSlice, v)
			deleteData = append(deleteData, byteSlice...)
		}
	}

	return deleteData, nil
}

func (del *Delete) unmarshal(rawData []byte) error {
	if len(rawData) > 0 {
		// bounds checking
		if len(rawData) <= 3 {
			return errors.New("no sufficient bytes to decode next delete")
		}
		spiSize := rawData[1]
		numberOfSPI := binary.BigEndian.Uint16(rawData[2:4])
		if numberOfSPI > 0 && spiSize != 4 {
			return fmt.Errorf("unsupported SPI size %d", spiSize)
		}
		if len(rawData) < (4 + (int(spiSize) * int(numberOfSPI))) {
			return errors.New("no sufficient bytes to get SPIs according to the length specified in header")
		}

		del.ProtocolID = rawData[0]
		del.SPISize = spiSize
		del.NumberOfSPI = numberOfSPI

		rawData = rawData[4:]
		for i := 0; i < int(numberOfSPI); i++ {
			spi := binary.BigEndian.Uint32(rawData[i*4 : i*4+4])
			del.SPIs = append(del.SPIs, spi)
		}
	}

	return nil
}

// Definition of Vendor ID

var _ Payload = &VendorID{}

type VendorID struct {
	payloadBase
	VendorIDData []byte
}

func (vendorID *VendorID) Type() IKEPayloadType { return TypeV }

func (vendorID *VendorID) Verify() error {
	if len(vendorID.VendorIDData) == 0 {
		return errors.New("vendor ID data is empty")
	}
	return nil
}

func (vendorID *VendorID) marshal() ([]byte, error) {
	return vendorID.VendorIDData, nil
}

func (vendorID *VendorID) unmarshal(rawData []byte) error {
	if len(rawData) > 0 {
		vendorID.VendorIDData = append(vendorID.VendorIDData, rawData...)
	}

	return nil
}

// Definition of Traffic Selector - Initiator

var _ Payload = &TrafficSelectorInitiator{}

type TrafficSelectorInitiator struct {
	payloadBase
	TrafficSelectors IndividualTrafficSelectorContainer
}

type IndividualTrafficSelectorContainer []*IndividualTrafficSelector

type IndividualTrafficSelector struct {
	TSType       uint8
	IPProtocolID uint8
	StartPort    uint16
	EndPort      uint16
	StartAddress []byte
	EndAddress   []byte
}

func (trafficSelector *TrafficSelectorInitiator) Type() IKEPayloadType { return TypeTSi }

func (trafficSelector *TrafficSelectorInitiator) Verify() error {
	return verifyTrafficSelectors(trafficSelector.TrafficSelectors)
}

func (trafficSelector *TrafficSelectorInitiator) marshal() ([]byte, error) {
	return marshalTrafficSelectors(trafficSelector.TrafficSelectors)
}

func (trafficSelector *TrafficSelectorInitiator) unmarshal(rawData []byte) error {
	return unmarshalTrafficSelectors(rawData, &trafficSelector.TrafficSelectors)
}

// Definition of Traffic Selector - Responder

var _ Payload = &TrafficSelectorResponder{}

type TrafficSelectorResponder struct {
	payloadBase
	TrafficSelectors IndividualTrafficSelectorContainer
}

func (trafficSelector *TrafficSelectorResponder) Type() IKEPayloadType { return TypeTSr }

func (trafficSelector *TrafficSelectorResponder) Verify() error {
	return verifyTrafficSelectors(trafficSelector.TrafficSelectors)
}

func (trafficSelector *TrafficSelectorResponder) marshal() ([]byte, error) {
	return marshalTrafficSelectors(trafficSelector.TrafficSelectors)
}

func (trafficSelector *TrafficSelectorResponder) unmarshal(rawData []byte) error {
	return unmarshalTrafficSelectors(rawData, &trafficSelector.TrafficSelectors)
}

func verifyTrafficSelectors(selectors IndividualTrafficSelectorContainer) error {
	if len(selectors) == 0 {
		return errors.New("traffic selector payload contains no selector")
	}
	for _, ts := range selectors {
		if ts.StartPort > ts.EndPort {
			return fmt.Errorf("illegal port range %d..%d", ts.StartPort, ts.EndPort)
		}
	}
	return nil
}

func marshalTrafficSelectors(selectors IndividualTrafficSelectorContainer) ([]byte, error) {
	if len(selectors) == 0 {
		return nil, errors.New("contains no traffic selector for marshalling message")
	}

	trafficSelectorData := make([]byte, 4)
	selectorCount := len(selectors)
	if selectorCount > math.MaxUint8 {
		return nil, fmt.Errorf("too many traffic selectors: %d", selectorCount)
	}
	trafficSelectorData[0] = uint8(selectorCount)

	for _, individualTrafficSelector := range selectors {
		var addrLen int
		switch individualTrafficSelector.TSType {
		case TS_IPV4_ADDR_RANGE:
			addrLen = 4
		case TS_IPV6_ADDR_RANGE:
			addrLen = 16
		default:
			return nil, fmt.Errorf("unsupported traffic selector type %d", individualTrafficSelector.TSType)
		}

		// Address length checking
		if len(individualTrafficSelector.StartAddress) != addrLen {
			return nil, fmt.Errorf("start address length is not correct for selector type %d",
				individualTrafficSelector.TSType)
		}
		if len(individualTrafficSelector.EndAddress) != addrLen {
			return nil, fmt.Errorf("end address length is not correct for selector type %d",
				individualTrafficSelector.TSType)
		}

		individualTrafficSelectorData := make([]byte, 8)

		individualTrafficSelectorData[0] = individualTrafficSelector.TSType
		individualTrafficSelectorData[1] = individualTrafficSelector.IPProtocolID
		binary.BigEndian.PutUint16(individualTrafficSelectorData[4:6], individualTrafficSelector.StartPort)
		binary.BigEndian.PutUint16(individualTrafficSelectorData[6:8], individualTrafficSelector.EndPort)

		individualTrafficSelectorData = append(individualTrafficSelectorData, individualTrafficSelector.StartAddress...)
		individualTrafficSelectorData = append(individualTrafficSelectorData, individualTrafficSelector.EndAddress...)

		binary.BigEndian.PutUint16(individualTrafficSelectorData[2:4], uint16(len(individualTrafficSelectorData)))

		trafficSelectorData = append(trafficSelectorData, individualTrafficSelectorData...)
	}

	return trafficSelectorData, nil
}

func unmarshalTrafficSelectors(rawData []byte, selectors *IndividualTrafficSelectorContainer) error {
	if len(rawData) == 0 {
		return nil
	}

	// bounds checking
	if len(rawData) < 4 {
		return errors.New("no sufficient bytes to get number of traffic selector in header")
	}

	numberOfTS := rawData[0]
	rawData = rawData[4:]

	for ; numberOfTS > 0; numberOfTS-- {
		// bounds checking
		if len(rawData) < 4 {
			return errors.New("no sufficient bytes to decode next individual traffic selector length in header")
		}

		var selectorLen, addrLen int
		switch rawData[0] {
		case TS_IPV4_ADDR_RANGE:
			selectorLen, addrLen = 16, 4
		case TS_IPV6_ADDR_RANGE:
			selectorLen, addrLen = 40, 16
		default:
			return errors.New("unsupported traffic selector type")
		}

		length := binary.BigEndian.Uint16(rawData[2:4])
		if int(length) != selectorLen {
			return fmt.Errorf("traffic selector of type %d should have length %d bytes", rawData[0], selectorLen)
		}
		if len(rawData) < selectorLen {
			return errors.New("no sufficient bytes to decode next individual traffic selector")
		}

		individualTrafficSelector := &IndividualTrafficSelector{}

		individualTrafficSelector.TSType = rawData[0]
		individualTrafficSelector.IPProtocolID = rawData[1]
		individualTrafficSelector.StartPort = binary.BigEndian.Uint16(rawData[4:6])
		individualTrafficSelector.EndPort = binary.BigEndian.Uint16(rawData[6:8])

		individualTrafficSelector.StartAddress = append(individualTrafficSelector.StartAddress,
			rawData[8:8+addrLen]...)
		individualTrafficSelector.EndAddress = append(individualTrafficSelector.EndAddress,
			rawData[8+addrLen:8+2*addrLen]...)

		*selectors = append(*selectors, individualTrafficSelector)

		rawData = rawData[selectorLen:]
	}
	return nil
}

// Definition of Encrypted Payload

var _ Payload = &Encrypted{}

// Encrypted is the SK payload. Its wire next-payload field names the first
// payload inside the encrypted blob, not the chain successor, so NextPayload
// is kept apart from the chain link.
type Encrypted struct {
	payloadBase
	NextPayload   IKEPayloadType
	EncryptedData []byte
}

func (encrypted *Encrypted) Type() IKEPayloadType { return TypeSK }

func (encrypted *Encrypted) Verify() error {
	if len(encrypted.EncryptedData) == 0 {
		return errors.New("encrypted data is empty")
	}
	return nil
}

func (encrypted *Encrypted) marshal() ([]byte, error) {
	if len(encrypted.EncryptedData) == 0 {
		return nil, errors.New("encrypted data is empty")
	}

	return encrypted.EncryptedData, nil
}

func (encrypted *Encrypted) unmarshal(rawData []byte) error {
	encrypted.EncryptedData = append(encrypted.EncryptedData, rawData...)
	return nil
}

// Definition of Configuration

var _ Payload = &Configuration{}

type Configuration struct {
	payloadBase
	ConfigurationType      uint8
	ConfigurationAttribute ConfigurationAttributeContainer
}

type ConfigurationAttributeContainer []*IndividualConfigurationAttribute

type IndividualConfigurationAttribute struct {
	Type  uint16
	Value []byte
}

func (configuration *Configuration) Type() IKEPayloadType { return TypeCP }

func (configuration *Configuration) Verify() error {
	if configuration.ConfigurationType < CFG_REQUEST || configuration.ConfigurationType > CFG_ACK {
		return fmt.Errorf("unknown configuration type %d", configuration.ConfigurationType)
	}
	return nil
}

func (configuration *Configuration) marshal() ([]byte, error) {
	configurationData := make([]byte, 4)

	configurationData[0] = configuration.ConfigurationType

	for _, attribute := range configuration.ConfigurationAttribute {
		individualConfigurationAttributeData := make([]byte, 4)

		binary.BigEndian.PutUint16(individualConfigurationAttributeData[0:2], (attribute.Type & 0x7fff))
		attributeLen := len(attribute.Value)
		if attributeLen > math.MaxUint16 {
			return nil, fmt.Errorf("attribute value length exceeds uint16 limit: %d", attributeLen)
		}
		binary.BigEndian.PutUint16(individualConfigurationAttributeData[2:4], uint16(attributeLen))
		individualConfigurationAttributeData = append(individualConfigurationAttributeData, attribute.Value...)

		configurationData = append(configurationData, individualConfigurationAttributeData...)
	}

	return configurationData, nil
}

func (configuration *Configuration) unmarshal(rawData []byte) error {
	if len(rawData) > 0 {
		// bounds checking
		if len(rawData) < 4 {
			return errors.New("no sufficient bytes to decode next configuration")
		}
		configuration.ConfigurationType = rawData[0]

		configurationAttributeData := rawData[4:]

		for len(configurationAttributeData) > 0 {
			logger.IKELog.Debugln("unmarshal 1 configuration attribute")
			// bounds checking
			if len(configurationAttributeData) < 4 {
				return errors.New("no sufficient bytes to decode next configuration attribute")
			}
			length := binary.BigEndian.Uint16(configurationAttributeData[2:4])
			if len(configurationAttributeData) < int(4+length) {
				return errors.New("TLV attribute length error")
			}

			individualConfigurationAttribute := new(IndividualConfigurationAttribute)

			individualConfigurationAttribute.Type = binary.BigEndian.Uint16(configurationAttributeData[0:2])
			configurationAttributeData = configurationAttributeData[4:]
			individualConfigurationAttribute.Value = append(individualConfigurationAttribute.Value,
				configurationAttributeData[:length]...)
			configurationAttributeData = configurationAttributeData[length:]

			configuration.ConfigurationAttribute = append(configuration.ConfigurationAttribute,
				individualConfigurationAttribute)
		}
	}

	return nil
}
