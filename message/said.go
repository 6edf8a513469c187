// SPDX-FileCopyrightText: 2026 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package message

import "fmt"

// SaID identifies an IKE SA by its two SPIs and the local role.
type SaID struct {
	InitiatorSPI uint64
	ResponderSPI uint64
	Initiator    bool
}

func NewSaID(initiatorSPI, responderSPI uint64, initiator bool) *SaID {
	return &SaID{
		InitiatorSPI: initiatorSPI,
		ResponderSPI: responderSPI,
		Initiator:    initiator,
	}
}

func (s *SaID) Clone() *SaID {
	if s == nil {
		return nil
	}
	clone := *s
	return &clone
}

func (s *SaID) Equal(other *SaID) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.InitiatorSPI == other.InitiatorSPI &&
		s.ResponderSPI == other.ResponderSPI &&
		s.Initiator == other.Initiator
}

func (s *SaID) String() string {
	return fmt.Sprintf("%016x_i %016x_r initiator=%t", s.InitiatorSPI, s.ResponderSPI, s.Initiator)
}
