// SPDX-FileCopyrightText: 2026 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package message

import "net"

// Packet pairs raw IKE wire data with its UDP endpoints.
type Packet struct {
	Source      *net.UDPAddr
	Destination *net.UDPAddr
	Data        []byte
}

func NewPacket(source, destination *net.UDPAddr, data []byte) *Packet {
	return &Packet{
		Source:      source,
		Destination: destination,
		Data:        data,
	}
}

// Clone copies the packet deeply, so the caller may modify the original
// without affecting the clone.
func (p *Packet) Clone() *Packet {
	if p == nil {
		return nil
	}
	clone := &Packet{
		Source:      cloneUDPAddr(p.Source),
		Destination: cloneUDPAddr(p.Destination),
	}
	if p.Data != nil {
		clone.Data = make([]byte, len(p.Data))
		copy(clone.Data, p.Data)
	}
	return clone
}

func cloneUDPAddr(addr *net.UDPAddr) *net.UDPAddr {
	if addr == nil {
		return nil
	}
	clone := &net.UDPAddr{
		Port: addr.Port,
		Zone: addr.Zone,
	}
	if addr.IP != nil {
		clone.IP = make(net.IP, len(addr.IP))
		copy(clone.IP, addr.IP)
	}
	return clone
}
