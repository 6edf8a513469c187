// SPDX-FileCopyrightText: 2026 Intel Corporation
// SPDX-License-Identifier: Apache-2.0

package message

import "errors"

// Error kinds reported by the message model. Operations wrap these with
// context; callers match them with errors.Is.
var (
	// ErrInvalidState is returned when a required field (exchange type,
	// endpoints, IKE SA identifier) is not set before generation.
	ErrInvalidState = errors.New("message state invalid for requested operation")

	// ErrRuleNotFound is returned when no payload grammar exists for an
	// exchange type and direction.
	ErrRuleNotFound = errors.New("no payload rule for exchange type and direction")

	// ErrNotSupported is returned when a payload type is outside the grammar
	// for the message, or its occurrence count is outside the allowed bounds.
	ErrNotSupported = errors.New("payload not supported")

	// ErrVerifyFailed is returned when a payload or header fails its
	// structural self-verification.
	ErrVerifyFailed = errors.New("verification failed")

	// ErrCodecFailed wraps a wire encode or decode error.
	ErrCodecFailed = errors.New("payload codec failed")

	// ErrChainFull is returned when the payload chain cannot grow. The
	// payload is not owned by the chain in that case.
	ErrChainFull = errors.New("payload chain full")

	// ErrSaIDUnavailable is returned when the IKE SA identifier is requested
	// before one has been bound.
	ErrSaIDUnavailable = errors.New("IKE SA identifier not available")
)
