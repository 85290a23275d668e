// Copyright 2025 Foundrly
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidProfile indicates a CandidateProfile failed validation.
	ErrInvalidProfile = errors.New("invalid candidate profile")

	// ErrInvalidSwipeRecord indicates a SwipeRecord failed validation.
	ErrInvalidSwipeRecord = errors.New("invalid swipe record")

	// ErrInvalidSwipeAction indicates an unrecognized swipe action.
	ErrInvalidSwipeAction = errors.New("invalid swipe action")

	// ErrInvalidCollaborationType indicates an unrecognized collaboration type.
	ErrInvalidCollaborationType = errors.New("invalid collaboration type")

	// ErrEmptyProfileId indicates a profile without an identifier.
	ErrEmptyProfileId = errors.New("profile id cannot be empty")

	// ErrEmptyTargetId indicates a swipe without a target candidate.
	ErrEmptyTargetId = errors.New("target id cannot be empty")

	// ErrEmptyCallerId indicates a swipe without a caller.
	ErrEmptyCallerId = errors.New("caller id cannot be empty")

	// ErrEmptyIdempotencyKey indicates a swipe without an idempotency key.
	ErrEmptyIdempotencyKey = errors.New("idempotency key cannot be empty")

	// ErrInvalidResponseRate indicates a response rate outside [0,100].
	ErrInvalidResponseRate = errors.New("response rate must be between 0 and 100, or unknown")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")
)
