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

import (
	"fmt"
	"time"
)

// ValidateProfile validates a CandidateProfile according to domain rules.
//
// Validation rules:
//   - Id must not be empty
//   - ResponseRate must be in [0,100] or ResponseRateUnknown
//
// NOT validated (the profile store owns these):
//   - Skills/Goals may be empty; such profiles are still indexable for
//     keyword-only retrieval
//   - UpdatedAt may be zero for profiles that have never been edited
func ValidateProfile(profile *CandidateProfile) error {
	if profile == nil {
		return fmt.Errorf("%w: profile is nil", ErrInvalidProfile)
	}

	if profile.Id == "" {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, ErrEmptyProfileId)
	}

	if profile.ResponseRate != ResponseRateUnknown &&
		(profile.ResponseRate < 0 || profile.ResponseRate > 100) {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, ErrInvalidResponseRate)
	}

	return nil
}

// ValidateSwipeRecord validates a SwipeRecord according to domain rules.
//
// Validation rules:
//   - CallerId and TargetId must not be empty
//   - Action must be a known SwipeAction
//   - IdempotencyKey must not be empty
//   - Timestamp must not be in the future
//
// This is the one error category the caller is responsible for fixing;
// everything else in the ledger degrades instead of failing.
func ValidateSwipeRecord(record *SwipeRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidSwipeRecord)
	}

	if record.CallerId == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSwipeRecord, ErrEmptyCallerId)
	}

	if record.TargetId == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSwipeRecord, ErrEmptyTargetId)
	}

	if err := ValidateSwipeAction(record.Action); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSwipeRecord, err)
	}

	if record.IdempotencyKey == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSwipeRecord, ErrEmptyIdempotencyKey)
	}

	if !IsValidTimestamp(record.Timestamp) {
		return fmt.Errorf("%w: %w", ErrInvalidSwipeRecord, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateSwipeAction validates that a SwipeAction has a valid value.
func ValidateSwipeAction(action SwipeAction) error {
	if action != SwipeLike && action != SwipeIgnore && action != SwipeSuperLike {
		return fmt.Errorf("%w: value %d", ErrInvalidSwipeAction, action)
	}
	return nil
}

// ValidateCollaborationType validates that a CollaborationType has a valid value.
func ValidateCollaborationType(c CollaborationType) error {
	if c < CollaborationCoFounder || c > CollaborationOther {
		return fmt.Errorf("%w: value %d", ErrInvalidCollaborationType, c)
	}
	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
