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


package storage

import (
	"github.com/foundrly/matchcore/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	var id core.ID
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalProfile serializes a CandidateProfile to bytes.
func MarshalProfile(profile *core.CandidateProfile) []byte {
	buf := make([]byte, core.CandidateProfileMUS.Size(*profile))
	core.CandidateProfileMUS.Marshal(*profile, buf)
	return buf
}

// UnmarshalProfile deserializes a CandidateProfile from bytes.
func UnmarshalProfile(data []byte) (*core.CandidateProfile, error) {
	profile, _, err := core.CandidateProfileMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// MarshalSwipeRecord serializes a SwipeRecord to bytes.
func MarshalSwipeRecord(record *core.SwipeRecord) []byte {
	buf := make([]byte, core.SwipeRecordMUS.Size(*record))
	core.SwipeRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalSwipeRecord deserializes a SwipeRecord from bytes.
func UnmarshalSwipeRecord(data []byte) (*core.SwipeRecord, error) {
	record, _, err := core.SwipeRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// MarshalCardSession serializes a CardSession to bytes.
func MarshalCardSession(session *core.CardSession) []byte {
	buf := make([]byte, core.CardSessionMUS.Size(*session))
	core.CardSessionMUS.Marshal(*session, buf)
	return buf
}

// UnmarshalCardSession deserializes a CardSession from bytes.
func UnmarshalCardSession(data []byte) (*core.CardSession, error) {
	session, _, err := core.CardSessionMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// MarshalCheckpoint serializes a Checkpoint to bytes.
func MarshalCheckpoint(checkpoint *core.Checkpoint) []byte {
	buf := make([]byte, core.CheckpointMUS.Size(*checkpoint))
	core.CheckpointMUS.Marshal(*checkpoint, buf)
	return buf
}

// UnmarshalCheckpoint deserializes a Checkpoint from bytes.
func UnmarshalCheckpoint(data []byte) (*core.Checkpoint, error) {
	checkpoint, _, err := core.CheckpointMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &checkpoint, nil
}
