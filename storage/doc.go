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


// Package storage provides the storage abstraction layer for matchcore.
//
// This package defines repository interfaces that decouple storage
// implementation from matching logic. It allows different backends
// (BadgerDB, in-memory, etc.) to be used interchangeably.
//
// # Repositories
//
//   - ProfileRepository: read-only projections of candidate profiles
//   - SwipeQueueRepository: the ledger's bounded durable local queue
//   - ExclusionRepository: per-caller sets of candidates that must never
//     reappear in results
//   - SessionRepository: the single currently-displayed card per caller
//   - CheckpointRepository: resume points for batch reindexing
//
// # Constructor Return Type Pattern
//
// Public constructors in backend packages return interface types to
// enforce abstraction and enable multiple storage backend implementations:
//
//	repo, err := badger.NewProfileRepository(backend)  // returns storage.ProfileRepository
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation and
// timeout support.
package storage
