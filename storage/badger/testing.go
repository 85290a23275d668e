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


package badger

import "github.com/foundrly/matchcore/storage"

// MemoryRepositories bundles the in-memory repositories used by tests.
// Caller must Close() when done.
type MemoryRepositories struct {
	Profiles    storage.ProfileRepository
	SwipeQueue  storage.SwipeQueueRepository
	Exclusions  storage.ExclusionRepository
	Sessions    storage.SessionRepository
	Checkpoints storage.CheckpointRepository
	Backend     *Backend
}

// Close closes all repositories and the backing store.
func (m *MemoryRepositories) Close() {
	m.Sessions.Close()
	m.Exclusions.Close()
	m.SwipeQueue.Close()
	m.Profiles.Close()
	m.Backend.Close()
}

// NewMemoryRepositories creates in-memory repositories for testing.
func NewMemoryRepositories() (*MemoryRepositories, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, err
	}

	profiles, err := NewProfileRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	swipeQueue, err := NewSwipeQueueRepository(backend)
	if err != nil {
		profiles.Close()
		backend.Close()
		return nil, err
	}

	exclusions, err := NewExclusionRepository(backend)
	if err != nil {
		swipeQueue.Close()
		profiles.Close()
		backend.Close()
		return nil, err
	}

	sessions, err := NewSessionRepository(backend)
	if err != nil {
		exclusions.Close()
		swipeQueue.Close()
		profiles.Close()
		backend.Close()
		return nil, err
	}

	return &MemoryRepositories{
		Profiles:    profiles,
		SwipeQueue:  swipeQueue,
		Exclusions:  exclusions,
		Sessions:    sessions,
		Checkpoints: NewCheckpointRepository(backend),
		Backend:     backend,
	}, nil
}
