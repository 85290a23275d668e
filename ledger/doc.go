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


// Package ledger records swipe decisions durably. A swipe must never fail
// or block the caller because of network trouble: Record applies the
// exclusion locally, then tries the remote store under a short deadline,
// and on failure parks the record in a bounded badger-backed queue that
// Sync later drains with backoff. Each record carries a client-generated
// idempotency key; replaying a key is harmless because the exclusion set
// admits a candidate at most once per key.
//
// One Ledger belongs to one caller session. Record and Sync serialize on a
// single mutex; there is no cross-caller locking because no state is shared
// between callers.
package ledger
