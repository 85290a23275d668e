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


// Package index maintains the searchable candidate index: one dense
// semantic vector and one sparse term-weight vector per candidate, derived
// deterministically from the profile's canonical text.
//
// The VectorIndex interface is the vendor boundary. Engine code only ever
// sees neutral Record/Query/Hit types; vendor-specific wire formats
// (Qdrant point structs, filter objects, fusion queries) stay inside the
// adapter packages:
//
//   - index/qdrant: production adapter, hybrid RRF fusion with the
//     exclusion filter pushed down to the index
//   - index/memory: in-process adapter with deterministic linear fusion,
//     used by tests and the CLI demo
//
// Upserts are idempotent: the Indexer stores a content hash alongside each
// candidate and skips re-embedding when the canonical text is unchanged, so
// re-indexing the same profile never changes retrieval rankings.
package index
