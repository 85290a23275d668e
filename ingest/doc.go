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


// Package ingest adds candidate profiles to the engine. Profiles are
// validated and stored synchronously; embedding and index upserts are
// dispatched onto a bounded worker pool so ingestion returns as soon as
// the profile is durable. Indexing failures are logged, not surfaced: the
// reindexer picks up anything the async path missed.
package ingest
