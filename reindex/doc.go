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


// Package reindex walks the profile store and refreshes stale index
// entries. Staleness is detected by content hash, so profiles whose
// canonical text is unchanged cost nothing beyond the comparison. Progress
// is checkpointed after every batch; an interrupted run resumes from the
// last completed batch instead of starting over.
package reindex
