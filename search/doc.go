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


// Package search runs tiered candidate retrieval. A structured intent is
// executed against the vector index under progressively relaxed
// constraints until enough candidates surface:
//
//	tier 0: every required skill plus the location hint as hard filters
//	tier 1: location dropped
//	tier 2: one required skill kept, preferred skills folded into the query
//	tier 3: pure similarity on the raw query, no hard filters
//
// Tiers run sequentially because each one only runs if the previous tiers
// left the result set short. Results are deduplicated across tiers with
// the earliest tier winning, and every candidate is tagged with the tier
// it was found in so downstream ranking can see how much relaxation it
// took to surface them.
package search
