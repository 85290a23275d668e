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


// Package score computes multi-dimensional compatibility between a caller
// and a candidate. Six sub-scores (skills, goals, location, network,
// availability, experience) are computed independently on a 0..100 scale,
// then combined as a weighted sum whose weights depend on the collaboration
// type being searched for. Scoring is pure and deterministic: the same
// inputs always produce the same MatchScore, which keeps results auditable.
//
// Missing profile dimensions score a neutral 50 (availability a neutral 70)
// instead of 0, so an incomplete profile is never buried by absent data.
package score
