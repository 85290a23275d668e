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


// Package session tracks the single card currently displayed to a caller.
// Rapid successive updates (fast swiping) are throttled to one persisted
// write per second; updates inside the window coalesce in memory with the
// last writer winning, so Get always reflects the newest card while the
// store sees a bounded write rate. The pending final state is persisted by
// the next allowed update or an explicit Flush.
package session
