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


// Package intent turns a free-text search query into a structured
// core.SearchIntent. The primary path delegates to the AI provider's
// intent extractor under a hard deadline; when the model is unreachable,
// times out, or returns something unusable, the parser falls back to a
// deterministic keyword heuristic so a search request never fails just
// because the language model did.
package intent
