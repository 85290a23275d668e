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


// Package ai provides abstractions for the AI services used in matchcore.
//
// This package defines interfaces for text embedding and search-intent
// extraction. It follows the dependency inversion principle, allowing the
// matching logic to depend on abstractions rather than concrete providers.
//
// # Design Principles
//
// The package is designed around three key interfaces:
//
//   - Embedder: generates vector embeddings from profile and query text
//   - IntentExtractor: turns a free-text query plus caller context into a
//     structured search intent
//   - AIProvider: aggregates both for convenient initialization
//
// # Implementation Packages
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//   - ai/mock: deterministic test doubles
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewProvider, openai.NewEmbedder, etc.) return
// interface types to enforce abstraction. Mock constructors return concrete
// types so tests can inject behavior and assert call counts.
//
// # Timeouts
//
// Both services are remote calls. Callers are expected to bound them with a
// context deadline; the intent parser additionally enforces its own strict
// timeout and falls back to a keyword heuristic when the call fails.
package ai
