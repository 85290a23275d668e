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


package openai

import "strings"

// repairJSON attempts to fix common formatting defects in LLM responses:
// missing opening quotes before object keys, and trailing commas before
// closing braces or brackets.
func repairJSON(s string) string {
	return stripTrailingCommas(quoteBareKeys(s))
}

// quoteBareKeys inserts the missing opening quote for keys written as
// `key":` after `{` or `,`.
func quoteBareKeys(s string) string {
	var out strings.Builder
	out.Grow(len(s) + 16)

	runes := []rune(s)
	i := 0
	for i < len(runes) {
		ch := runes[i]
		out.WriteRune(ch)
		i++
		if ch != '{' && ch != ',' {
			continue
		}

		// Skip whitespace after the delimiter
		for i < len(runes) && (runes[i] == ' ' || runes[i] == '\n' || runes[i] == '\t') {
			out.WriteRune(runes[i])
			i++
		}

		// A bare key starts with a letter instead of a quote
		if i >= len(runes) || runes[i] == '"' || !isLetter(runes[i]) {
			continue
		}

		start := i
		for i < len(runes) && (isLetter(runes[i]) || runes[i] == '_') {
			i++
		}

		// Only a missing opening quote when the key ends with `":`
		if i+1 < len(runes) && runes[i] == '"' && runes[i+1] == ':' {
			out.WriteRune('"')
		}
		out.WriteString(string(runes[start:i]))
	}

	return out.String()
}

// stripTrailingCommas removes a comma that directly precedes a closing
// brace or bracket, ignoring whitespace.
func stripTrailingCommas(s string) string {
	var out strings.Builder
	out.Grow(len(s))

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] == ',' {
			j := i + 1
			for j < len(runes) && (runes[j] == ' ' || runes[j] == '\n' || runes[j] == '\t') {
				j++
			}
			if j < len(runes) && (runes[j] == '}' || runes[j] == ']') {
				continue // drop the comma
			}
		}
		out.WriteRune(runes[i])
	}

	return out.String()
}
