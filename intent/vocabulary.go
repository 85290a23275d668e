package intent

import (
	"strings"

	"github.com/foundrly/matchcore/core"
)

// knownSkills is the heuristic fallback's skill vocabulary. Entries are
// lowercase; multi-word entries are matched as substrings of the query.
var knownSkills = []string{
	"python", "go", "golang", "rust", "java", "typescript", "javascript",
	"c++", "swift", "kotlin", "sql",
	"machine learning", "ml", "deep learning", "nlp", "computer vision",
	"data science", "ai",
	"backend", "frontend", "full-stack", "fullstack", "mobile", "ios",
	"android", "devops", "kubernetes", "cloud", "security", "blockchain",
	"product management", "product design", "ui", "ux", "design",
	"marketing", "growth", "sales", "fundraising", "finance", "legal",
	"operations", "hardware", "robotics", "biotech",
}

// collaborationKeywords maps trigger phrases to a collaboration type.
// Ordered so more specific phrases win over generic ones.
var collaborationKeywords = []struct {
	phrase string
	kind   core.CollaborationType
}{
	{"co-founder", core.CollaborationCoFounder},
	{"cofounder", core.CollaborationCoFounder},
	{"founding", core.CollaborationCoFounder},
	{"start a company", core.CollaborationCoFounder},
	{"mentor", core.CollaborationMentor},
	{"advisor", core.CollaborationMentor},
	{"coach", core.CollaborationMentor},
	{"investor", core.CollaborationInvestor},
	{"angel", core.CollaborationInvestor},
	{"funding", core.CollaborationInvestor},
	{"vc", core.CollaborationInvestor},
	{"collaborator", core.CollaborationCollaborator},
	{"collaborate", core.CollaborationCollaborator},
	{"teammate", core.CollaborationCollaborator},
	{"partner", core.CollaborationCollaborator},
}

// locationPrepositions introduce a place name in free text, as in
// "a designer in Berlin" or "someone based in Beijing".
var locationPrepositions = []string{"based in ", "located in ", "in ", "from ", "near "}

// heuristicParse derives a best-effort intent from the query text alone.
// It never fails; a query with no recognizable terms yields an intent with
// only the collaboration default and the raw query set.
func heuristicParse(query string) *core.SearchIntent {
	lower := strings.ToLower(query)

	var required []string
	seen := make(map[string]struct{})
	for _, skill := range knownSkills {
		if !containsTerm(lower, skill) {
			continue
		}
		if _, dup := seen[skill]; dup {
			continue
		}
		seen[skill] = struct{}{}
		required = append(required, skill)
	}

	collaboration := core.CollaborationOther
	for _, kw := range collaborationKeywords {
		if containsTerm(lower, kw.phrase) {
			collaboration = kw.kind
			break
		}
	}

	return &core.SearchIntent{
		RequiredSkills: required,
		Collaboration:  collaboration,
		LocationHint:   extractLocation(query),
		RawQuery:       query,
	}
}

// containsTerm reports whether term occurs in text on word boundaries.
// Plain substring matching would turn "going" into a hit for "go".
func containsTerm(text, term string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], term)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(term)
		beforeOK := start == 0 || !isWordChar(text[start-1])
		afterOK := end == len(text) || !isWordChar(text[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// extractLocation pulls a capitalized place name following a location
// preposition, e.g. "in Beijing" or "based in San Francisco". Returns the
// place as written, or empty when nothing matches.
func extractLocation(query string) string {
	lower := strings.ToLower(query)
	for _, prep := range locationPrepositions {
		idx := 0
		for {
			i := strings.Index(lower[idx:], prep)
			if i < 0 {
				break
			}
			start := idx + i
			if start > 0 && isWordChar(lower[start-1]) {
				idx = start + 1
				continue
			}
			if place := capitalizedRun(query[start+len(prep):]); place != "" {
				return place
			}
			idx = start + 1
		}
	}
	return ""
}

// capitalizedRun returns the leading run of capitalized words, up to three,
// with trailing punctuation stripped.
func capitalizedRun(text string) string {
	words := strings.Fields(text)
	var run []string
	for _, w := range words {
		trimmed := strings.Trim(w, ".,!?;:")
		if trimmed == "" || trimmed[0] < 'A' || trimmed[0] > 'Z' {
			break
		}
		run = append(run, trimmed)
		if len(run) == 3 {
			break
		}
	}
	return strings.Join(run, " ")
}
