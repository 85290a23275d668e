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


package score

import (
	"math"
	"strings"

	"github.com/foundrly/matchcore/core"
)

// Neutral sub-score values used when a dimension has no data to judge.
const (
	neutralScore             = 50
	neutralAvailabilityScore = 70
)

// mutualConnectionPoints is the per-connection bonus above the neutral
// baseline; 10 mutual connections saturate the network score.
const mutualConnectionPoints = 5

// sharedExperiencePoints is the per-shared-institution-or-project bonus
// above the neutral baseline; two shared entries saturate.
const sharedExperiencePoints = 25

// Scorer computes MatchScores under a validated weight table. Stateless
// after construction and safe for concurrent use.
type Scorer struct {
	weights WeightTable
}

// NewScorer creates a Scorer with the given weight table, or the default
// table when nil.
func NewScorer(weights WeightTable) (*Scorer, error) {
	if weights == nil {
		weights = DefaultWeights()
	}
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	return &Scorer{weights: weights}, nil
}

// Score computes the six sub-scores and the weighted composite for one
// (caller, candidate) pair. A nil intent scores with the "other" weight
// table and caller-profile terms only. Never fails: missing data scores
// neutrally, and every value lies in [0,100].
func (s *Scorer) Score(caller, candidate *core.CandidateProfile, intent *core.SearchIntent) core.MatchScore {
	collaboration := core.CollaborationOther
	if intent != nil {
		collaboration = intent.Collaboration
	}
	w, ok := s.weights[collaboration]
	if !ok {
		w = s.weights[core.CollaborationOther]
	}

	ms := core.MatchScore{
		Skills:       skillsMatch(caller, candidate, intent),
		Goals:        goalsAlignment(caller, candidate),
		Location:     locationMatch(caller, candidate),
		Network:      networkOverlap(candidate),
		Availability: availabilityMatch(candidate),
		Experience:   experienceMatch(caller, candidate),
	}
	ms.Overall = composite(ms, w)
	return ms
}

// composite is the fixed linear combination of the six sub-scores.
func composite(ms core.MatchScore, w Weights) int {
	sum := w.Skills*float64(ms.Skills) +
		w.Goals*float64(ms.Goals) +
		w.Location*float64(ms.Location) +
		w.Network*float64(ms.Network) +
		w.Availability*float64(ms.Availability) +
		w.Experience*float64(ms.Experience)
	return clamp(int(math.Round(sum)))
}

// skillsMatch scores skill coverage. When the intent names required skills
// those are the terms that matter; otherwise the caller's own skills are
// the yardstick. The better of the two proportions wins so an explicit
// query for one skill isn't diluted by the caller's unrelated skills.
func skillsMatch(caller, candidate *core.CandidateProfile, intent *core.SearchIntent) int {
	var callerTerms, intentTerms []string
	if caller != nil {
		callerTerms = caller.Skills
	}
	if intent != nil {
		intentTerms = append(intentTerms, intent.RequiredSkills...)
		intentTerms = append(intentTerms, intent.PreferredSkills...)
	}
	if len(callerTerms) == 0 && len(intentTerms) == 0 {
		return neutralScore
	}

	best := coverage(callerTerms, candidate.Skills)
	if p := coverage(intentTerms, candidate.Skills); p > best {
		best = p
	}
	return clamp(int(math.Round(best * 100)))
}

// coverage is the proportion of terms fuzzily present among the
// candidate's skills.
func coverage(terms, candidateSkills []string) float64 {
	if len(terms) == 0 {
		return 0
	}
	matched := 0
	for _, term := range terms {
		if skillPresent(term, candidateSkills) {
			matched++
		}
	}
	return float64(matched) / float64(len(terms))
}

// skillPresent does a case-insensitive substring match in both directions,
// so "ml" matches "ML Engineering" and "machine learning" matches "ML"
// style abbreviations only when one contains the other.
func skillPresent(term string, skills []string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return false
	}
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if strings.Contains(s, term) || strings.Contains(term, s) {
			return true
		}
	}
	return false
}

// goalsAlignment scores the proportion of caller goals that share at least
// one meaningful token with some candidate goal.
func goalsAlignment(caller, candidate *core.CandidateProfile) int {
	if caller == nil || len(caller.Goals) == 0 || len(candidate.Goals) == 0 {
		return neutralScore
	}

	candidateTokens := make(map[string]struct{})
	for _, goal := range candidate.Goals {
		for _, tok := range goalTokens(goal) {
			candidateTokens[tok] = struct{}{}
		}
	}

	aligned := 0
	for _, goal := range caller.Goals {
		for _, tok := range goalTokens(goal) {
			if _, ok := candidateTokens[tok]; ok {
				aligned++
				break
			}
		}
	}
	return clamp(int(math.Round(float64(aligned) / float64(len(caller.Goals)) * 100)))
}

// goalTokens lowercases and drops tokens too short to carry meaning.
func goalTokens(goal string) []string {
	var out []string
	for _, tok := range strings.Fields(strings.ToLower(goal)) {
		tok = strings.Trim(tok, ".,!?;:")
		if len(tok) > 3 {
			out = append(out, tok)
		}
	}
	return out
}

// locationMatch compares "City" or "City, Region" locations: same city
// scores 100, same region 50, anything else 0. Missing locations on
// either side score neutrally.
func locationMatch(caller, candidate *core.CandidateProfile) int {
	if caller == nil || caller.Location == "" || candidate.Location == "" {
		return neutralScore
	}
	callerCity, callerRegion := splitLocation(caller.Location)
	candCity, candRegion := splitLocation(candidate.Location)
	if callerCity == candCity {
		return 100
	}
	if callerRegion != "" && callerRegion == candRegion {
		return 50
	}
	return 0
}

func splitLocation(location string) (city, region string) {
	parts := strings.SplitN(location, ",", 2)
	city = strings.ToLower(strings.TrimSpace(parts[0]))
	if len(parts) == 2 {
		region = strings.ToLower(strings.TrimSpace(parts[1]))
	}
	return city, region
}

// networkOverlap starts from the neutral baseline and climbs with mutual
// connections, saturating at 100.
func networkOverlap(candidate *core.CandidateProfile) int {
	if candidate.MutualConnections <= 0 {
		return neutralScore
	}
	return clamp(neutralScore + candidate.MutualConnections*mutualConnectionPoints)
}

// availabilityMatch is the candidate's observed response rate, or the
// neutral default when unobserved.
func availabilityMatch(candidate *core.CandidateProfile) int {
	if candidate.ResponseRate == core.ResponseRateUnknown {
		return neutralAvailabilityScore
	}
	return clamp(candidate.ResponseRate)
}

// experienceMatch climbs from the neutral baseline with each shared
// institution or project.
func experienceMatch(caller, candidate *core.CandidateProfile) int {
	if caller == nil {
		return neutralScore
	}
	shared := sharedCount(caller.Institutions, candidate.Institutions) +
		sharedCount(caller.Projects, candidate.Projects)
	if shared == 0 {
		return neutralScore
	}
	return clamp(neutralScore + shared*sharedExperiencePoints)
}

func sharedCount(a, b []string) int {
	set := make(map[string]struct{}, len(a))
	for _, s := range a {
		set[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}
	count := 0
	for _, s := range b {
		if _, ok := set[strings.ToLower(strings.TrimSpace(s))]; ok {
			count++
		}
	}
	return count
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
