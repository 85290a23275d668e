package openai

import (
	"fmt"
	"strings"

	"github.com/foundrly/matchcore/ai"
)

const intentResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "required_skills": {
      "type": "array",
      "items": {"type": "string"}
    },
    "preferred_skills": {
      "type": "array",
      "items": {"type": "string"}
    },
    "collaboration": {
      "type": "string"
    },
    "location": {
      "type": "string"
    }
  },
  "required": ["required_skills", "preferred_skills", "collaboration", "location"],
  "additionalProperties": false
}`

const intentPromptTemplate = `You translate a person's free-text partner-search query into structured retrieval parameters.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- "required_skills" are skills the query explicitly demands of the candidate. Keep original casing of well-known technology names ("Python", "iOS"), lowercase everything else.
- "preferred_skills" are skills implied but not demanded. If the query references the searcher themselves ("someone like me"), draw preferred skills from the searcher context given below.
- "collaboration" must be exactly one of: %s.
- "location" is a city or region name if the query constrains one, otherwise "". Use the searcher's own location only when the query says "near me" or "local".
- Do not invent skills that are neither in the query nor in the searcher context.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Searcher context:
%s

Example:
Query: "find me a Python co-founder"
Output:
{
  "required_skills": ["Python"],
  "preferred_skills": [],
  "collaboration": "co-founder",
  "location": ""
}

Example (implicit self-reference):
Query: "someone like me but in design"
Searcher skills: Python, ML
Output:
{
  "required_skills": ["design"],
  "preferred_skills": ["Python", "ML"],
  "collaboration": "collaborator",
  "location": ""
}

Example (location constrained, informal):
Query: "ios mentor in shanghai pls"
Output:
{
  "required_skills": ["iOS"],
  "preferred_skills": [],
  "collaboration": "mentor",
  "location": "Shanghai"
}`

// buildIntentPrompt creates the system prompt with the collaboration
// vocabulary and caller context embedded.
func buildIntentPrompt(caller ai.CallerContext) string {
	var ctx strings.Builder
	if len(caller.Skills) > 0 {
		ctx.WriteString("skills: " + strings.Join(caller.Skills, ", ") + "\n")
	}
	if len(caller.Goals) > 0 {
		ctx.WriteString("goals: " + strings.Join(caller.Goals, ", ") + "\n")
	}
	if caller.Location != "" {
		ctx.WriteString("location: " + caller.Location + "\n")
	}
	if ctx.Len() == 0 {
		ctx.WriteString("(none)")
	}

	return fmt.Sprintf(intentPromptTemplate,
		intentResponseSchema,
		strings.Join(ai.CollaborationNames, ", "),
		strings.TrimSpace(ctx.String()))
}
