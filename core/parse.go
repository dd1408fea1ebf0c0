package core

import (
	"encoding/json"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"teamlens/schema"
)

// errNoJSON is returned when no parseable JSON object exists in a response.
var errNoJSON = errors.New("no JSON object found in model response")

// jsonObjectPattern grabs the widest {...} span in a free-form reply.
var jsonObjectPattern = regexp.MustCompile(`\{[\s\S]*\}`)

// rawExpert is the loosely-typed intermediate representation of a single
// expert in the model reply. Every field is optional and may carry the
// wrong type; mapping to schema.Expert validates field by field.
type rawExpert struct {
	Name               any `json:"name"`
	Email              any `json:"email"`
	Expertise          any `json:"expertise"`
	Contributions      any `json:"contributions"`
	Specializations    any `json:"specializations"`
	CommunicationStyle any `json:"communicationStyle"`
	TeamRole           any `json:"teamRole"`
	HiddenStrengths    any `json:"hiddenStrengths"`
	IdealChallenges    any `json:"idealChallenges"`
	Workload           any `json:"workload"`
	CollaborationStyle any `json:"collaborationStyle"`
	RiskFactors        any `json:"riskFactors"`
}

// rawTeamHealth mirrors the optional teamHealth object.
type rawTeamHealth struct {
	BusFactor          any `json:"busFactor"`
	KnowledgeSpread    any `json:"knowledgeSpread"`
	CollaborationScore any `json:"collaborationScore"`
	Summary            any `json:"summary"`
}

// rawAnalysis is the untrusted decode target for the whole reply.
type rawAnalysis struct {
	Experts           []rawExpert    `json:"experts"`
	Insights          any            `json:"insights"`
	TeamDynamics      any            `json:"teamDynamics"`
	ChallengeMatching any            `json:"challengeMatching"`
	TeamHealth        *rawTeamHealth `json:"teamHealth"`
}

// parsedAnalysis is the validated result of a model reply.
type parsedAnalysis struct {
	Experts           []schema.Expert
	Insights          []string
	TeamDynamics      string
	ChallengeMatching string
	TeamHealth        *schema.TeamHealth
}

// parseModelResponse extracts and validates the JSON payload from free-form
// model output. It strips Markdown fences, attempts a direct parse, and
// falls back to a balanced-brace regex extraction. Failure to find valid
// JSON is reported as an error, never a panic.
func parseModelResponse(raw string) (*parsedAnalysis, error) {
	cleaned := stripFences(raw)

	var decoded rawAnalysis
	if err := json.Unmarshal([]byte(cleaned), &decoded); err != nil {
		span := jsonObjectPattern.FindString(cleaned)
		if span == "" {
			return nil, errNoJSON
		}
		if err := json.Unmarshal([]byte(span), &decoded); err != nil {
			return nil, errNoJSON
		}
	}

	parsed := &parsedAnalysis{
		Insights:          asStringSlice(decoded.Insights),
		TeamDynamics:      asString(decoded.TeamDynamics, ""),
		ChallengeMatching: asString(decoded.ChallengeMatching, ""),
	}
	for _, re := range decoded.Experts {
		parsed.Experts = append(parsed.Experts, mapExpert(re))
	}
	if decoded.TeamHealth != nil {
		parsed.TeamHealth = &schema.TeamHealth{
			BusFactor:          asInt(decoded.TeamHealth.BusFactor, 0),
			KnowledgeSpread:    asFloat(decoded.TeamHealth.KnowledgeSpread, 0),
			CollaborationScore: asFloat(decoded.TeamHealth.CollaborationScore, 0),
			Summary:            asString(decoded.TeamHealth.Summary, ""),
		}
	}
	return parsed, nil
}

// stripFences removes leading/trailing Markdown code-fence markers.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
	}
	return strings.TrimSpace(s)
}

// mapExpert converts a loosely-typed expert into the strongly-typed record,
// defaulting every missing or mistyped field so a partially malformed reply
// never crashes downstream mapping.
func mapExpert(re rawExpert) schema.Expert {
	return schema.Expert{
		Name:               asString(re.Name, "Unknown contributor"),
		Email:              asString(re.Email, ""),
		Expertise:          clampScore(asInt(re.Expertise, 0)),
		Contributions:      asInt(re.Contributions, 0),
		Specializations:    asStringSlice(re.Specializations),
		CommunicationStyle: asString(re.CommunicationStyle, ""),
		TeamRole:           asString(re.TeamRole, ""),
		HiddenStrengths:    asStringSlice(re.HiddenStrengths),
		IdealChallenges:    asStringSlice(re.IdealChallenges),
		Workload:           asString(re.Workload, ""),
		CollaborationStyle: asString(re.CollaborationStyle, ""),
		RiskFactors:        asStringSlice(re.RiskFactors),
	}
}

// clampScore bounds an expertise score to 0-100.
func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// asString coerces an untyped JSON value to a string with a default.
func asString(v any, def string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return def
}

// asInt coerces an untyped JSON value to an int. JSON numbers decode as
// float64; numeric strings are also accepted.
func asInt(v any, def int) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case string:
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return int(parsed)
		}
	}
	return def
}

// asFloat coerces an untyped JSON value to a float64.
func asFloat(v any, def float64) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	return def
}

// asStringSlice coerces an untyped JSON value to a []string, keeping only
// string elements. Non-arrays become an empty slice.
func asStringSlice(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(arr))
	for _, el := range arr {
		if s, ok := el.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
