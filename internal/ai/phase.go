package ai

import "strings"

// phase is the negotiation conversation phase, re-derived from the
// full transcript on every call rather than stored anywhere.
type phase int

const (
	// phaseDiscovery: no usable business description yet; ask one
	// clarifying question, propose nothing.
	phaseDiscovery phase = iota
	// phaseProposal: a business domain is inferable; propose 3-5
	// metrics immediately.
	phaseProposal
	// phaseRefinement: the user asked for changes; the next turn's
	// metric list must reflect them immediately.
	phaseRefinement
	// phaseAgreement: the user explicitly approved a previously
	// proposed plan.
	phaseAgreement
)

func (p phase) String() string {
	switch p {
	case phaseDiscovery:
		return "discovery"
	case phaseProposal:
		return "proposal"
	case phaseRefinement:
		return "refinement"
	case phaseAgreement:
		return "agreement"
	default:
		return "unknown"
	}
}

// greetingWords are tokens that carry no business information on their
// own. A transcript whose user turns consist only of these stays in
// discovery.
var greetingWords = map[string]bool{
	"hi": true, "hello": true, "hey": true, "yo": true, "howdy": true,
	"greetings": true, "good": true, "morning": true, "afternoon": true,
	"evening": true, "there": true, "team": true, "thanks": true,
}

// affirmations approve the current plan. Matching is case-insensitive
// substring; an explicit negation nearby vetoes the match.
var affirmations = []string{
	"looks good", "sounds good", "go ahead", "let's do it", "lets do it",
	"let's go", "lets go", "ship it", "approved", "approve", "confirm",
	"perfect", "yes", "yep", "yeah", "sure",
}

var negations = []string{
	"not ", "no,", "no.", "nope", "don't", "dont", "hold on", "wait",
	"not yet", "actually",
}

// changeRequests signal refinement: the user wants the proposed metric
// list altered.
var changeRequests = []string{
	"remove", "drop", "replace", "instead", "swap", "add ", "change",
	"don't care", "dont care", "rather", "without", "not interested",
}

// classifyPhase re-derives the conversation phase from the transcript.
// It is a pure function so the phase heuristics are testable without
// touching the model service. The rules, in precedence order:
//
//  1. agreement: the last turn is an unambiguous user affirmation and
//     an assistant turn came before it (something was proposed);
//  2. refinement: the last user turn asks for a change after a
//     proposal;
//  3. discovery: no user turn carries a business description;
//  4. proposal: everything else.
func classifyPhase(history []ChatMessage) phase {
	last, lastIsUser := lastUserTurn(history)
	proposed := assistantTurnBeforeLast(history)

	if lastIsUser && proposed && isAffirmation(last) {
		return phaseAgreement
	}
	if lastIsUser && proposed && isChangeRequest(last) {
		return phaseRefinement
	}
	if !hasBusinessDescription(history) {
		return phaseDiscovery
	}
	return phaseProposal
}

// lastUserTurn returns the content of the final message when it is a
// user turn. Agreement and refinement are only ever triggered by the
// user speaking last.
func lastUserTurn(history []ChatMessage) (string, bool) {
	if len(history) == 0 {
		return "", false
	}
	m := history[len(history)-1]
	if m.Role != RoleUser {
		return "", false
	}
	return m.Content, true
}

// assistantTurnBeforeLast reports whether the assistant has spoken at
// all before the final message, i.e. whether there is a prior turn a
// user could be agreeing to.
func assistantTurnBeforeLast(history []ChatMessage) bool {
	for i := 0; i < len(history)-1; i++ {
		if history[i].Role == RoleAssistant {
			return true
		}
	}
	return false
}

func isAffirmation(content string) bool {
	s := strings.ToLower(content)
	for _, n := range negations {
		if strings.Contains(s, n) {
			return false
		}
	}
	for _, a := range affirmations {
		if strings.Contains(s, a) {
			return true
		}
	}
	return false
}

func isChangeRequest(content string) bool {
	s := strings.ToLower(content)
	for _, c := range changeRequests {
		if strings.Contains(s, c) {
			return true
		}
	}
	return false
}

// hasBusinessDescription reports whether any user turn says something
// beyond a greeting. Tokens are lowercased and stripped of trailing
// punctuation before the greeting check.
func hasBusinessDescription(history []ChatMessage) bool {
	for _, m := range history {
		if m.Role != RoleUser {
			continue
		}
		for _, tok := range strings.Fields(strings.ToLower(m.Content)) {
			tok = strings.Trim(tok, ".,!?;:'\"")
			if tok == "" {
				continue
			}
			if !greetingWords[tok] {
				return true
			}
		}
	}
	return false
}

// metricFamilies is the fixed domain-to-metric-family lookup used to
// steer proposals. Unmatched domains fall back to the generic family.
var metricFamilies = []struct {
	Domain  string
	Metrics string
}{
	{"Financial/Investment", "Returns, Volatility, Liquidity, Exposure"},
	{"E-Commerce", "Conversion Rate, CAC, Retention, Cart Abandonment"},
	{"SaaS", "MRR/ARR, Churn, NRR, Active Users"},
	{"Manufacturing", "Efficiency, Yield, Downtime, Supply Chain Costs"},
	{"Content/Media", "Engagement Time, DAU/MAU, Virality"},
	{"Other/Generic", "Total Activity, Growth Rate, Top Segments, Error Rate"},
}
