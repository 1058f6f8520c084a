package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCaller stands in for the Gemini client. It records the prompts
// and either fails or fills the output via fn.
type fakeCaller struct {
	err        error
	fn         func(out any)
	calls      int
	lastSystem string
	lastUser   string
}

func (f *fakeCaller) generateJSON(_ context.Context, system, user string, _ *genai.Schema, out any) error {
	f.calls++
	f.lastSystem = system
	f.lastUser = user
	if f.err != nil {
		return f.err
	}
	if f.fn != nil {
		f.fn(out)
	}
	return nil
}

func TestNegotiateDegradesOnModelFailure(t *testing.T) {
	analyst := &Analyst{caller: &fakeCaller{err: errors.New("boom")}}

	result := analyst.Negotiate(context.Background(), []ChatMessage{
		{Role: RoleUser, Content: "I sell handmade shoes online"},
	})

	assert.Equal(t, degradedMessage, result.AIMessage)
	require.NotNil(t, result.SuggestedMetrics)
	assert.Empty(t, result.SuggestedMetrics)
	assert.False(t, result.IsReadyToCreate)
}

func TestNegotiateClampsDiscoveryTurns(t *testing.T) {
	fake := &fakeCaller{fn: func(out any) {
		r := out.(*ChatTurnResult)
		r.AIMessage = "Here are some metrics!"
		r.SuggestedMetrics = []MetricProposal{{Name: "MRR", Description: "Monthly recurring revenue"}}
		r.IsReadyToCreate = true
	}}
	analyst := &Analyst{caller: fake}

	result := analyst.Negotiate(context.Background(), []ChatMessage{
		{Role: RoleUser, Content: "Hi"},
	})

	assert.Empty(t, result.SuggestedMetrics, "discovery turns carry no proposals")
	assert.False(t, result.IsReadyToCreate)
}

func TestNegotiateForcesReadyOnAgreement(t *testing.T) {
	fake := &fakeCaller{fn: func(out any) {
		r := out.(*ChatTurnResult)
		r.AIMessage = "Great, creating your dashboard."
		r.SuggestedMetrics = []MetricProposal{{Name: "Conversion Rate", Description: "Orders per visit"}}
		r.IsReadyToCreate = false
	}}
	analyst := &Analyst{caller: fake}

	result := analyst.Negotiate(context.Background(), []ChatMessage{
		{Role: RoleUser, Content: "I sell handmade shoes online"},
		{Role: RoleAssistant, Content: "I suggest Conversion Rate, CAC and Retention."},
		{Role: RoleUser, Content: "looks good, go ahead"},
	})

	assert.True(t, result.IsReadyToCreate, "explicit approval must force readiness")
	assert.Len(t, result.SuggestedMetrics, 1)
}

func TestNegotiateOverridesPrematureReadiness(t *testing.T) {
	fake := &fakeCaller{fn: func(out any) {
		r := out.(*ChatTurnResult)
		r.AIMessage = "How about these?"
		r.SuggestedMetrics = []MetricProposal{{Name: "Churn", Description: "Subscription cancellations"}}
		r.IsReadyToCreate = true
	}}
	analyst := &Analyst{caller: fake}

	result := analyst.Negotiate(context.Background(), []ChatMessage{
		{Role: RoleUser, Content: "we run a SaaS for dentists"},
	})

	assert.False(t, result.IsReadyToCreate, "readiness is never inferred without an explicit approval")
}

func TestNegotiateNormalizesNilMetrics(t *testing.T) {
	fake := &fakeCaller{fn: func(out any) {
		r := out.(*ChatTurnResult)
		r.AIMessage = "Tell me more."
	}}
	analyst := &Analyst{caller: fake}

	result := analyst.Negotiate(context.Background(), []ChatMessage{
		{Role: RoleUser, Content: "we run a SaaS for dentists"},
	})

	require.NotNil(t, result.SuggestedMetrics)
	assert.Empty(t, result.SuggestedMetrics)
}
