package diagnostics

import (
	"strings"

	"github.com/JaimeStill/scribe/internal/agents"
)

// DefaultPrompt is sent when the owner has no agents.
func DefaultPrompt(transcript string) string {
	return "Answer me: '" + transcript + "'"
}

// AgentPrompt composes the prompt for the agent at position index.
//
// The first agent answers the transcript directly and its own prompt text is
// not sent. Later agents receive their prompt under "Apply prompt", preceded
// by the names of their connected agents. Connected agents are listed by
// name only; their outputs are not substituted.
func AgentPrompt(index int, agent agents.Agent, contextText, transcript, freeContext string) string {
	promptContext := contextText
	if freeContext != "" {
		promptContext += "\n" + freeContext
	}

	var transcriptSegment string
	if agent.IncludeTranscript {
		transcriptSegment = "\nThe Transcript: " + transcript
	}

	var b strings.Builder
	b.WriteString("Having context:\n'")
	b.WriteString(promptContext)
	b.WriteString("'")

	if index == 0 {
		b.WriteString(" Answer me:\n")
		b.WriteString(transcriptSegment)
		return b.String()
	}

	if transcriptSegment != "" {
		b.WriteString("\n")
		b.WriteString(transcriptSegment)
	}

	b.WriteString("\n")
	b.WriteString(agentResponses(agent.ConnectedAgents))
	b.WriteString("\nApply prompt:\n")
	b.WriteString(agent.Prompt)

	return b.String()
}

func agentResponses(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return "Agent responses: " + strings.Join(names, ", ")
}

// agentTemperature treats an unset (zero) temperature as the agent default.
func agentTemperature(a agents.Agent) float64 {
	if a.Temperature == 0 {
		return agents.DefaultTemperature
	}
	return a.Temperature
}
