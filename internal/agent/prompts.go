// Prompt construction for each oracle call type. Prompts show agents the
// scenario narrative and option text only; canonical move names and payoff
// matrices never appear, so responses reflect the situation rather than the
// game label.

package agent

import (
	"fmt"
	"strings"
)

const thinkingHint = "You may use <thinking>...</thinking> tags for private thoughts."

func (a *Agent) buildCommunicationPrompt(rc RoundContext, transcript []Message) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Your ID: %s\n", a.ID)
	fmt.Fprintf(&b, "Opponent ID: %s\n", rc.OpponentID)
	fmt.Fprintf(&b, "\nCurrent Scenario:\n%s\n", rc.Scenario.Description)

	if rc.Memory != "" {
		fmt.Fprintf(&b, "\nYour memory about %s:\n%s\n", rc.OpponentID, rc.Memory)
	}

	if len(rc.History) > 0 {
		fmt.Fprintf(&b, "\nPrevious rounds with this opponent: %d\n", len(rc.History))
	}

	if len(transcript) > 0 {
		b.WriteString("\nConversation so far:\n")
		for _, msg := range transcript {
			fmt.Fprintf(&b, "%s: %s\n", msg.Sender, msg.Text)
		}
	}

	b.WriteString("\nYou are now speaking DIRECTLY to your opponent. " +
		"Your entire response will be sent to them as-is. " +
		"Do not include any preamble, narration, or meta-commentary - just write your message.\n")

	if a.AllowThinking {
		b.WriteString("\n" + thinkingHint + "\n")
	}
	return b.String()
}

func (a *Agent) buildMovePrompt(rc RoundContext, transcript []Message) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Your ID: %s\n", a.ID)
	fmt.Fprintf(&b, "Opponent ID: %s\n", rc.OpponentID)
	fmt.Fprintf(&b, "\nScenario:\n%s\n", rc.Scenario.Description)

	b.WriteString("\nYour options:\n")
	for _, option := range rc.Scenario.Options {
		fmt.Fprintf(&b, "- %s\n", option)
	}

	if len(transcript) > 0 {
		b.WriteString("\nCommunication phase:\n")
		for _, msg := range transcript {
			fmt.Fprintf(&b, "%s: %s\n", msg.Sender, msg.Text)
		}
	}

	if len(rc.History) > 0 {
		fmt.Fprintf(&b, "\nYou have played %d previous rounds with this opponent.\n", len(rc.History))
		recent := rc.History
		if len(recent) > 3 {
			recent = recent[len(recent)-3:]
		}
		for _, r := range recent {
			fmt.Fprintf(&b, "Round %d: You chose %s, they chose %s\n",
				r.Round, r.OwnMove, r.OpponentMove)
		}
	}

	fmt.Fprintf(&b, "\nChoose one option from: %s\n", strings.Join(rc.Scenario.Options, ", "))
	b.WriteString("Respond with ONLY your choice, no explanation.\n")

	if a.AllowThinking {
		b.WriteString("You may use <thinking>...</thinking> tags for private thoughts before your choice.\n")
	}
	return b.String()
}

func (a *Agent) buildMemoryPrompt(opponentID string, history []RoundResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You just finished playing with %s.\n", opponentID)
	fmt.Fprintf(&b, "Total rounds played: %d\n", len(history))

	b.WriteString("\nSummary of interactions:\n")
	for _, r := range history {
		fmt.Fprintf(&b, "Round %d (%s): You chose %s, they chose %s, your payoff: %d\n",
			r.Round, r.GameType, r.OwnMove, r.OpponentMove, r.OwnPayoff)
	}

	if prior := a.MemoryOf(opponentID); prior != "" {
		fmt.Fprintf(&b, "\nYour previous memory about %s:\n%s\n", opponentID, prior)
	}

	fmt.Fprintf(&b, "\nWrite a brief memory note about %s based on this interaction. ", opponentID)
	b.WriteString("Focus on their play style, trustworthiness, and any patterns you noticed. ")
	fmt.Fprintf(&b, "Maximum %d characters.\n", a.MemoryLimit)

	if a.AllowThinking {
		b.WriteString("\n" + thinkingHint + "\n")
	}
	return b.String()
}

func (a *Agent) buildGossipPrompt(aboutID, toID, memory string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You have the opportunity to share information about %s with %s.\n", aboutID, toID)
	fmt.Fprintf(&b, "\nYour memory about %s:\n%s\n", aboutID, memory)

	fmt.Fprintf(&b, "\nYou are now speaking DIRECTLY to %s. ", toID)
	b.WriteString("Your entire response will be sent to them as-is. ")
	fmt.Fprintf(&b, "Do not include any preamble, narration, or meta-commentary - just write what you want to say about %s.\n", aboutID)
	b.WriteString("Keep it brief and consider your strategic goals.\n")
	b.WriteString("You may choose to be honest, deceptive, or decline to share.\n")

	if a.AllowThinking {
		b.WriteString("\n" + thinkingHint + "\n")
	}
	return b.String()
}

func (a *Agent) buildGossipReceiptPrompt(fromID, aboutID, gossip, prior string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s told you about %s:\n", fromID, aboutID)
	fmt.Fprintf(&b, "%q\n", gossip)

	fmt.Fprintf(&b, "\nYour current memory about %s:\n", aboutID)
	if prior == "" {
		b.WriteString("No prior interactions\n")
	} else {
		b.WriteString(prior + "\n")
	}

	fmt.Fprintf(&b, "\nBased on this gossip and considering %s's potential motivations,\n", fromID)
	fmt.Fprintf(&b, "update your memory about %s. Be skeptical of potentially biased information.\n", aboutID)
	fmt.Fprintf(&b, "Maximum %d characters.\n", a.MemoryLimit)

	if a.AllowThinking {
		b.WriteString("\n" + thinkingHint + "\n")
	}
	return b.String()
}
