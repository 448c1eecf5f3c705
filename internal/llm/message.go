package llm

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/martin/startup-applier/internal/config"
	"github.com/martin/startup-applier/internal/types"
)

// systemPrompt steers Gemini toward short, specific, human-sounding
// founder-facing messages.
const systemPrompt = `You are helping a candidate write a short, personalized message to apply for a startup role on Y Combinator's Work at a Startup platform. This message goes directly to the founding team.

RULES:
- Write EXACTLY 50-150 words. Count carefully.
- Write in first person as the applicant.
- Be conversational but professional. No corporate speak.
- Reference something SPECIFIC about the company or product, not generic praise.
- Connect the applicant's experience to what the company actually needs.
- Show genuine curiosity about the problem space.
- Do NOT use phrases like "I am excited to apply" or "I believe I would be a great fit".
- Do NOT list skills in bullet points. Weave them into a narrative.
- If the company mentions specific values or personality traits they want, subtly reflect those.
- End with a forward-looking statement (what you want to build/learn), not a plea.
- Sound like a real person wrote this, not a cover letter generator.
- Output ONLY the message text. No subject line, no greeting header, no sign-off.`

// minMessageLength is the board's minimum accepted message length.
const minMessageLength = 50

// fallbackTemplate is used when generation fails after retries. The [EDIT
// THIS] marker forces the reviewer to touch it before approving.
const fallbackTemplate = "Hi! I'm %s, with experience in %s. " +
	"I came across %s and I'm really interested in the %s role. " +
	"[EDIT THIS: mention something specific about what they're building]. " +
	"I'd love to chat about how I can contribute."

// Generator produces application messages and display summaries.
type Generator struct {
	client Client
}

// NewGenerator wraps a Client.
func NewGenerator(client Client) *Generator {
	return &Generator{client: client}
}

// GenerateMessage produces a personalized 50-150 word application message.
// A response under the board's minimum length triggers one regeneration.
func (g *Generator) GenerateMessage(ctx context.Context, job types.Job, profile config.UserProfile, styleNotes string) (string, error) {
	prompt := buildMessagePrompt(job, profile, styleNotes)

	message, err := g.client.GenerateText(ctx, systemPrompt, prompt)
	if err != nil {
		return "", err
	}
	message = strings.TrimSpace(message)

	if len(message) < minMessageLength {
		log.Printf("[LLM] Generated message too short (%d chars), regenerating.", len(message))
		prompt += "\n\nIMPORTANT: Your previous message was too short. Write at least 50 characters."
		message, err = g.client.GenerateText(ctx, systemPrompt, prompt)
		if err != nil {
			return "", err
		}
		message = strings.TrimSpace(message)
	}

	log.Printf("[LLM] Generated message: %d chars, ~%d words", len(message), len(strings.Fields(message)))
	return message, nil
}

// FallbackMessage returns a local template message when the service is
// unavailable. Network-free by design so the pipeline always yields
// something displayable.
func FallbackMessage(job types.Job, profile config.UserProfile) string {
	skills := profile.Skills
	if len(skills) > 3 {
		skills = skills[:3]
	}
	return fmt.Sprintf(fallbackTemplate,
		profile.Name, strings.Join(skills, ", "), job.Company.Name, job.Title)
}

// Close releases the underlying client.
func (g *Generator) Close() error {
	return g.client.Close()
}

// buildMessagePrompt assembles all job and applicant context for the model.
func buildMessagePrompt(job types.Job, profile config.UserProfile, styleNotes string) string {
	var sb strings.Builder

	sb.WriteString("Write a message to apply for this role. Here's the context:\n\n")

	if job.Company.YCBatch != "" {
		fmt.Fprintf(&sb, "COMPANY: %s (%s)\n", job.Company.Name, job.Company.YCBatch)
	} else {
		fmt.Fprintf(&sb, "COMPANY: %s\n", job.Company.Name)
	}
	if job.Company.Description != "" {
		fmt.Fprintf(&sb, "WHAT THEY DO: %s\n", job.Company.Description)
	}

	fmt.Fprintf(&sb, "\nROLE: %s\n", job.Title)
	if job.Description != "" {
		fmt.Fprintf(&sb, "DESCRIPTION: %s\n", job.Description)
	}
	if job.Requirements != "" {
		fmt.Fprintf(&sb, "REQUIREMENTS: %s\n", job.Requirements)
	}
	if job.CultureNotes != "" {
		fmt.Fprintf(&sb, "CULTURE/VALUES: %s\n", job.CultureNotes)
	}
	if job.Location != "" {
		fmt.Fprintf(&sb, "LOCATION: %s\n", job.Location)
	}

	fmt.Fprintf(&sb, "\nABOUT ME:\n%s\n", profile.ExperienceSummary)
	if len(profile.ResumeHighlights) > 0 {
		sb.WriteString("\nKEY THINGS I'VE DONE:\n")
		for _, highlight := range profile.ResumeHighlights {
			fmt.Fprintf(&sb, "- %s\n", highlight)
		}
	}
	fmt.Fprintf(&sb, "\nMY SKILLS: %s\n", strings.Join(profile.Skills, ", "))

	if profile.Interests != "" {
		fmt.Fprintf(&sb, "\nWHAT I'M LOOKING FOR: %s\n", profile.Interests)
	}
	if profile.PersonalityNotes != "" {
		fmt.Fprintf(&sb, "\nMY STYLE: %s\n", profile.PersonalityNotes)
	}
	if styleNotes != "" {
		fmt.Fprintf(&sb, "\nTONE GUIDANCE: %s\n", styleNotes)
	}

	sb.WriteString("\nWrite the message now. 50-150 words, specific to this company.")
	return sb.String()
}
