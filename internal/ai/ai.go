// Package ai generates and refines German cover letters through an external
// language model. Services depend only on the Generator interface so tests
// can substitute a deterministic stub.
package ai

import (
	"context"
	"fmt"
	"strings"
)

// CoverLetterInput carries everything the model needs to draft an
// Anschreiben for one application.
type CoverLetterInput struct {
	JobDescription string
	CompanyName    string
	PositionTitle  string
	ApplicantName  string
	ApplicantEmail string
	ApplicantPhone string
	Experience     string
	Skills         string
	Education      string
	Motivation     string
}

// Generator drafts and refines cover letters.
type Generator interface {
	GenerateCoverLetter(ctx context.Context, input CoverLetterInput) (string, error)
	RefineCoverLetter(ctx context.Context, original, instructions string) (string, error)
}

// buildGeneratePrompt assembles the drafting prompt. The letter itself is
// German; the instructions stay English because the model follows them more
// reliably that way.
func buildGeneratePrompt(input CoverLetterInput) string {
	var b strings.Builder

	b.WriteString("You are an expert German job application writer. Generate a professional German cover letter (Anschreiben) for the following job application.\n\n")
	b.WriteString("**Job Information:**\n")
	fmt.Fprintf(&b, "- Company: %s\n", input.CompanyName)
	fmt.Fprintf(&b, "- Position: %s\n", input.PositionTitle)
	fmt.Fprintf(&b, "- Job Description: %s\n\n", input.JobDescription)

	b.WriteString("**Applicant Information:**\n")
	fmt.Fprintf(&b, "- Name: %s\n", input.ApplicantName)
	fmt.Fprintf(&b, "- Email: %s\n", input.ApplicantEmail)
	fmt.Fprintf(&b, "- Phone: %s\n", input.ApplicantPhone)
	if input.Experience != "" {
		fmt.Fprintf(&b, "- Relevant Experience: %s\n", input.Experience)
	}
	if input.Skills != "" {
		fmt.Fprintf(&b, "- Key Skills: %s\n", input.Skills)
	}
	if input.Education != "" {
		fmt.Fprintf(&b, "- Education: %s\n", input.Education)
	}
	if input.Motivation != "" {
		fmt.Fprintf(&b, "- Motivation: %s\n", input.Motivation)
	}

	b.WriteString(`
**Instructions:**
1. Write a professional German cover letter (Anschreiben) following German business letter standards
2. Use the formal "Sie" form throughout
3. Include proper German business letter structure:
   - Sender's address block (right-aligned)
   - Recipient's address block (left-aligned)
   - Date
   - Subject line (Betreff)
   - Salutation (if company name known, use "Sehr geehrte Damen und Herren,")
   - Introduction paragraph
   - Main body (2-3 paragraphs highlighting relevant experience and skills)
   - Closing paragraph
   - Formal closing ("Mit freundlichen Grüßen")
   - Signature placeholder
4. Match the tone to the company and position (professional but not overly stiff)
5. Highlight how the applicant's skills and experience match the job requirements
6. Keep the letter to approximately 300-400 words
7. Make it personalized and compelling, not generic
8. Use proper German grammar, spelling, and business writing conventions

Please generate ONLY the cover letter text, without any additional explanations or comments.`)

	return b.String()
}

// buildRefinePrompt assembles the improvement prompt for an existing letter.
func buildRefinePrompt(original, instructions string) string {
	return fmt.Sprintf(`You are an expert German job application writer. Please improve the following German cover letter (Anschreiben) based on these instructions:

**Improvement Instructions:**
%s

**Original Cover Letter:**
%s

**Instructions:**
1. Maintain the formal German business letter structure
2. Keep using the formal "Sie" form
3. Preserve the professional tone
4. Apply the requested improvements
5. Ensure proper German grammar and spelling
6. Return ONLY the improved cover letter text, without explanations

Please generate the improved cover letter:`, instructions, original)
}
