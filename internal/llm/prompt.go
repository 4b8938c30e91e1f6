package llm

import (
	"fmt"
	"strings"
)

const (
	// maxPromptContentChars bounds how much mission content goes into one
	// request.
	maxPromptContentChars = 12_000
	// maxPromptContextChars bounds the retrieved context block.
	maxPromptContextChars = 4_000
)

const systemPrompt = `You are an analyst assistant for mission documents. ` +
	`Respond with a single JSON object and nothing else, using exactly these fields: ` +
	`"summary" (3-5 sentence string), ` +
	`"entities" (array of {"type","name","span"} objects; span is the source text the entity came from, may be empty), ` +
	`"risk_level" (one of "low", "medium", "high", "critical"), ` +
	`"explanation" (plain-language string justifying the risk level).`

const repairPrompt = `Your previous reply could not be parsed. Reply again with ONLY a valid JSON object ` +
	`containing the fields "summary" (string), "entities" (array of objects with "type", "name", "span"), ` +
	`"risk_level" (string), and "explanation" (string). No prose, no markdown fences.`

// SystemPrompt returns the fixed extraction instruction.
func SystemPrompt() string { return systemPrompt }

// RepairPrompt returns the stricter reformat instruction used after an
// unparseable reply.
func RepairPrompt() string { return repairPrompt }

// BuildUserPrompt assembles the single extraction request from the mission
// content and any retrieved context chunks. The template is fixed so repeated
// analyses of the same input are comparable.
func BuildUserPrompt(content string, contextChunks []string) string {
	var b strings.Builder
	b.WriteString("Analyze the following mission document.\n\n")

	if len(contextChunks) > 0 {
		b.WriteString("Related context from previously ingested documents:\n")
		total := 0
		for i, chunk := range contextChunks {
			if total+len(chunk) > maxPromptContextChars {
				break
			}
			fmt.Fprintf(&b, "[Context %d] %s\n", i+1, chunk)
			total += len(chunk)
		}
		b.WriteString("\n")
	}

	b.WriteString("Document:\n")
	b.WriteString(truncate(content, maxPromptContentChars))
	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
