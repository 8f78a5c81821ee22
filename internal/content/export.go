package content

import (
	"fmt"
	"strings"

	"github.com/ovaphlow/pitchfork/service-idea-studio/internal/content/entity"
)

// ExportFilename is the attachment name of the plain-text export.
const ExportFilename = "idea-studio-content.txt"

// RenderText formats generated content as the downloadable text file.
func RenderText(c entity.GeneratedContent) string {
	var sb strings.Builder
	sb.WriteString("TITLE SUGGESTIONS:\n")
	writeLines(&sb, c.TitleSuggestions, "")
	sb.WriteString("\nAIDA SCRIPT:\n")
	sb.WriteString("Attention (Hooks):\n")
	writeLines(&sb, c.AIDAScript.Attention, "")
	sb.WriteString("\nInterest:\n")
	sb.WriteString(c.AIDAScript.Interest + "\n")
	sb.WriteString("\nDesire:\n")
	writeLines(&sb, c.AIDAScript.Desire, "- ")
	sb.WriteString("\nAction:\n")
	sb.WriteString(c.AIDAScript.Action + "\n")

	if len(c.ContentPlan) > 0 {
		sb.WriteString("\nCONTENT PLAN (POINTS):\n")
		for i, p := range c.ContentPlan {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, p)
		}
	}

	sb.WriteString("\nCAPTION & HASHTAGS:\n")
	sb.WriteString(c.Metadata.Caption + "\n")
	sb.WriteString("\nHashtags:\n")
	sb.WriteString(strings.Join(c.Metadata.Hashtags, " ") + "\n")
	return sb.String()
}

func writeLines(sb *strings.Builder, lines []string, prefix string) {
	for _, l := range lines {
		sb.WriteString(prefix + l + "\n")
	}
}
