package content

import (
	"fmt"
	"strings"

	"github.com/ovaphlow/pitchfork/service-idea-studio/internal/content/entity"
)

const responseShape = `{
  "title_suggestions": ["3 catchy titles"],
  "aida_script": {
    "attention": ["3 scroll-stopping hooks"],
    "interest": "Building empathy/interest points.",
    "desire": ["Key solution points"],
    "action": "Clear CTA"
  },
  "content_plan": [
    "Point-by-point content for the video or slides",
    "Next point..."
  ],
  "metadata": {
    "caption": "Compelling caption",
    "hashtags": ["#tag1", "#tag2"]
  }
}`

// BuildPrompt renders the instruction sent to the text model. b must be
// normalized.
func BuildPrompt(b entity.Brief) string {
	var sb strings.Builder
	sb.WriteString("You are an expert marketing content creator for social media.\n")
	fmt.Fprintf(&sb, "Create high-converting content for %s about %q using the AIDA formula (Attention, Interest, Desire, Action).\n", b.Platform, b.Topic)
	fmt.Fprintf(&sb, "The tone should be %s.\n", b.Tone)

	switch {
	case b.IsCarousel():
		fmt.Fprintf(&sb, "This is a CAROUSEL content with exactly %d slides. Provide a script/content for EACH slide clearly in point-form, with exactly %d entries in content_plan, one per slide.\n", b.SlideCount, b.SlideCount)
	case b.IsReels():
		fmt.Fprintf(&sb, "This is a REELS content with a duration of approx %d seconds. Focus on fast-paced, high-engagement hooks and script.\n", b.Duration)
	}

	sb.WriteString("\nRespond ONLY with a single valid JSON object in the following format and nothing else:\n")
	sb.WriteString(responseShape)
	sb.WriteString("\n")
	return sb.String()
}
