package content

import (
	"encoding/json"
	"strings"

	"github.com/ovaphlow/pitchfork/service-idea-studio/internal/apperr"
	"github.com/ovaphlow/pitchfork/service-idea-studio/internal/content/entity"
)

// Extractor turns a free-text model reply into structured content.
type Extractor interface {
	Extract(text string) (*entity.GeneratedContent, error)
}

// BraceExtractor parses the span from the first '{' to the last '}'. When no
// such span exists the whole reply is parsed.
type BraceExtractor struct{}

func (BraceExtractor) Extract(text string) (*entity.GeneratedContent, error) {
	candidate := text
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		candidate = text[start : end+1]
	}

	var raw generatedContentWire
	if err := json.Unmarshal([]byte(candidate), &raw); err != nil {
		return nil, apperr.Wrap(apperr.KindUpstreamFormat, "AI response is not valid JSON: "+err.Error(), err)
	}
	return raw.toEntity()
}

// generatedContentWire uses pointers so absent fields can be told apart from
// empty ones.
type generatedContentWire struct {
	TitleSuggestions []string `json:"title_suggestions"`
	AIDAScript       *struct {
		Attention []string `json:"attention"`
		Interest  *string  `json:"interest"`
		Desire    []string `json:"desire"`
		Action    *string  `json:"action"`
	} `json:"aida_script"`
	ContentPlan []string `json:"content_plan"`
	Metadata    *struct {
		Caption  *string  `json:"caption"`
		Hashtags []string `json:"hashtags"`
	} `json:"metadata"`
}

func (w generatedContentWire) toEntity() (*entity.GeneratedContent, error) {
	var missing []string
	if w.TitleSuggestions == nil {
		missing = append(missing, "title_suggestions")
	}
	if w.AIDAScript == nil {
		missing = append(missing, "aida_script")
	} else {
		if w.AIDAScript.Attention == nil {
			missing = append(missing, "aida_script.attention")
		}
		if w.AIDAScript.Interest == nil {
			missing = append(missing, "aida_script.interest")
		}
		if w.AIDAScript.Desire == nil {
			missing = append(missing, "aida_script.desire")
		}
		if w.AIDAScript.Action == nil {
			missing = append(missing, "aida_script.action")
		}
	}
	if w.Metadata == nil {
		missing = append(missing, "metadata")
	} else {
		if w.Metadata.Caption == nil {
			missing = append(missing, "metadata.caption")
		}
		if w.Metadata.Hashtags == nil {
			missing = append(missing, "metadata.hashtags")
		}
	}
	if len(missing) > 0 {
		return nil, apperr.New(apperr.KindUpstreamFormat, "AI response is missing fields: "+strings.Join(missing, ", "))
	}

	return &entity.GeneratedContent{
		TitleSuggestions: w.TitleSuggestions,
		AIDAScript: entity.AIDAScript{
			Attention: w.AIDAScript.Attention,
			Interest:  *w.AIDAScript.Interest,
			Desire:    w.AIDAScript.Desire,
			Action:    *w.AIDAScript.Action,
		},
		ContentPlan: w.ContentPlan,
		Metadata: entity.Metadata{
			Caption:  *w.Metadata.Caption,
			Hashtags: w.Metadata.Hashtags,
		},
	}, nil
}
