package content

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovaphlow/pitchfork/service-idea-studio/internal/apperr"
	"github.com/ovaphlow/pitchfork/service-idea-studio/internal/content/entity"
)

const validReply = `{
  "title_suggestions": ["A", "B", "C"],
  "aida_script": {"attention": ["h1"], "interest": "i", "desire": ["d1", "d2"], "action": "buy"},
  "content_plan": ["p1", "p2"],
  "metadata": {"caption": "cap", "hashtags": ["#a", "#b"]}
}`

func TestBraceExtractorStripsProse(t *testing.T) {
	text := "Sure! Here is your content:\n```json\n" + validReply + "\n```\nGood luck {not json"
	// the last '}' belongs to the JSON object, the trailing brace is an opener
	out, err := BraceExtractor{}.Extract(text)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, out.TitleSuggestions)
	assert.Equal(t, "buy", out.AIDAScript.Action)
	assert.Equal(t, []string{"p1", "p2"}, out.ContentPlan)
	assert.Equal(t, []string{"#a", "#b"}, out.Metadata.Hashtags)
}

func TestBraceExtractorMatchesDirectParse(t *testing.T) {
	var direct entity.GeneratedContent
	require.NoError(t, json.Unmarshal([]byte(validReply), &direct))

	bare, err := BraceExtractor{}.Extract(validReply)
	require.NoError(t, err)
	assert.Equal(t, direct, *bare)

	wrapped, err := BraceExtractor{}.Extract("Here is the plan you asked for:\n\n" + validReply + "\n\nLet me know if you need changes.")
	require.NoError(t, err)
	assert.Equal(t, *bare, *wrapped)
}

func TestBraceExtractorWholeTextFallback(t *testing.T) {
	_, err := BraceExtractor{}.Extract("I cannot help with that.")
	assert.ErrorIs(t, err, apperr.ErrUpstreamFormat)
}

func TestBraceExtractorInvalidSpan(t *testing.T) {
	_, err := BraceExtractor{}.Extract(`prefix {"title_suggestions": [} suffix`)
	assert.ErrorIs(t, err, apperr.ErrUpstreamFormat)
}

func TestBraceExtractorContentPlanOptional(t *testing.T) {
	out, err := BraceExtractor{}.Extract(`{"title_suggestions":[],"aida_script":{"attention":[],"interest":"","desire":[],"action":""},"metadata":{"caption":"","hashtags":[]}}`)
	require.NoError(t, err)
	assert.Nil(t, out.ContentPlan)
}

func TestBraceExtractorMissingFields(t *testing.T) {
	cases := map[string]string{
		"no metadata":   `{"title_suggestions":["a"],"aida_script":{"attention":["h"],"interest":"i","desire":["d"],"action":"a"}}`,
		"no action":     `{"title_suggestions":["a"],"aida_script":{"attention":["h"],"interest":"i","desire":["d"]},"metadata":{"caption":"c","hashtags":[]}}`,
		"no titles":     `{"aida_script":{"attention":["h"],"interest":"i","desire":["d"],"action":"a"},"metadata":{"caption":"c","hashtags":[]}}`,
		"no hashtags":   `{"title_suggestions":["a"],"aida_script":{"attention":["h"],"interest":"i","desire":["d"],"action":"a"},"metadata":{"caption":"c"}}`,
		"wrong type":    `{"title_suggestions":"a","aida_script":{},"metadata":{}}`,
		"array not obj": `[1, 2, 3]`,
	}
	for name, text := range cases {
		out, err := BraceExtractor{}.Extract(text)
		assert.Nil(t, out, name)
		assert.ErrorIs(t, err, apperr.ErrUpstreamFormat, name)
	}
}
