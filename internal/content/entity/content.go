package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	PlatformTikTok    = "tiktok"
	PlatformInstagram = "instagram"
	PlatformYouTube   = "youtube"

	ToneProfessional = "professional"
	ToneCasual       = "casual"
	ToneFunny        = "funny"
	ToneInspiring    = "inspiring"

	ContentTypeReels    = "reels"
	ContentTypeCarousel = "carousel"

	DefaultSlideCount = 4
	DefaultDuration   = 30
)

// Count is a whole number that may arrive as a JSON number or a numeric
// string. Integral floats such as 4.0 are accepted. An empty string or null
// decodes to zero.
type Count int

func (c *Count) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*c = 0
		return nil
	}
	raw := string(b)
	if b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			*c = 0
			return nil
		}
	}
	n, err := parseCount(raw)
	if err != nil {
		return err
	}
	*c = Count(n)
	return nil
}

func parseCount(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("count %q is not a number", s)
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("count %q is not a whole number", s)
	}
	return int(f), nil
}

// Brief describes the content a user wants generated.
type Brief struct {
	Topic       string `json:"topic" validate:"required"`
	Platform    string `json:"platform" validate:"required,oneof=tiktok instagram youtube"`
	Tone        string `json:"tone" validate:"required,oneof=professional casual funny inspiring"`
	ContentType string `json:"contentType,omitempty" validate:"omitempty,oneof=reels carousel"`
	SlideCount  Count  `json:"slideCount,omitempty" validate:"omitempty,min=1,max=20"`
	Duration    Count  `json:"duration,omitempty" validate:"omitempty,min=1,max=600"`
}

// Normalize trims the text fields, fills platform defaults and drops the
// shape fields that do not apply to the platform.
func (b Brief) Normalize() Brief {
	b.Topic = strings.TrimSpace(b.Topic)
	b.Platform = strings.ToLower(strings.TrimSpace(b.Platform))
	b.Tone = strings.ToLower(strings.TrimSpace(b.Tone))
	b.ContentType = strings.ToLower(strings.TrimSpace(b.ContentType))

	if b.Platform != PlatformInstagram {
		b.ContentType = ""
		b.SlideCount = 0
		b.Duration = 0
		return b
	}
	if b.ContentType == "" {
		b.ContentType = ContentTypeReels
	}
	switch b.ContentType {
	case ContentTypeCarousel:
		b.Duration = 0
		if b.SlideCount == 0 {
			b.SlideCount = DefaultSlideCount
		}
	case ContentTypeReels:
		b.SlideCount = 0
		if b.Duration == 0 {
			b.Duration = DefaultDuration
		}
	}
	return b
}

func (b Brief) IsCarousel() bool {
	return b.Platform == PlatformInstagram && b.ContentType == ContentTypeCarousel
}

func (b Brief) IsReels() bool {
	return b.Platform == PlatformInstagram && b.ContentType == ContentTypeReels
}

// AIDAScript is copy structured as Attention, Interest, Desire, Action.
type AIDAScript struct {
	Attention []string `json:"attention"`
	Interest  string   `json:"interest"`
	Desire    []string `json:"desire"`
	Action    string   `json:"action"`
}

type Metadata struct {
	Caption  string   `json:"caption"`
	Hashtags []string `json:"hashtags"`
}

// GeneratedContent is the structured reply of the text model.
type GeneratedContent struct {
	TitleSuggestions []string   `json:"title_suggestions"`
	AIDAScript       AIDAScript `json:"aida_script"`
	ContentPlan      []string   `json:"content_plan,omitempty"`
	Metadata         Metadata   `json:"metadata"`
}

// Option is a selectable value of the input form.
type Option struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Options lists the closed sets a brief draws from.
type Options struct {
	Platforms         []Option `json:"platforms"`
	Tones             []Option `json:"tones"`
	ContentTypes      []Option `json:"contentTypes"`
	SlideCounts       []int    `json:"slideCounts"`
	Durations         []int    `json:"durations"`
	DefaultPlatform   string   `json:"defaultPlatform"`
	DefaultTone       string   `json:"defaultTone"`
	DefaultType       string   `json:"defaultContentType"`
	DefaultSlideCount int      `json:"defaultSlideCount"`
	DefaultDuration   int      `json:"defaultDuration"`
}

func FormOptions() Options {
	return Options{
		Platforms: []Option{
			{ID: PlatformTikTok, Name: "TikTok"},
			{ID: PlatformInstagram, Name: "Instagram"},
			{ID: PlatformYouTube, Name: "YouTube Shorts"},
		},
		Tones: []Option{
			{ID: ToneProfessional, Name: "Profesional"},
			{ID: ToneCasual, Name: "Santai"},
			{ID: ToneFunny, Name: "Lucu/Sarkas"},
			{ID: ToneInspiring, Name: "Inspiratif"},
		},
		ContentTypes: []Option{
			{ID: ContentTypeReels, Name: "Reels"},
			{ID: ContentTypeCarousel, Name: "Carousel"},
		},
		SlideCounts:       []int{2, 4, 8, 10},
		Durations:         []int{30, 40, 60},
		DefaultPlatform:   PlatformTikTok,
		DefaultTone:       ToneCasual,
		DefaultType:       ContentTypeReels,
		DefaultSlideCount: DefaultSlideCount,
		DefaultDuration:   DefaultDuration,
	}
}
