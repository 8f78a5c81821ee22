package content

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-idea-studio/internal/apperr"
	"github.com/ovaphlow/pitchfork/service-idea-studio/internal/content/entity"
	"github.com/ovaphlow/pitchfork/service-idea-studio/internal/metrics"
)

const DefaultTimeout = 60 * time.Second

var (
	ErrTopicRequired = apperr.InvalidInput("Topic is required")
	ErrMissingAPIKey = apperr.Configuration("Gemini API Key is missing. Please set it in .env")
)

// ContentService turns briefs into generated content. A nil model means the
// API key is not configured.
type ContentService struct {
	model     TextModel
	extractor Extractor
	validate  *validator.Validate
	timeout   time.Duration
	logger    *zap.SugaredLogger
}

func NewContentService(model TextModel, extractor Extractor, timeout time.Duration, logger *zap.SugaredLogger) *ContentService {
	if extractor == nil {
		extractor = BraceExtractor{}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return &ContentService{
		model:     model,
		extractor: extractor,
		validate:  v,
		timeout:   timeout,
		logger:    logger,
	}
}

// Prepare normalizes and validates a brief.
func (s *ContentService) Prepare(b entity.Brief) (entity.Brief, error) {
	b = b.Normalize()
	if b.Topic == "" {
		return b, ErrTopicRequired
	}
	if err := s.validate.Struct(b); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return b, apperr.Wrap(apperr.KindInvalidInput, "Invalid "+verrs[0].Field(), err)
		}
		return b, apperr.Wrap(apperr.KindInvalidInput, "Invalid brief", err)
	}
	return b, nil
}

// Generate makes one model round trip for the brief. There is no retry and
// nothing is cached.
func (s *ContentService) Generate(ctx context.Context, b entity.Brief) (*entity.GeneratedContent, error) {
	b, err := s.Prepare(b)
	if err != nil {
		return nil, err
	}
	if s.model == nil {
		metrics.ContentGenerations.WithLabelValues(b.Platform, string(apperr.KindConfiguration)).Inc()
		return nil, ErrMissingAPIKey
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	text, err := s.model.Generate(ctx, BuildPrompt(b))
	metrics.ContentGenerationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = apperr.Wrap(apperr.KindUpstreamUnavailable, "AI request timed out after "+s.timeout.String(), err)
		} else if apperr.KindOf(err) == apperr.KindInternal {
			err = apperr.Wrap(apperr.KindUpstreamUnavailable, "Failed to generate content: "+err.Error(), err)
		}
		s.record(b, err)
		return nil, err
	}
	s.logger.Debugw("ai response", "platform", b.Platform, "text", text)

	out, err := s.extractor.Extract(text)
	s.record(b, err)
	if err != nil {
		s.logger.Warnw("ai response rejected", "platform", b.Platform, "err", err)
		return nil, err
	}
	return out, nil
}

func (s *ContentService) record(b entity.Brief, err error) {
	result := "success"
	if err != nil {
		result = string(apperr.KindOf(err))
	}
	metrics.ContentGenerations.WithLabelValues(b.Platform, result).Inc()
}
