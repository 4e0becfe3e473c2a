package core

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Neutral visual defaults used when no image exists or analysis fails
const (
	neutralVisualFit         = 50.0
	noImageJustification     = "no image available"
	unavailableJustification = "image analysis unavailable"
)

// VisionEngine audits profile images for socioeconomic indicators through a
// vision-capable oracle. Like the intent engine it never fails: any error
// yields the neutral default profile.
type VisionEngine struct {
	llm     LLMClient
	timeout time.Duration
	logger  *zap.Logger
}

// NewVisionEngine creates a new vision engine
func NewVisionEngine(llm LLMClient, timeout time.Duration, logger *zap.Logger) *VisionEngine {
	return &VisionEngine{
		llm:     llm,
		timeout: timeout,
		logger:  logger,
	}
}

// Analyze audits the referenced image and returns the merged visual
// profile. Callers must not pass an empty reference; the pipeline
// substitutes DefaultVisualProfile for signals without an image.
func (e *VisionEngine) Analyze(ctx context.Context, imageURL string) *VisualProfile {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	analysis, err := e.llm.AnalyzeImage(ctx, imageURL)
	if err != nil {
		e.logger.Error("Visual analysis failed, using neutral profile",
			zap.Error(err),
			zap.String("image_url", imageURL))
		return &VisualProfile{
			VisualFit:     neutralVisualFit,
			Attributes:    []string{},
			Justification: unavailableJustification,
			Tier:          TierStandard,
		}
	}

	tier := analysis.SocioeconomicTier
	if tier == "" {
		tier = TierStandard
	}

	return &VisualProfile{
		VisualFit:     analysis.VisualFit,
		Attributes:    analysis.DetectedLuxuryIndicators,
		Justification: analysis.Justification,
		Tier:          tier,
	}
}

// DefaultVisualProfile is the neutral profile for signals without an image
func DefaultVisualProfile() *VisualProfile {
	return &VisualProfile{
		VisualFit:     neutralVisualFit,
		Attributes:    []string{},
		Justification: noImageJustification,
		Tier:          TierStandard,
	}
}
