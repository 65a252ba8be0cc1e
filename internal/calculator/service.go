package calculator

import (
	"context"
	"log"

	"github.com/vivafit/vivafit-backend/internal/common/utils"
)

type Service interface {
	CalculatePlan(ctx context.Context, input *Input) (*Results, error)
}

type service struct {
	explainer Explainer
}

func NewService(explainer Explainer) Service {
	return &service{explainer: explainer}
}

// CalculatePlan validates the input, runs the pure computation, and attaches
// the narrative explanation. Explanation failures degrade to the static
// fallback; the bullet summary is always present.
func (s *service) CalculatePlan(ctx context.Context, input *Input) (*Results, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}

	results := Calculate(input)

	explanation := fallbackExplanation
	if s.explainer != nil {
		if text, err := s.explainer.Explain(ctx, input, results); err == nil && text != "" {
			explanation = text
		} else if err != nil {
			log.Printf("calculator: explanation generation failed: %v", err)
		}
	}
	results.Explanation = explanation + summaryBullets(results)

	return results, nil
}
