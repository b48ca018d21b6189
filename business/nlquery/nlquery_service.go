package nlquery

import (
	"context"
	"fmt"
	"strings"

	"intellidash/domain"
	"intellidash/pkg/logger"
	"intellidash/pkg/metrics"

	"github.com/go-playground/validator/v10"
)

// Agent contract interface
type Agent interface {
	Invoke(ctx context.Context, prompt string) (domain.AgentOutput, error)
}

type nlQueryService struct {
	agent    Agent
	validate *validator.Validate
}

func NewNLQueryService(agent Agent, validate *validator.Validate) *nlQueryService {
	return &nlQueryService{
		agent:    agent,
		validate: validate,
	}
}

// Query hands prompt to the agent. Agent errors and panics become an
// NLQueryFailure; only an empty prompt is returned as an error.
func (s *nlQueryService) Query(ctx context.Context, prompt string) (domain.NLQueryResult, error) {
	prompt = strings.TrimSpace(prompt)
	if err := s.validate.Var(prompt, "required"); err != nil {
		metrics.NLQueryTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		return nil, domain.ErrEmptyPrompt
	}

	output, err := s.invoke(ctx, prompt)
	if err != nil {
		logger.Warn("natural language query failed", "prompt", prompt, "sql", output.SQL, "error", err)
		metrics.NLQueryTotal.WithLabelValues(metrics.OutcomeFailure).Inc()
		return domain.NLQueryFailure{Message: err.Error()}, nil
	}

	logger.Info("natural language query answered", "sql", output.SQL, "rows", len(output.Rows))
	metrics.NLQueryTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()

	rows := output.Rows
	if rows == nil {
		rows = []map[string]any{}
	}

	return domain.NLQuerySuccess{Data: rows}, nil
}

func (s *nlQueryService) invoke(ctx context.Context, prompt string) (output domain.AgentOutput, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("agent panic: %v", r)
		}
	}()

	return s.agent.Invoke(ctx, prompt)
}
