// Package service orchestrates the wizard, the validation schemas and the
// remote sync adapter. The adapter performs the network call; everything
// that touches wizard state after a submission lives here.
package service

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/torralabs/torra-onboarding/internal/domain/entity"
	"github.com/torralabs/torra-onboarding/internal/domain/wizard"
	"github.com/torralabs/torra-onboarding/internal/infrastructure/external/admissao"
	"github.com/torralabs/torra-onboarding/internal/validate"
)

var (
	// ErrSubmissionInFlight is returned when a duplicate submission for the
	// same step arrives while one is still pending.
	ErrSubmissionInFlight = errors.New("submission already in flight for step")

	// ErrInvalidStep is returned for steps outside [1, TotalSteps] or a
	// payload that does not belong to the step.
	ErrInvalidStep = errors.New("invalid step for submission")
)

// SyncAdapter is the remote boundary the service depends on.
type SyncAdapter interface {
	SubmitStep(ctx context.Context, step entity.Step, payload entity.StepPayload) (*admissao.StepResult, *admissao.Error)
}

// SubmitOutcome is the result of one submission attempt. Exactly one of the
// branches is populated: Completed, FieldErrors (local validation) or
// Remote (classified server/network failure). Stale marks a late response
// for a step the user already navigated away from.
type SubmitOutcome struct {
	Completed   bool
	CurrentStep entity.Step
	FieldErrors []validate.FieldError
	Remote      *admissao.Error
	Stale       bool
}

// OnboardingService drives step submission and draft persistence.
type OnboardingService struct {
	wizard  *wizard.Wizard
	adapter SyncAdapter
	opts    validate.Options
	logger  *zap.Logger

	mu       sync.Mutex
	inFlight map[entity.Step]bool
}

// NewOnboardingService creates the service.
func NewOnboardingService(w *wizard.Wizard, adapter SyncAdapter, opts validate.Options, logger *zap.Logger) *OnboardingService {
	return &OnboardingService{
		wizard:   w,
		adapter:  adapter,
		opts:     opts,
		logger:   logger,
		inFlight: map[entity.Step]bool{},
	}
}

// Wizard exposes the underlying state for read access and navigation.
func (s *OnboardingService) Wizard() *wizard.Wizard { return s.wizard }

// SaveDraft stores the payload without validating or submitting: draft data
// and completion are orthogonal.
func (s *OnboardingService) SaveDraft(payload entity.StepPayload) {
	s.wizard.UpdateFormData(payload)
}

// SubmitStep validates the payload, submits it remotely and, on success,
// marks the step complete and advances. Local validation failures block the
// network call entirely. At most one submission per step may be in flight;
// duplicates fail immediately with ErrSubmissionInFlight.
func (s *OnboardingService) SubmitStep(ctx context.Context, step entity.Step, payload entity.StepPayload) (*SubmitOutcome, error) {
	if !step.Valid() || payload.Key() != step.Key() {
		return nil, ErrInvalidStep
	}

	if !s.acquire(step) {
		return nil, ErrSubmissionInFlight
	}
	defer s.release(step)

	// The draft is kept regardless of what happens next.
	s.wizard.UpdateFormData(payload)

	if result := validate.Payload(payload, s.opts); !result.Valid() {
		return &SubmitOutcome{
			CurrentStep: s.wizard.CurrentStep(),
			FieldErrors: result.Errors,
		}, nil
	}

	stepResult, apiErr := s.adapter.SubmitStep(ctx, step, payload)
	if apiErr != nil {
		active := s.wizard.CurrentStep()
		if active != step {
			// Late failure for a step the user already left: log it and
			// keep it out of the UI.
			s.logger.Info("Swallowing late failure for inactive step",
				zap.Int("step", int(step)),
				zap.Int("active_step", int(active)),
				zap.String("kind", string(apiErr.Kind)))
			return &SubmitOutcome{CurrentStep: active, Stale: true}, nil
		}
		return &SubmitOutcome{CurrentStep: active, Remote: apiErr}, nil
	}

	if stepResult.Normalized != nil {
		s.wizard.UpdateFormData(stepResult.Normalized)
	}
	if err := s.wizard.MarkStepComplete(step); err != nil {
		return nil, err
	}

	// A late success still records completion and data, but navigation is
	// only forced while the user is still on the submitted step.
	if s.wizard.CurrentStep() == step && step < entity.TotalSteps {
		if err := s.wizard.SetCurrentStep(step + 1); err != nil {
			return nil, err
		}
	}

	return &SubmitOutcome{
		Completed:   true,
		CurrentStep: s.wizard.CurrentStep(),
	}, nil
}

// Navigate moves to a step after consulting the gating rule. Unreachable
// steps return ErrStepNotReachable along with the furthest reachable step.
func (s *OnboardingService) Navigate(step entity.Step) (entity.Step, error) {
	if !step.Valid() {
		return s.wizard.FurthestReachableStep(), wizard.ErrInvalidStep
	}
	if !s.wizard.CanAccessStep(step) {
		return s.wizard.FurthestReachableStep(), wizard.ErrStepNotReachable
	}
	if err := s.wizard.SetCurrentStep(step); err != nil {
		return s.wizard.FurthestReachableStep(), err
	}
	return step, nil
}

// Reset discards all onboarding progress. Only called from the explicit
// user-confirmed start-over action.
func (s *OnboardingService) Reset() {
	s.logger.Info("Onboarding state reset by user")
	s.wizard.Reset()
}

func (s *OnboardingService) acquire(step entity.Step) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[step] {
		return false
	}
	s.inFlight[step] = true
	return true
}

func (s *OnboardingService) release(step entity.Step) {
	s.mu.Lock()
	delete(s.inFlight, step)
	s.mu.Unlock()
}
