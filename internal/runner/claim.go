package runner

import (
	"context"
	"errors"

	"quizbot/internal/browser"
)

// claimReward drives the reward claim: discover the captcha, solve it,
// inject the token, submit, and check for confirmation. Claim pages
// without a captcha are submitted directly.
func (s *runSession) claimReward(ctx context.Context, quizName string) ClaimResult {
	result := ClaimResult{Attempted: true}

	pageURL, siteKey, err := s.page.FindCaptcha(ctx)
	switch {
	case errors.Is(err, browser.ErrCaptchaNotFound):
		s.emitClaim(quizName, ClaimEvent{Type: ClaimNoCaptcha})
	case err != nil:
		result.Error = err.Error()
		s.emitClaim(quizName, ClaimEvent{Type: ClaimFailed, Error: result.Error})
		return result
	default:
		result.SiteKey = siteKey
		s.emitClaim(quizName, ClaimEvent{Type: ClaimCaptchaFound, SiteKey: siteKey})
		s.emitClaim(quizName, ClaimEvent{Type: ClaimSolving, SiteKey: siteKey})
		token, err := s.solver.SolveRecaptcha(ctx, pageURL, siteKey)
		if err != nil {
			result.Error = err.Error()
			s.emitClaim(quizName, ClaimEvent{Type: ClaimFailed, SiteKey: siteKey, Error: result.Error})
			return result
		}
		result.Solved = true
		if err := s.page.InjectCaptchaToken(ctx, token); err != nil {
			result.Error = err.Error()
			s.emitClaim(quizName, ClaimEvent{Type: ClaimFailed, SiteKey: siteKey, Error: result.Error})
			return result
		}
		s.emitClaim(quizName, ClaimEvent{Type: ClaimTokenInjected, SiteKey: siteKey})
	}

	if err := s.page.SubmitClaim(ctx); err != nil {
		result.Error = err.Error()
		s.emitClaim(quizName, ClaimEvent{Type: ClaimFailed, SiteKey: result.SiteKey, Error: result.Error})
		return result
	}
	s.emitClaim(quizName, ClaimEvent{Type: ClaimSubmitted, SiteKey: result.SiteKey})

	confirmed, err := s.page.ClaimConfirmed(ctx)
	if err != nil {
		result.Error = err.Error()
		s.emitClaim(quizName, ClaimEvent{Type: ClaimFailed, SiteKey: result.SiteKey, Error: result.Error})
		return result
	}
	result.Confirmed = confirmed
	if confirmed {
		s.emitClaim(quizName, ClaimEvent{Type: ClaimConfirmed, SiteKey: result.SiteKey})
	} else {
		result.Error = "confirmation marker did not appear"
		s.emitClaim(quizName, ClaimEvent{Type: ClaimFailed, SiteKey: result.SiteKey, Error: result.Error})
	}
	return result
}

// emitClaim fills the shared event fields and forwards to the observer.
func (s *runSession) emitClaim(quizName string, event ClaimEvent) {
	event.Quiz = quizName
	event.EmittedAt = s.deps.Now()
	s.observer.OnClaimEvent(event)
}
