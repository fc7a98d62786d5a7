package browser

import (
	"context"
	"fmt"
)

// OpenQuiz navigates to a quiz page.
func (p *Page) OpenQuiz(ctx context.Context, path string) error {
	return p.Navigate(ctx, path)
}

// Question waits for the question element and returns its text. An empty
// string means no question is present (quiz finished or page empty).
func (p *Page) Question(ctx context.Context) (string, error) {
	return p.waitText(ctx, p.selectors.Question)
}

// Options returns the visible answer option texts.
func (p *Page) Options(ctx context.Context) ([]string, error) {
	options, err := p.probeTexts(ctx, p.selectors.Options)
	if err != nil {
		return nil, err
	}
	return options, nil
}

// Choose clicks the option with the given text.
func (p *Page) Choose(ctx context.Context, option string) error {
	clicked, err := p.clickByText(ctx, p.selectors.Options, option)
	if err != nil {
		return err
	}
	if !clicked {
		return fmt.Errorf("option %q not clickable", option)
	}
	return nil
}

// Advance clicks the next-question control. Quizzes that auto-advance have
// no such control; that is not an error.
func (p *Page) Advance(ctx context.Context) error {
	_, err := p.clickFirst(ctx, p.selectors.Next)
	return err
}

// Completed reports whether the quiz shows its completion state: either a
// completion marker is present or the question element is gone.
func (p *Page) Completed(ctx context.Context) (bool, error) {
	done, err := p.exists(ctx, p.selectors.Completion)
	if err != nil {
		return false, err
	}
	if done {
		return true, nil
	}
	hasQuestion, err := p.exists(ctx, p.selectors.Question)
	if err != nil {
		return false, err
	}
	return !hasQuestion, nil
}

// SubmitClaim clicks the reward claim control.
func (p *Page) SubmitClaim(ctx context.Context) error {
	clicked, err := p.clickFirst(ctx, p.selectors.Claim)
	if err != nil {
		return err
	}
	if !clicked {
		return fmt.Errorf("claim control not found")
	}
	return nil
}

// ClaimConfirmed reports whether the claim confirmation marker appeared.
func (p *Page) ClaimConfirmed(ctx context.Context) (bool, error) {
	return p.exists(ctx, p.selectors.ClaimConfirmed)
}
