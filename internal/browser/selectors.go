package browser

// Selectors lists the CSS selectors probed for each page element. The site
// markup changes without notice, so every element carries fallbacks tried
// in order.
type Selectors struct {
	LoginUsername  []string
	LoginPassword  []string
	LoginSubmit    []string
	LoginFailure   []string
	Question       []string
	Options        []string
	Next           []string
	Completion     []string
	Claim          []string
	ClaimConfirmed []string
}

// DefaultSelectors returns the selector set for the current site markup.
func DefaultSelectors() Selectors {
	return Selectors{
		LoginUsername: []string{
			`input[name="username"]`,
			`input[name="email"]`,
			`#login-username`,
		},
		LoginPassword: []string{
			`input[name="password"]`,
			`#login-password`,
		},
		LoginSubmit: []string{
			`button[type="submit"]`,
			`input[type="submit"]`,
			`#login-button`,
		},
		LoginFailure: []string{
			`.login-error`,
			`.alert-danger`,
			`.error-message`,
		},
		Question: []string{
			`.quiz-question`,
			`.question-text`,
			`#question`,
			`[data-role="question"]`,
		},
		Options: []string{
			`.quiz-answers button`,
			`.quiz-answers li`,
			`.answer-option`,
			`[data-role="answer"]`,
		},
		Next: []string{
			`.quiz-next`,
			`button.next`,
			`#next-question`,
		},
		Completion: []string{
			`.quiz-complete`,
			`.quiz-result`,
			`#quiz-finished`,
		},
		Claim: []string{
			`.claim-reward`,
			`#claim-button`,
			`button.claim`,
		},
		ClaimConfirmed: []string{
			`.reward-claimed`,
			`.claim-success`,
		},
	}
}
