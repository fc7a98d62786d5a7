package browser

import "errors"

// ErrNavigation indicates the target site could not be reached or a page
// load failed. Escalates to a distinct exit code.
var ErrNavigation = errors.New("navigation failed")

// ErrLoginFailed indicates credentials were rejected or the login flow did
// not reach a logged-in state. Escalates to a distinct exit code.
var ErrLoginFailed = errors.New("login failed")

// ErrCaptchaNotFound indicates no captcha widget was discovered on the page
// and no fallback site key was configured.
var ErrCaptchaNotFound = errors.New("captcha not found")
