package advisor

import "errors"

var (
	ErrNoAdvice      = errors.New("advisor returned no advice")
	ErrAdvisorFailed = errors.New("advisor failed")
	ErrNotConnected  = errors.New("advisor transport not connected")
)
