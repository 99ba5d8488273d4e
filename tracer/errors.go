package tracer

import "errors"

var (
	ErrTracerBusy    = errors.New("tracer: worker did not accept block request")
	ErrTracerStopped = errors.New("tracer: worker is not running")
)
