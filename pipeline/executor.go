package pipeline

import "github.com/achilleasa/go-restir/tracer"

// An Executor runs a kernel over all rows of a frame and returns once every
// row has been processed. Each dispatch is a full barrier.
type Executor interface {
	Dispatch(stage string, frameH uint32, kernel tracer.Kernel) error
}

type serialExecutor struct{}

// Create an executor that runs kernels on the calling goroutine.
func SerialExecutor() Executor {
	return serialExecutor{}
}

func (serialExecutor) Dispatch(_ string, frameH uint32, kernel tracer.Kernel) error {
	return kernel(0, frameH)
}
