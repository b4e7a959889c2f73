package ports

// Executor is the worker pool the concurrent engine submits iterations to.
// The pool is an external collaborator: the engine never owns, sizes or
// shuts it down, it only submits work and awaits completions.
//
// Submit either schedules task for asynchronous execution and returns nil,
// or returns an error when the task could not be scheduled at all (pool
// shut down, queue full). A submission error is routed through the loop's
// ExceptionHandler exactly like a callback error raised at submission
// time.
type Executor interface {
	Submit(task func()) error
}
