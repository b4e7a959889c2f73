/*
Package cadence is a policy-driven repetition engine: it invokes a unit of
work repeatedly until a pluggable completion policy declares the loop
finished, while uniformly handling errors, lifecycle observation, and
optional concurrent execution of iterations.

It is the control-flow core for batch-style processing: chunked reads and
writes, retry loops, and throttled pipeline processing all reduce to this
engine with different policies plugged in. Cadence itself carries no
business logic and no durable state; everything lives in a memory-resident
Scope tied to one invocation of the loop.

# Concept

A loop is assembled from four collaborators. The CompletionPolicy decides
when iteration stops and creates the Scope the loop runs in. The
ExceptionHandler decides, per callback error, whether the loop absorbs it
and continues or aborts. Listeners observe the loop at open/close and
around each iteration, with reverse-order teardown for paired
setup/teardown. The Callback is your work.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/cadence"
		"github.com/aretw0/cadence/pkg/policy"
	)

	func main() {
		fixed, err := policy.NewFixedCount(10)
		if err != nil {
			log.Fatal(err)
		}

		rep := cadence.New(cadence.WithPolicy(fixed))

		status, err := rep.Run(context.Background(), func(ctx context.Context, scope *cadence.Scope) (cadence.Status, error) {
			// One chunk of work. Return cadence.Finished to stop early.
			return cadence.Continue, nil
		})
		if err != nil {
			log.Fatal(err)
		}
		log.Println("loop ended with:", status)
	}

For parallel iterations, hand NewConcurrent an Executor (see
pkg/adapters/pool for a ready-made fixed-size pool); completion and error
semantics stay the same, with the first error in completion order deciding
failure.
*/
package cadence
