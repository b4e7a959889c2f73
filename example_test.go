package cadence_test

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/aretw0/cadence"
	"github.com/aretw0/cadence/pkg/handler"
	"github.com/aretw0/cadence/pkg/policy"
)

// ExampleNew demonstrates a bounded loop with error absorption: up to five
// chunks of work, tolerating a single transient failure.
func ExampleNew() {
	// 1. Budget: at most 5 iterations.
	fixed, err := policy.NewFixedCount(5)
	if err != nil {
		log.Fatal(err)
	}

	// 2. Tolerance: absorb one transient error, propagate the rest.
	transient := errors.New("transient")
	skip, err := handler.NewThreshold(1, handler.WithMatcher(handler.Is(transient)))
	if err != nil {
		log.Fatal(err)
	}

	rep := cadence.New(
		cadence.WithPolicy(fixed),
		cadence.WithExceptionHandler(skip),
	)

	// 3. Run. The second chunk fails once; the loop shrugs and goes on.
	chunk := 0
	status, err := rep.Run(context.Background(), func(ctx context.Context, scope *cadence.Scope) (cadence.Status, error) {
		chunk++
		if chunk == 2 {
			return cadence.Continue, transient
		}
		fmt.Println("chunk", chunk)
		return cadence.Continue, nil
	})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("status:", status)

	// Output:
	// chunk 1
	// chunk 3
	// chunk 4
	// chunk 5
	// status: continue
}

// ExampleRepeater_Run_untilFinished shows the default policy: the loop
// runs until the callback itself declares completion.
func ExampleRepeater_Run_untilFinished() {
	rep := cadence.New()

	remaining := 3
	status, err := rep.Run(context.Background(), func(ctx context.Context, scope *cadence.Scope) (cadence.Status, error) {
		remaining--
		if remaining == 0 {
			return cadence.Finished, nil
		}
		return cadence.Continue, nil
	})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(status)

	// Output:
	// finished
}
