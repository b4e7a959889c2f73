/*
Package ports defines the driven ports (interfaces) for the Cadence engine.

These interfaces decouple the repetition loop from the strategies plugged
into it, allowing one engine to serve chunked reads, retry loops, and
throttled pipelines by swapping implementations.

# Key Interfaces

  - Callback: one unit of repeatable work, invoked once per iteration.
  - CompletionPolicy: decides when the iteration sequence ends, and acts
    as the factory for the Scope each loop invocation runs in.
  - ExceptionHandler: decides per error whether the loop absorbs it and
    continues, or aborts and surfaces it.
  - Listener: observer notified around the loop and each iteration.
  - Executor: externally supplied worker pool used by the concurrent engine.
*/
package ports
