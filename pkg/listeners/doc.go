/*
Package listeners provides ready-made lifecycle listeners for the Cadence
engine: structured logging via slog and Prometheus metrics.

Listeners are observers only. They never influence the loop's completion
or error decisions.
*/
package listeners
