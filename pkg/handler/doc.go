/*
Package handler provides the built-in exception handlers for the Cadence
engine.

Handlers are stateless strategy values in the same sense as completion
policies: the Threshold handler keeps its running error count on the scope
it is handed (or the scope's parent in shared-counter mode), never on the
handler itself.
*/
package handler
