/*
Package policy provides the built-in completion policies for the Cadence
engine.

Policies are stateless strategy values: every counter they need lives as an
attribute on the Scope they hand out from Start, so a single configured
policy can drive any number of nested or concurrent loops without
interference.
*/
package policy
