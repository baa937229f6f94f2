// Package electionadmin implements election administration inside the
// election-operations context.
//
// The module owns election, position, and candidate records, the
// available-elections catalog, and the lifecycle sweep that marks elections
// finished once their voting window passes. Writes are gated by a configured
// admin email allowlist. Vote tallies on candidates are read-only here; they
// are mutated exclusively by the vote-engine module.
package electionadmin
