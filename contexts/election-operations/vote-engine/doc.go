// Package voteengine turns a token plus a list of candidate ids into counted
// votes. Ballots are validated against each position's vote limit, and the
// cast itself is one atomic transaction: the voted flag and every selected
// candidate's tally move together or not at all.
package voteengine
