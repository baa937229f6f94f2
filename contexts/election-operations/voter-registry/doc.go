// Package voterregistry tracks who may vote in which election. It hands each
// student a single-use access token, emails it with a per-voter exponential
// backoff on resends, and resolves tokens back to voter records for the vote
// flow.
package voterregistry
