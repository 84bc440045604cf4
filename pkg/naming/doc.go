// Package naming implements filename matching for volumes whose name equality
// may be byte-exact, case-insensitive, or Unicode normalization-insensitive. It
// provides a lazy normalizing cursor over raw names, a comparator built on
// lockstep cursors, and a seeded hasher that is guaranteed to agree with the
// comparator: any two names that compare equal under a MatchMode hash to the
// same value under that MatchMode and seed.
package naming
