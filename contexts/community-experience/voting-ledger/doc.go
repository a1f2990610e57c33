// Package votingledger implements community voting on published influencer
// entries inside the community-experience context.
//
// Each voter holds at most one vote per entity; a repeat submission replaces
// the previous vote in place. The module owns the hourly voter quota, vote
// statistics with the delegated user trust aggregate, and the best-effort
// marketplace stat sync after each write.
package votingledger
