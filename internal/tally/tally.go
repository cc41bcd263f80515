// Package tally summarises day votes and night shots. It is used both to
// render the live count and to resolve the stage when it ends.
package tally

import "sort"

// Abstain is the vote target of a player who votes for nobody
const Abstain = 0

// Summary is the per-target breakdown of a set of votes or shots
type Summary struct {
	// Counts maps a target player number to the votes it received
	Counts map[int]int

	// Voters maps a target player number to the sorted numbers of its voters.
	// Shots are anonymous and leave it empty.
	Voters map[int][]int

	// Leaders are the targets sharing the highest count, abstentions excluded
	Leaders []int

	// Abstained holds the numbers of players that voted for nobody
	Abstained []int

	// Total is the number of votes or shots including abstentions
	Total int
}

// Votes summarises a target -> voters mapping
func Votes(votes map[int][]int) *Summary {
	summary := newSummary()
	for target, voters := range votes {
		if len(voters) == 0 {
			continue
		}

		sorted := append([]int(nil), voters...)
		sort.Ints(sorted)

		summary.Total += len(sorted)
		if target == Abstain {
			summary.Abstained = sorted
			continue
		}
		summary.Counts[target] = len(sorted)
		summary.Voters[target] = sorted
	}

	summary.leaders()
	return summary
}

// Shots summarises the night shots, one entry per shooter
func Shots(shots []int) *Summary {
	summary := newSummary()
	for _, target := range shots {
		summary.Counts[target]++
		summary.Total++
	}

	summary.leaders()
	return summary
}

// Unique returns the single leading target, if there is exactly one
func (s *Summary) Unique() (int, bool) {
	if len(s.Leaders) != 1 {
		return 0, false
	}
	return s.Leaders[0], true
}

// Unanimous returns the target if every entry names the same player
func (s *Summary) Unanimous() (int, bool) {
	if s.Total == 0 || len(s.Abstained) > 0 || len(s.Counts) != 1 {
		return 0, false
	}
	return s.Leaders[0], true
}

// Targets returns the targets with at least one vote in ascending order
func (s *Summary) Targets() []int {
	targets := make([]int, 0, len(s.Counts))
	for target := range s.Counts {
		targets = append(targets, target)
	}
	sort.Ints(targets)
	return targets
}

func newSummary() *Summary {
	return &Summary{
		Counts: map[int]int{},
		Voters: map[int][]int{},
	}
}

func (s *Summary) leaders() {
	best := 0
	for target, count := range s.Counts {
		switch {
		case count > best:
			best = count
			s.Leaders = []int{target}
		case count == best:
			s.Leaders = append(s.Leaders, target)
		}
	}
	sort.Ints(s.Leaders)
}
