package tally

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVotes(t *testing.T) {
	tests := []struct {
		name          string
		votes         map[int][]int
		wantLeaders   []int
		wantAbstained []int
		wantTotal     int
		wantUnique    int
		wantOK        bool
	}{
		{
			name:        "no votes",
			votes:       map[int][]int{},
			wantLeaders: nil,
		},
		{
			name: "five against three, four abstain",
			votes: map[int][]int{
				3: {1, 2, 4, 5, 6},
				0: {3, 7, 8, 9},
			},
			wantLeaders:   []int{3},
			wantAbstained: []int{3, 7, 8, 9},
			wantTotal:     9,
			wantUnique:    3,
			wantOK:        true,
		},
		{
			name: "tie for the lead",
			votes: map[int][]int{
				2: {1, 3},
				5: {2, 4},
				1: {5},
			},
			wantLeaders: []int{2, 5},
			wantTotal:   5,
		},
		{
			name: "only abstentions",
			votes: map[int][]int{
				0: {2, 1},
			},
			wantAbstained: []int{1, 2},
			wantTotal:     2,
		},
		{
			name: "empty voter lists are ignored",
			votes: map[int][]int{
				4: {},
				6: {1},
			},
			wantLeaders: []int{6},
			wantTotal:   1,
			wantUnique:  6,
			wantOK:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := Votes(tt.votes)

			assert.Equal(t, tt.wantLeaders, summary.Leaders)
			assert.Equal(t, tt.wantAbstained, summary.Abstained)
			assert.Equal(t, tt.wantTotal, summary.Total)

			target, ok := summary.Unique()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantUnique, target)
		})
	}
}

func TestVotesSortsVoters(t *testing.T) {
	summary := Votes(map[int][]int{4: {9, 2, 5}})

	assert.Equal(t, []int{2, 5, 9}, summary.Voters[4])
	assert.Equal(t, 3, summary.Counts[4])
	assert.Equal(t, []int{4}, summary.Targets())
}

func TestShots(t *testing.T) {
	unanimous := Shots([]int{4, 4, 4})
	target, ok := unanimous.Unanimous()
	assert.True(t, ok)
	assert.Equal(t, 4, target)

	split := Shots([]int{4, 2, 4})
	_, ok = split.Unanimous()
	assert.False(t, ok)
	target, ok = split.Unique()
	assert.True(t, ok)
	assert.Equal(t, 4, target)

	_, ok = Shots(nil).Unanimous()
	assert.False(t, ok)
}
