package deck

import (
	"testing"

	"github.com/KirkDiggler/mafiabot/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposition(t *testing.T) {
	for n := 4; n <= 30; n++ {
		counts := Composition(n)

		wantMafia := n/3 - 1
		if wantMafia < 0 {
			wantMafia = 0
		}
		assert.Equal(t, 1, counts[models.RoleDon], "don count for %d players", n)
		assert.Equal(t, 1, counts[models.RoleSheriff], "sheriff count for %d players", n)
		assert.Equal(t, wantMafia, counts[models.RoleMafia], "mafia count for %d players", n)
		assert.Equal(t, n-wantMafia-2, counts[models.RolePeace], "peace count for %d players", n)

		total := 0
		for _, c := range counts {
			total += c
		}
		assert.Equal(t, n, total)
	}
}

func TestDealKeepsMultiset(t *testing.T) {
	shuffler := New(&Config{Seed: 42})

	for n := 4; n <= 30; n++ {
		cards := shuffler.Deal(n)
		require.Len(t, cards, n)
		assert.NoError(t, Validate(cards, n))
	}
}

func TestDealNineSeats(t *testing.T) {
	cards := New(&Config{Seed: 7}).Deal(9)

	counts := map[models.Role]int{}
	for _, c := range cards {
		counts[c]++
	}
	assert.Equal(t, map[models.Role]int{
		models.RoleDon:     1,
		models.RoleMafia:   2,
		models.RoleSheriff: 1,
		models.RolePeace:   5,
	}, counts)
}

func TestDealIsSeedDeterministic(t *testing.T) {
	a := New(&Config{Seed: 99}).Deal(12)
	b := New(&Config{Seed: 99}).Deal(12)
	assert.Equal(t, a, b)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cards   []models.Role
		players int
		wantErr bool
	}{
		{
			name:    "exact deck",
			cards:   Build(6),
			players: 6,
		},
		{
			name:    "wrong length",
			cards:   Build(6),
			players: 7,
			wantErr: true,
		},
		{
			name:    "two dons",
			cards:   []models.Role{models.RoleDon, models.RoleDon, models.RoleSheriff, models.RolePeace},
			players: 4,
			wantErr: true,
		},
		{
			name:    "unknown role",
			cards:   []models.Role{models.RoleDon, models.RoleNone, models.RoleSheriff, models.RolePeace},
			players: 4,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.cards, tt.players)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
