package deck

//go:generate mockgen -package=mocks -destination=mocks/mock_dealer.go github.com/KirkDiggler/mafiabot/internal/deck Dealer

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/KirkDiggler/mafiabot/internal/models"
)

// Dealer produces the role deck of a new session
type Dealer interface {
	Deal(players int) []models.Role
}

// Shuffler deals uniformly shuffled role decks
type Shuffler struct {
	mu     sync.Mutex
	random *rand.Rand
}

// Config for the shuffler
type Config struct {
	// Optional seed for testing
	Seed int64
}

// New creates a new shuffler
func New(cfg *Config) *Shuffler {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &Shuffler{
		random: rand.New(rand.NewSource(seed)),
	}
}

// Deal returns a shuffled deck for the given number of players
func (s *Shuffler) Deal(players int) []models.Role {
	cards := Build(players)

	s.mu.Lock()
	s.random.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	s.mu.Unlock()

	return cards
}

// Composition returns how many cards of each role a deck for n players holds
func Composition(players int) map[models.Role]int {
	mafia := players/3 - 1
	if mafia < 0 {
		mafia = 0
	}
	peace := players - mafia - 2
	if peace < 0 {
		peace = 0
	}
	return map[models.Role]int{
		models.RoleDon:     1,
		models.RoleMafia:   mafia,
		models.RoleSheriff: 1,
		models.RolePeace:   peace,
	}
}

// Build returns the unshuffled deck for n players in role order
func Build(players int) []models.Role {
	counts := Composition(players)
	cards := make([]models.Role, 0, players)
	for _, role := range models.Roles {
		for i := 0; i < counts[role]; i++ {
			cards = append(cards, role)
		}
	}
	return cards
}

// Validate checks that the deck holds exactly the role multiset for n players
func Validate(cards []models.Role, players int) error {
	if len(cards) != players {
		return fmt.Errorf("deck has %d cards for %d players", len(cards), players)
	}
	counts := make(map[models.Role]int, len(models.Roles))
	for _, c := range cards {
		if !c.Valid() {
			return fmt.Errorf("deck holds unknown role %q", c)
		}
		counts[c]++
	}
	for role, want := range Composition(players) {
		if counts[role] != want {
			return fmt.Errorf("deck has %d %s cards, want %d", counts[role], role, want)
		}
	}
	return nil
}
