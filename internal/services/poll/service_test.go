package poll

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	mockclock "github.com/KirkDiggler/mafiabot/internal/common/clock/mocks"
	mockuuid "github.com/KirkDiggler/mafiabot/internal/common/uuid/mocks"
	"github.com/KirkDiggler/mafiabot/internal/deck"
	"github.com/KirkDiggler/mafiabot/internal/models"
	lobbyRepo "github.com/KirkDiggler/mafiabot/internal/repositories/lobby"
	pollRepo "github.com/KirkDiggler/mafiabot/internal/repositories/poll"
	sessionRepo "github.com/KirkDiggler/mafiabot/internal/repositories/session"
	statsRepo "github.com/KirkDiggler/mafiabot/internal/repositories/stats"
	"github.com/KirkDiggler/mafiabot/internal/services/game"
	"github.com/KirkDiggler/mafiabot/internal/services/messaging"
	"github.com/KirkDiggler/mafiabot/internal/services/notifier"
	mocknotifier "github.com/KirkDiggler/mafiabot/internal/services/notifier/mocks"
	"github.com/KirkDiggler/mafiabot/internal/store"
)

const testChatID = "chat-1"

var nineDeck = []models.Role{
	models.RoleDon, models.RoleMafia, models.RoleMafia, models.RoleSheriff,
	models.RolePeace, models.RolePeace, models.RolePeace, models.RolePeace, models.RolePeace,
}

type PollServiceTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mr           *miniredis.Miniredis
	client       *redis.Client
	mockNotifier *mocknotifier.MockNotifier
	mockClock    *mockclock.MockClock
	mockUUID     *mockuuid.MockUUID
	sessionRepo  sessionRepo.Repository
	pollRepo     pollRepo.Repository
	gameService  game.Service
	service      *service
	ctx          context.Context
	now          time.Time
}

func (s *PollServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr
	s.client = redis.NewClient(&redis.Options{Addr: s.mr.Addr()})

	st, err := store.New(&store.Config{RedisClient: s.client})
	s.Require().NoError(err)

	s.sessionRepo, err = sessionRepo.NewRedis(&sessionRepo.Config{Store: st})
	s.Require().NoError(err)
	s.pollRepo, err = pollRepo.NewRedis(&pollRepo.Config{Store: st})
	s.Require().NoError(err)
	lobbies, err := lobbyRepo.NewRedis(&lobbyRepo.Config{Store: st})
	s.Require().NoError(err)
	stats, err := statsRepo.NewRedis(&statsRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)

	msgs, err := messaging.NewService(&messaging.ServiceConfig{Seed: 3})
	s.Require().NoError(err)

	s.mockNotifier = mocknotifier.NewMockNotifier(s.ctrl)
	s.mockClock = mockclock.NewMockClock(s.ctrl)
	s.mockUUID = mockuuid.NewMockUUID(s.ctrl)

	s.now = time.Date(2025, 4, 5, 20, 0, 0, 0, time.UTC)
	s.mockClock.EXPECT().Now().DoAndReturn(func() time.Time { return s.now }).AnyTimes()
	s.mockUUID.EXPECT().NewUUID().Return("poll-1").AnyTimes()
	s.mockNotifier.EXPECT().SendMessage(gomock.Any(), gomock.Any()).
		Return(&notifier.SendMessageOutput{MessageRef: "msg-1"}, nil).AnyTimes()
	s.mockNotifier.EXPECT().EditMessage(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	s.gameService, err = game.New(&game.Config{
		Logger:        zerolog.Nop(),
		SessionRepo:   s.sessionRepo,
		LobbyRepo:     lobbies,
		StatsRepo:     stats,
		Notifier:      s.mockNotifier,
		Messaging:     msgs,
		Dealer:        deck.New(&deck.Config{Seed: 1}),
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
	})
	s.Require().NoError(err)

	s.service, err = New(&Config{
		Logger:        zerolog.Nop(),
		PollRepo:      s.pollRepo,
		GameService:   s.gameService,
		Notifier:      s.mockNotifier,
		Messaging:     msgs,
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
	})
	s.Require().NoError(err)

	s.ctx = context.Background()
}

func (s *PollServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
	s.client.Close()
	s.mr.Close()
}

func TestPollServiceSuite(t *testing.T) {
	suite.Run(t, new(PollServiceTestSuite))
}

// startAt stores a session sitting in the given stage. Cards are revealed
// unless the stage is CardReveal.
func (s *PollServiceTestSuite) startAt(stage models.Stage, roles []models.Role, dead ...int) *models.Session {
	players := make([]*models.Player, len(roles))
	for i := range roles {
		players[i] = models.NewPlayer(models.User{
			ID:   fmt.Sprintf("u%d", i+1),
			Name: fmt.Sprintf("player%d", i+1),
		})
		if stage != models.StageCardReveal {
			players[i].Role = roles[i]
		}
	}
	for _, number := range dead {
		players[number-1].Alive = false
	}

	sess := &models.Session{
		ID:                "session-1",
		ChatID:            testChatID,
		Stage:             stage,
		StageSeq:          4,
		Players:           players,
		RoleDeck:          append([]models.Role(nil), roles...),
		Votes:             map[int][]int{},
		NextStageDeadline: s.now.Add(game.DefaultDurations[stage]),
		CreatedAt:         s.now,
	}
	s.Require().NoError(s.sessionRepo.CreateSession(s.ctx, &sessionRepo.CreateSessionInput{Session: sess}))
	return sess
}

func user(number int) models.User {
	return models.User{ID: fmt.Sprintf("u%d", number), Name: fmt.Sprintf("player%d", number)}
}

func (s *PollServiceTestSuite) open(number int, pollType models.PollType) (*OpenOutput, error) {
	return s.service.Open(s.ctx, &OpenInput{ChatID: testChatID, Type: pollType, Initiator: user(number)})
}

func (s *PollServiceTestSuite) vote(number int, pollType models.PollType) (*VoteOutput, error) {
	return s.service.Vote(s.ctx, &VoteInput{ChatID: testChatID, Type: pollType, Voter: user(number)})
}

func (s *PollServiceTestSuite) stage() models.Stage {
	sess, err := s.sessionRepo.GetSession(s.ctx, &sessionRepo.GetSessionInput{ChatID: testChatID})
	s.Require().NoError(err)
	return sess.Stage
}

func (s *PollServiceTestSuite) TestRoleBlindSkipNeedsSevenOfNine() {
	s.startAt(models.StageCardReveal, nineDeck)

	out, err := s.open(1, models.PollTypeSkip)
	s.Require().NoError(err)
	s.False(out.Poll.RoleAware)
	s.Equal(6, out.Poll.Required)
	s.Equal(1, out.Poll.Count)

	for number := 2; number <= 6; number++ {
		voted, err := s.vote(number, models.PollTypeSkip)
		s.Require().NoError(err)
		s.False(voted.Passed)
	}

	voted, err := s.vote(7, models.PollTypeSkip)
	s.Require().NoError(err)
	s.True(voted.Passed)
	s.Equal(7, voted.Poll.Count)

	s.Equal(models.StageAcquaintance, s.stage())
	_, err = s.pollRepo.GetPoll(s.ctx, &pollRepo.GetPollInput{ChatID: testChatID, Type: models.PollTypeSkip})
	s.ErrorIs(err, pollRepo.ErrPollNotFound)
}

func (s *PollServiceTestSuite) TestRoleAwareSkipNeedsBothTeams() {
	s.startAt(models.StageDay, nineDeck)

	out, err := s.open(5, models.PollTypeSkip)
	s.Require().NoError(err)
	s.True(out.Poll.RoleAware)
	s.Equal(2, out.Poll.MafiaRequired)
	s.Equal(4, out.Poll.PeaceRequired)

	for _, number := range []int{6, 7, 8, 1, 2} {
		voted, err := s.vote(number, models.PollTypeSkip)
		s.Require().NoError(err)
		s.False(voted.Passed, "vote of player %d", number)
	}
	s.Equal(models.StageDay, s.stage())

	voted, err := s.vote(3, models.PollTypeSkip)
	s.Require().NoError(err)
	s.True(voted.Passed)
	s.Equal(3, voted.Poll.MafiaCount)
	s.Equal(4, voted.Poll.PeaceCount)
	s.Equal(models.StageVote, s.stage())
}

func (s *PollServiceTestSuite) TestInitiatorAloneCanReachQuorum() {
	s.startAt(models.StageDay, []models.Role{models.RoleDon, models.RoleSheriff})

	out, err := s.open(1, models.PollTypeSkip)
	s.Require().NoError(err)
	s.True(out.Passed)
	s.Equal(models.StageVote, s.stage())
}

func (s *PollServiceTestSuite) TestEndPollTerminatesSession() {
	s.startAt(models.StageDay, []models.Role{models.RoleDon, models.RoleSheriff, models.RolePeace, models.RolePeace})

	out, err := s.open(1, models.PollTypeEnd)
	s.Require().NoError(err)
	s.False(out.Passed)

	_, err = s.vote(2, models.PollTypeEnd)
	s.Require().NoError(err)
	voted, err := s.vote(3, models.PollTypeEnd)
	s.Require().NoError(err)
	s.True(voted.Passed)

	_, err = s.gameService.GetSession(s.ctx, &game.GetSessionInput{ChatID: testChatID})
	s.ErrorIs(err, game.ErrNoSession)
}

func (s *PollServiceTestSuite) TestStageTransitionSupersedesPoll() {
	sess := s.startAt(models.StageDay, nineDeck)
	_, err := s.open(5, models.PollTypeSkip)
	s.Require().NoError(err)

	s.now = s.now.Add(game.DefaultDurations[models.StageDay])
	advanced, err := s.gameService.Advance(s.ctx, &game.AdvanceInput{
		ChatID:   testChatID,
		StageSeq: sess.StageSeq,
		Trigger:  game.TriggerTimer,
	})
	s.Require().NoError(err)
	s.True(advanced.Advanced)

	_, err = s.vote(6, models.PollTypeSkip)
	s.ErrorIs(err, ErrNoPoll)
}

func (s *PollServiceTestSuite) TestRejections() {
	_, err := s.open(1, models.PollTypeSkip)
	s.ErrorIs(err, game.ErrNoSession)

	s.startAt(models.StageDay, nineDeck, 9)

	_, err = s.open(9, models.PollTypeSkip)
	s.ErrorIs(err, game.ErrNotAlive)

	_, err = s.open(42, models.PollTypeSkip)
	s.ErrorIs(err, game.ErrNotAPlayer)

	_, err = s.open(1, models.PollType("surrender"))
	s.ErrorIs(err, ErrUnknownType)

	_, err = s.vote(1, models.PollTypeSkip)
	s.ErrorIs(err, ErrNoPoll)

	_, err = s.open(1, models.PollTypeSkip)
	s.Require().NoError(err)

	_, err = s.open(2, models.PollTypeSkip)
	s.ErrorIs(err, ErrPollRunning)

	_, err = s.vote(1, models.PollTypeSkip)
	s.ErrorIs(err, ErrAlreadyVoted)
	s.True(game.IsRejection(err))
}

func (s *PollServiceTestSuite) TestPollsOnlyInEligibleStages() {
	s.startAt(models.StageVote, nineDeck)

	_, err := s.open(1, models.PollTypeSkip)
	s.ErrorIs(err, ErrNotEligible)
}

func (s *PollServiceTestSuite) TestOpenStoresMessageRef() {
	s.startAt(models.StageDay, nineDeck)

	_, err := s.open(5, models.PollTypeEnd)
	s.Require().NoError(err)

	poll, err := s.pollRepo.GetPoll(s.ctx, &pollRepo.GetPollInput{ChatID: testChatID, Type: models.PollTypeEnd})
	s.Require().NoError(err)
	s.Equal("msg-1", poll.MessageRef)
	s.Equal([]string{"u5"}, poll.Voters)
}
