package stats

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/mafiabot/internal/models"
	statsRepo "github.com/KirkDiggler/mafiabot/internal/repositories/stats"
	"github.com/KirkDiggler/mafiabot/internal/repositories/stats/mocks"
)

type StatsServiceTestSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	mockStatsRepo *mocks.MockRepository
	service       *service
	ctx           context.Context
}

func (s *StatsServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockStatsRepo = mocks.NewMockRepository(s.ctrl)

	var err error
	s.service, err = New(&Config{
		Logger:    zerolog.Nop(),
		StatsRepo: s.mockStatsRepo,
	})
	s.Require().NoError(err)

	s.ctx = context.Background()
}

func (s *StatsServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestStatsServiceSuite(t *testing.T) {
	suite.Run(t, new(StatsServiceTestSuite))
}

func record(name string, wins, total int) *models.PlayerStats {
	return &models.PlayerStats{PlayerID: "id-" + name, PlayerName: name, Wins: wins, Total: total}
}

func (s *StatsServiceTestSuite) TestNewRequiresRepo() {
	_, err := New(&Config{})
	s.ErrorIs(err, ErrNilStatsRepo)
}

func (s *StatsServiceTestSuite) TestGetPlayerStats() {
	want := record("ann", 3, 4)
	s.mockStatsRepo.EXPECT().
		GetPlayerStats(s.ctx, &statsRepo.GetPlayerStatsInput{ChatID: "chat-1", PlayerID: "id-ann"}).
		Return(want, nil)

	out, err := s.service.GetPlayerStats(s.ctx, &GetPlayerStatsInput{ChatID: "chat-1", PlayerID: "id-ann"})
	s.Require().NoError(err)
	s.Equal(want, out.Stats)
}

func (s *StatsServiceTestSuite) TestGetPlayerStatsWithoutGames() {
	s.mockStatsRepo.EXPECT().GetPlayerStats(s.ctx, gomock.Any()).Return(nil, statsRepo.ErrStatsNotFound)

	out, err := s.service.GetPlayerStats(s.ctx, &GetPlayerStatsInput{ChatID: "chat-1", PlayerID: "id-bob"})
	s.Require().NoError(err)
	s.Nil(out.Stats)
}

func (s *StatsServiceTestSuite) TestGetPlayerStatsRepoFailure() {
	s.mockStatsRepo.EXPECT().GetPlayerStats(s.ctx, gomock.Any()).Return(nil, errors.New("connection refused"))

	_, err := s.service.GetPlayerStats(s.ctx, &GetPlayerStatsInput{ChatID: "chat-1", PlayerID: "id-bob"})
	s.Error(err)
}

func (s *StatsServiceTestSuite) TestGetRatingRanksByScore() {
	s.mockStatsRepo.EXPECT().
		GetChatStats(s.ctx, &statsRepo.GetChatStatsInput{ChatID: "chat-1"}).
		Return(&statsRepo.GetChatStatsOutput{Stats: []*models.PlayerStats{
			record("cid", 1, 5),  // -3
			record("ann", 4, 5),  // 3
			record("bob", 2, 2),  // 2
			record("dan", 3, 4),  // 2
			record("eve", 0, 1),  // -1
			record("fay", 1, 1),  // 1
			record("gus", 0, 10), // -10
		}}, nil)

	out, err := s.service.GetRating(s.ctx, &GetRatingInput{ChatID: "chat-1"})
	s.Require().NoError(err)

	s.Equal([]*models.RatingEntry{
		{Place: 1, PlayerName: "ann", Score: 3},
		{Place: 2, PlayerName: "bob", Score: 2},
		{Place: 2, PlayerName: "dan", Score: 2},
		{Place: 4, PlayerName: "fay", Score: 1},
		{Place: 5, PlayerName: "eve", Score: -1},
	}, out.Entries)
}

func (s *StatsServiceTestSuite) TestGetRatingOfEmptyChat() {
	s.mockStatsRepo.EXPECT().GetChatStats(s.ctx, gomock.Any()).Return(&statsRepo.GetChatStatsOutput{}, nil)

	out, err := s.service.GetRating(s.ctx, &GetRatingInput{ChatID: "chat-1", Limit: 3})
	s.Require().NoError(err)
	s.Empty(out.Entries)
}
