package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/lnpoker/lnpoker/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.ReservationTTLSlop = time.Minute

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) makeGame(id string, createdAt time.Time) *model.Game {
	return &model.Game{
		ID:          model.GameID(id),
		Status:      model.GameStatusWaiting,
		BuyIn:       1000,
		SmallBlind:  10,
		BigBlind:    20,
		PlayerLimit: 6,
		Players:     []model.PlayerRef{{ID: "p_1", Email: "alice@example.com"}},
		Pending:     []model.PendingSeat{},
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

// Account tests

func (s *StorageSuite) TestSaveAndGetAccount() {
	account := &model.Account{
		PlayerID:     "p_1",
		Email:        "alice@example.com",
		PasswordHash: "hash123",
		CreatedAt:    time.Now(),
	}

	err := s.storage.SaveAccount(s.ctx, account)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetAccount(s.ctx, "p_1")
	s.Require().NoError(err)
	s.Equal(account.Email, retrieved.Email)
	s.Equal(account.PasswordHash, retrieved.PasswordHash)
}

func (s *StorageSuite) TestGetAccountNotFound() {
	_, err := s.storage.GetAccount(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestGetAccountByEmail() {
	account := &model.Account{
		PlayerID:     "p_1",
		Email:        "alice@example.com",
		PasswordHash: "hash123",
	}
	_ = s.storage.SaveAccount(s.ctx, account)

	retrieved, err := s.storage.GetAccountByEmail(s.ctx, "alice@example.com")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("p_1"), retrieved.PlayerID)
}

func (s *StorageSuite) TestGetAccountByEmailNotFound() {
	_, err := s.storage.GetAccountByEmail(s.ctx, "nobody@example.com")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Game tests

func (s *StorageSuite) TestSaveAndGetGame() {
	game := s.makeGame("GAME1", time.Now().UTC())
	game.Pending = []model.PendingSeat{{
		Token:     "rsv_abc",
		PlayerID:  "p_2",
		ExpiresAt: time.Now().UTC().Add(10 * time.Minute),
	}}

	err := s.storage.SaveGame(s.ctx, game)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetGame(s.ctx, "GAME1")
	s.Require().NoError(err)
	s.Equal(game.ID, retrieved.ID)
	s.Equal(game.BuyIn, retrieved.BuyIn)
	s.Len(retrieved.Players, 1)
	s.Len(retrieved.Pending, 1)
	s.Equal(model.ReservationToken("rsv_abc"), retrieved.Pending[0].Token)
}

func (s *StorageSuite) TestGetGameNotFound() {
	_, err := s.storage.GetGame(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestDeleteGame() {
	game := s.makeGame("GAME1", time.Now())
	_ = s.storage.SaveGame(s.ctx, game)

	err := s.storage.DeleteGame(s.ctx, "GAME1")
	s.Require().NoError(err)

	_, err = s.storage.GetGame(s.ctx, "GAME1")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestListGamesOrderedByCreation() {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	_ = s.storage.SaveGame(s.ctx, s.makeGame("GAME2", base.Add(time.Minute)))
	_ = s.storage.SaveGame(s.ctx, s.makeGame("GAME1", base))
	_ = s.storage.SaveGame(s.ctx, s.makeGame("GAME3", base.Add(2*time.Minute)))

	games, err := s.storage.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(games, 3)
	s.Equal(model.GameID("GAME1"), games[0].ID)
	s.Equal(model.GameID("GAME2"), games[1].ID)
	s.Equal(model.GameID("GAME3"), games[2].ID)
}

func (s *StorageSuite) TestListGamesEmpty() {
	games, err := s.storage.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Empty(games)
}

func (s *StorageSuite) TestListGamesSkipsDeletedUnderIndex() {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	_ = s.storage.SaveGame(s.ctx, s.makeGame("GAME1", base))
	_ = s.storage.SaveGame(s.ctx, s.makeGame("GAME2", base.Add(time.Minute)))

	// Drop the record but not the index entry
	s.mini.Del(gameKey("GAME1"))

	games, err := s.storage.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(games, 1)
	s.Equal(model.GameID("GAME2"), games[0].ID)
}

// Reservation tests

func (s *StorageSuite) TestSaveAndGetReservation() {
	res := &model.Reservation{
		Token:     "rsv_abc",
		GameID:    "GAME1",
		PlayerID:  "p_1",
		Email:     "alice@example.com",
		InvoiceID: "inv_1",
		ExpiresAt: time.Now().UTC().Add(10 * time.Minute),
		CreatedAt: time.Now().UTC(),
	}

	err := s.storage.SaveReservation(s.ctx, res)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetReservation(s.ctx, "rsv_abc")
	s.Require().NoError(err)
	s.Equal(res.GameID, retrieved.GameID)
	s.Equal(res.PlayerID, retrieved.PlayerID)
	s.Equal(res.InvoiceID, retrieved.InvoiceID)
}

func (s *StorageSuite) TestGetReservationNotFound() {
	_, err := s.storage.GetReservation(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrReservationNotFound)
}

func (s *StorageSuite) TestDeleteReservation() {
	res := &model.Reservation{
		Token:     "rsv_abc",
		GameID:    "GAME1",
		PlayerID:  "p_1",
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}
	_ = s.storage.SaveReservation(s.ctx, res)

	err := s.storage.DeleteReservation(s.ctx, "rsv_abc")
	s.Require().NoError(err)

	_, err = s.storage.GetReservation(s.ctx, "rsv_abc")
	s.ErrorIs(err, model.ErrReservationNotFound)
}

func (s *StorageSuite) TestReservationCarriesTTL() {
	res := &model.Reservation{
		Token:     "rsv_abc",
		GameID:    "GAME1",
		PlayerID:  "p_1",
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}
	_ = s.storage.SaveReservation(s.ctx, res)

	ttl := s.mini.TTL(reservationKey("rsv_abc"))
	s.True(ttl > 10*time.Minute, "reservation TTL should outlive its expiry")
	s.True(ttl <= 11*time.Minute+time.Second, "reservation TTL should not exceed expiry plus slop")
}

func (s *StorageSuite) TestReservationAgesOut() {
	res := &model.Reservation{
		Token:     "rsv_abc",
		GameID:    "GAME1",
		PlayerID:  "p_1",
		ExpiresAt: time.Now().Add(time.Minute),
	}
	_ = s.storage.SaveReservation(s.ctx, res)

	s.mini.FastForward(3 * time.Minute)

	_, err := s.storage.GetReservation(s.ctx, "rsv_abc")
	s.ErrorIs(err, model.ErrReservationNotFound)
}
