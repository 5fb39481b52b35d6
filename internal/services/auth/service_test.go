package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/blokus-go/internal/dependencies/mocks"
	"github.com/mcoot/blokus-go/internal/model"
	"github.com/mcoot/blokus-go/internal/storage/memory"
	"github.com/mcoot/blokus-go/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	cfg := DefaultConfig()
	cfg.BcryptCost = bcrypt.MinCost
	s.service = New(s.storage, s.clock, testutil.NopLogger(), cfg)
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestIssuedTokenValidates() {
	token, err := s.service.IssueSeatToken(s.ctx, "game-1", 2)
	s.Require().NoError(err)
	s.True(strings.HasPrefix(token, "game-1.2."))

	seat, err := s.service.ValidateToken(s.ctx, token)
	s.Require().NoError(err)
	s.Equal(model.GameID("game-1"), seat.GameID)
	s.Equal(model.PlayerID(2), seat.PlayerID)
}

func (s *ServiceSuite) TestSecretIsNotStored() {
	token, _ := s.service.IssueSeatToken(s.ctx, "game-1", 0)
	secret := token[strings.LastIndex(token, ".")+1:]

	cred, err := s.storage.GetSeatCredential(s.ctx, "game-1", 0)
	s.Require().NoError(err)
	s.NotEqual(secret, cred.SecretHash)
	s.NotContains(cred.SecretHash, secret)
}

func (s *ServiceSuite) TestWrongSecretRejected() {
	_, _ = s.service.IssueSeatToken(s.ctx, "game-1", 0)

	_, err := s.service.ValidateToken(s.ctx, "game-1.0.not-the-secret")
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *ServiceSuite) TestTokenForOtherSeatRejected() {
	token, _ := s.service.IssueSeatToken(s.ctx, "game-1", 0)
	secret := token[strings.LastIndex(token, ".")+1:]

	_, err := s.service.ValidateToken(s.ctx, "game-1.1."+secret)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *ServiceSuite) TestExpiredTokenRejected() {
	token, _ := s.service.IssueSeatToken(s.ctx, "game-1", 0)

	s.clock.Advance(25 * time.Hour)

	_, err := s.service.ValidateToken(s.ctx, token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *ServiceSuite) TestReissueReplacesOldToken() {
	first, _ := s.service.IssueSeatToken(s.ctx, "game-1", 0)
	second, _ := s.service.IssueSeatToken(s.ctx, "game-1", 0)

	_, err := s.service.ValidateToken(s.ctx, first)
	s.ErrorIs(err, ErrInvalidToken)
	_, err = s.service.ValidateToken(s.ctx, second)
	s.NoError(err)
}

func (s *ServiceSuite) TestMalformedTokens() {
	for _, token := range []string{"", "game-1", "game-1.0", "game-1.x.secret", "game-1.9.secret", ".0.secret", "game-1.0."} {
		_, err := s.service.ValidateToken(s.ctx, token)
		s.ErrorIs(err, ErrMalformed, "token %q", token)
	}
}

func (s *ServiceSuite) TestRevokeGame() {
	token, _ := s.service.IssueSeatToken(s.ctx, "game-1", 0)

	s.Require().NoError(s.service.RevokeGame(s.ctx, "game-1"))

	_, err := s.service.ValidateToken(s.ctx, token)
	s.ErrorIs(err, ErrInvalidToken)
}
