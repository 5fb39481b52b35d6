package factory

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/blokus-go/internal/dependencies/mocks"
	"github.com/mcoot/blokus-go/internal/services/auth"
	"github.com/mcoot/blokus-go/internal/services/bot"
	"github.com/mcoot/blokus-go/internal/services/scoring"
	"github.com/mcoot/blokus-go/internal/storage/memory"
	"github.com/mcoot/blokus-go/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	authCfg := auth.DefaultConfig()
	authCfg.BcryptCost = bcrypt.MinCost

	app := newWithDependencies(store, mockClock, mockRandom, authCfg, bot.DefaultConfig(), scoring.DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
