package factory

import (
	"time"

	"github.com/mcoot/connectfour/internal/dependencies/mocks"
	"github.com/mcoot/connectfour/internal/services/game"
	"github.com/mcoot/connectfour/internal/services/search"
	"github.com/mcoot/connectfour/internal/storage/memory"
	"github.com/mcoot/connectfour/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// The unprimed mock random source makes tie-breaks pick the leftmost column.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, search.DefaultConfig(), game.DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
