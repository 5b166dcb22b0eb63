package factory

import (
	"time"

	"github.com/lnpoker/lnpoker/internal/dependencies/mocks"
	"github.com/lnpoker/lnpoker/internal/gateway/fakegateway"
	"github.com/lnpoker/lnpoker/internal/storage/memory"
	"github.com/lnpoker/lnpoker/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock   *mocks.MockClock
	MockRandom  *mocks.MockRandom
	FakeGateway *fakegateway.Gateway
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	fakeGateway := fakegateway.New()

	app := newWithDependencies(store, mockClock, mockRandom, fakeGateway, Config{}, testutil.NopLogger())

	return &TestApp{
		App:         app,
		MockClock:   mockClock,
		MockRandom:  mockRandom,
		FakeGateway: fakeGateway,
	}
}
