package checkout

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlowHappyPath(t *testing.T) {
	f := NewFlow()
	assert.Equal(t, FlowIdle, f.State())

	require.NoError(t, f.Confirm())
	assert.Equal(t, FlowConfirming, f.State())

	require.NoError(t, f.Start())
	assert.Equal(t, FlowInFlight, f.State())
	assert.False(t, f.Terminal())

	f.Finish(nil)
	assert.Equal(t, FlowSucceeded, f.State())
	assert.True(t, f.Terminal())
}

func TestFlowStartSkipsConfirm(t *testing.T) {
	f := NewFlow()
	require.NoError(t, f.Start())
	assert.Equal(t, FlowInFlight, f.State())
}

func TestFlowRejectsReentry(t *testing.T) {
	f := NewFlow()
	require.NoError(t, f.Start())

	assert.ErrorIs(t, f.Start(), ErrInProgress)
	assert.ErrorIs(t, f.Confirm(), ErrInProgress)
}

func TestFlowFailureIsTerminal(t *testing.T) {
	f := NewFlow()
	require.NoError(t, f.Start())
	f.Finish(errors.New("boom"))

	assert.Equal(t, FlowFailed, f.State())
	assert.True(t, f.Terminal())
	assert.ErrorIs(t, f.Start(), ErrInProgress)
}

func TestFlowStateStrings(t *testing.T) {
	assert.Equal(t, "idle", FlowIdle.String())
	assert.Equal(t, "in_flight", FlowInFlight.String())
	assert.Equal(t, "failed", FlowFailed.String())
}
