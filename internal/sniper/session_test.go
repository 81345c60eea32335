package sniper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionSingleChain(t *testing.T) {
	s := NewSession(DefaultTunables())

	select {
	case <-s.Done():
	default:
		t.Fatal("idle session must report done")
	}

	done, err := s.begin(Run{ID: "a"}, DefaultTunables())
	require.NoError(t, err)
	assert.True(t, s.Busy())

	_, err = s.begin(Run{ID: "b"}, DefaultTunables())
	assert.ErrorIs(t, err, ErrRunActive)

	assert.True(t, s.requestStop())
	assert.False(t, s.requestStop())

	_, err = s.begin(Run{ID: "b"}, DefaultTunables())
	assert.ErrorIs(t, err, ErrRunActive, "stopped chain is still in flight")

	s.release()
	<-done
	assert.False(t, s.Busy())

	s.release()
}

func TestSessionPageClaimExcludesRun(t *testing.T) {
	s := NewSession(DefaultTunables())

	require.NoError(t, s.claimPage())
	assert.True(t, s.Busy())
	assert.ErrorIs(t, s.claimPage(), ErrPageBusy)
	_, err := s.begin(Run{ID: "a"}, DefaultTunables())
	assert.ErrorIs(t, err, ErrRunActive)

	s.releasePage()
	assert.False(t, s.Busy())
	_, err = s.begin(Run{ID: "a"}, DefaultTunables())
	require.NoError(t, err)
	assert.ErrorIs(t, s.claimPage(), ErrRunActive)
	s.release()
}

func TestSessionTerminationOrder(t *testing.T) {
	s := NewSession(DefaultTunables())
	_, err := s.begin(Run{Params: RunParams{
		IterationLimit: Limit{N: 2, Set: true},
		PurchaseLimit:  Limit{N: 1, Set: true},
	}}, DefaultTunables())
	require.NoError(t, err)

	assert.Equal(t, Continue, s.checkTermination())
	s.recordPurchase()
	s.endCycle()

	assert.Equal(t, PurchaseLimitReached, s.checkTermination())
	assert.Equal(t, 0, s.Purchases())
	assert.False(t, s.Status().Active)
	assert.Equal(t, Finished, s.checkTermination())
}

func TestSessionIterationLimitWins(t *testing.T) {
	s := NewSession(DefaultTunables())
	_, err := s.begin(Run{Params: RunParams{
		IterationLimit: Limit{N: 1, Set: true},
		PurchaseLimit:  Limit{N: 1, Set: true},
	}}, DefaultTunables())
	require.NoError(t, err)

	s.recordPurchase()
	s.endCycle()

	assert.Equal(t, IterationLimitReached, s.checkTermination())
	assert.Equal(t, 1, s.Purchases(), "purchase counter only resets on the purchase limit")
}

func TestSessionCountersResetOnBegin(t *testing.T) {
	s := NewSession(DefaultTunables())
	_, err := s.begin(Run{ID: "a"}, DefaultTunables())
	require.NoError(t, err)
	s.endCycle()
	s.recordPurchase()
	s.release()

	_, err = s.begin(Run{ID: "b"}, Tunables{RPM: 10})
	require.NoError(t, err)
	st := s.Status()
	assert.Equal(t, 0, st.Iteration)
	assert.Equal(t, 0, st.Purchases)
	assert.Equal(t, "b", st.RunID)
	assert.Equal(t, 10.0, st.Tunables.RPM)
}

func TestTerminationKinds(t *testing.T) {
	assert.Equal(t, KindFinished, Finished.Kind())
	assert.Equal(t, KindIterationLimit, IterationLimitReached.Kind())
	assert.Equal(t, KindPurchaseLimit, PurchaseLimitReached.Kind())
	assert.Equal(t, "reached-purchase-limit", PurchaseLimitReached.String())
}
