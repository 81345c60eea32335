package sniper

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestReportersFanOut(t *testing.T) {
	var a, b Recorder
	var seen []Kind
	rs := Reporters{&a, nil, ReporterFunc(func(ev Event) { seen = append(seen, ev.Kind) }), &b}

	rs.Emit(Event{Kind: KindSearched})
	rs.Emit(Event{Kind: KindFinished})

	assert.Equal(t, []Kind{KindSearched, KindFinished}, a.Kinds())
	assert.Equal(t, a.Kinds(), b.Kinds())
	assert.Equal(t, a.Kinds(), seen)
	assert.Equal(t, 1, a.Count(KindFinished))
}

func TestLogReporter(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := LogReporter{Log: zap.New(core)}

	r.Emit(Event{Kind: KindListed, RunID: "r1", Name: "Mbappé", MinList: intPtr(10), MaxList: intPtr(20)})

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "listed", fields["event"])
	assert.Equal(t, "r1", fields["run_id"])
	assert.Equal(t, int64(10), fields["min_list"])
	assert.Equal(t, int64(20), fields["max_list"])
}

func TestListedEventKeepsZeroBounds(t *testing.T) {
	raw, err := json.Marshal(Event{Kind: KindListed, Name: "Mbappé", MinList: intPtr(0), MaxList: intPtr(0)})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, "listed", m["action"])
	assert.Equal(t, 0.0, m["minList"])
	assert.Equal(t, 0.0, m["maxList"])

	raw, err = json.Marshal(Event{Kind: KindSearched})
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "minList")
}
