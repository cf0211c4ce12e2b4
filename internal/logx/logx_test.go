package logx

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFields_Constructors(t *testing.T) {
	now := time.Now()
	id := int64(7)

	require.Equal(t, Field{Key: "k", Value: "v"}, String("k", "v"))
	require.Equal(t, Field{Key: "k", Value: 1}, Int("k", 1))
	require.Equal(t, Field{Key: "k", Value: int64(2)}, Int64("k", int64(2)))
	require.Equal(t, Field{Key: "k", Value: now}, Time("k", now))
	require.Equal(t, Field{Key: "k", Value: time.Second}, Duration("k", time.Second))
	require.Equal(t, Field{Key: "k", Value: true}, Bool("k", true))
	require.Equal(t, Field{Key: "error", Value: "boom"}, Err(errors.New("boom")))
	require.Equal(t, Field{Key: "error", Value: ""}, Err(nil))
	require.Equal(t, Field{Key: "k", Value: int64(7)}, Int64Ptr("k", &id))
	require.Equal(t, Field{Key: "k", Value: nil}, Int64Ptr("k", nil))
}

func TestNopLogger_NoPanic(t *testing.T) {
	l := Nop()
	l.Debug("d", String("k", "v"))
	l.Info("i", Int("n", 1))
	l.Warn("w")
	l.Error("e")

	l2 := l.With(String("x", "y"))
	require.Equal(t, l, l2)

	require.NoError(t, l.Sync())
	require.NoError(t, l2.Sync())
}

func TestFromSlog_TypedAttrsAndWith(t *testing.T) {
	var buf bytes.Buffer
	l := FromSlog(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	l.With(String("component", "academy")).Info("msg",
		Int64("course_id", 3),
		Duration("delay", 20*time.Millisecond),
		Bool("seed", true),
		Int64Ptr("previous_teacher_id", nil),
	)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "academy", entry["component"])
	require.EqualValues(t, 3, entry["course_id"])
	require.EqualValues(t, 20*time.Millisecond, entry["delay"])
	require.Equal(t, true, entry["seed"])
	require.Contains(t, entry, "previous_teacher_id")
	require.Nil(t, entry["previous_teacher_id"])
	require.NoError(t, l.Sync())
}

func TestFromSlog_NilUsesDefault(t *testing.T) {
	l := FromSlog(nil)
	require.NotNil(t, l)
	require.Equal(t, l, l.With())
	l.Debug("dropped by default level")
}

func TestAttr_Kinds(t *testing.T) {
	now := time.Now()
	require.Equal(t, slog.KindString, attr(String("k", "v")).Value.Kind())
	require.Equal(t, slog.KindInt64, attr(Int("k", 1)).Value.Kind())
	require.Equal(t, slog.KindInt64, attr(Int64("k", 1)).Value.Kind())
	require.Equal(t, slog.KindBool, attr(Bool("k", true)).Value.Kind())
	require.Equal(t, slog.KindDuration, attr(Duration("k", time.Second)).Value.Kind())
	require.Equal(t, slog.KindTime, attr(Time("k", now)).Value.Kind())
	require.Equal(t, slog.KindAny, attr(Any("k", []int{1})).Value.Kind())
}

func TestNewJSON_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewJSON(&buf, slog.LevelWarn)

	l.Info("hidden")
	require.Zero(t, buf.Len())

	l.Warn("shown", Int64("course_id", 3))
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "shown", entry["msg"])
	require.EqualValues(t, 3, entry["course_id"])
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := ParseLevel("verbose")
	require.Error(t, err)
}
