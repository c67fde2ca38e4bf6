package main

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/arpg/internal/model"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLogLevel(tt.in), tt.in)
	}
}

func TestCountStates(t *testing.T) {
	views := []model.MonsterView{
		{State: "HUNT"},
		{State: "WALK"},
		{State: "WALK"},
	}
	assert.Equal(t, map[string]int{"HUNT": 1, "WALK": 2}, countStates(views))
	assert.Empty(t, countStates(nil))
}
