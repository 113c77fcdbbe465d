package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePreset(t *testing.T) {
	now := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name   string
		preset string
		since  string
		until  string
	}{
		{name: "hoje", preset: PresetToday, since: "2024-03-15", until: "2024-03-15"},
		{name: "ontem", preset: PresetYesterday, since: "2024-03-14", until: "2024-03-14"},
		{name: "últimos 7 dias terminam ontem", preset: PresetLast7d, since: "2024-03-08", until: "2024-03-14"},
		{name: "últimos 14 dias", preset: PresetLast14d, since: "2024-03-01", until: "2024-03-14"},
		{name: "últimos 30 dias", preset: PresetLast30d, since: "2024-02-14", until: "2024-03-14"},
		{name: "últimos 90 dias", preset: PresetLast90d, since: "2023-12-16", until: "2024-03-14"},
		{name: "este mês", preset: PresetThisMonth, since: "2024-03-01", until: "2024-03-15"},
		{name: "mês passado em ano bissexto", preset: PresetLastMonth, since: "2024-02-01", until: "2024-02-29"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ResolvePreset(tt.preset, now)
			require.NoError(t, err)
			assert.Equal(t, tt.since, r.Since.Format(time.DateOnly))
			assert.Equal(t, tt.until, r.Until.Format(time.DateOnly))
		})
	}
}

func TestResolvePreset_Desconhecido(t *testing.T) {
	_, err := ResolvePreset("last_year", time.Now())
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestResolvePreset_MesPassadoEmJaneiro(t *testing.T) {
	r, err := ResolvePreset(PresetLastMonth, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "2023-12-01", r.Since.Format(time.DateOnly))
	assert.Equal(t, "2023-12-31", r.Until.Format(time.DateOnly))
}

func TestParseDateRange(t *testing.T) {
	r, err := ParseDateRange("2024-01-01", "2024-01-31")
	require.NoError(t, err)
	assert.Equal(t, 30*24*time.Hour, r.Until.Sub(r.Since))

	_, err = ParseDateRange("2024-02-01", "2024-01-31")
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = ParseDateRange("01/02/2024", "2024-01-31")
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = ParseDateRange("", "2024-01-31")
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestParseBudget(t *testing.T) {
	assert.Nil(t, ParseBudget(""))
	assert.Nil(t, ParseBudget("abc"))
	budget := ParseBudget("5000")
	require.NotNil(t, budget)
	assert.Equal(t, 50.0, *budget)
}

func TestParseNumbers(t *testing.T) {
	assert.Equal(t, 12.5, ParseFloat("12.5"))
	assert.Equal(t, 0.0, ParseFloat(""))
	assert.Equal(t, int64(1000), ParseInt("1000"))
	assert.Equal(t, int64(0), ParseInt("x"))
}
