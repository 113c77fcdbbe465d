package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/vfg2006/meta-ads-sync/internal/domain"
)

const (
	PresetToday     = "today"
	PresetYesterday = "yesterday"
	PresetLast7d    = "last_7d"
	PresetLast14d   = "last_14d"
	PresetLast30d   = "last_30d"
	PresetLast90d   = "last_90d"
	PresetThisMonth = "this_month"
	PresetLastMonth = "last_month"
)

var ErrInvalidDateRange = errors.New("invalid date range")

// ParseDateRange valida um intervalo explícito no formato YYYY-MM-DD
func ParseDateRange(since, until string) (domain.DateRange, error) {
	if since == "" || until == "" {
		return domain.DateRange{}, fmt.Errorf("%w: since e until são obrigatórios", ErrInvalidDateRange)
	}

	start, err := time.Parse(time.DateOnly, since)
	if err != nil {
		return domain.DateRange{}, fmt.Errorf("%w: since inválido: %s", ErrInvalidDateRange, since)
	}

	end, err := time.Parse(time.DateOnly, until)
	if err != nil {
		return domain.DateRange{}, fmt.Errorf("%w: until inválido: %s", ErrInvalidDateRange, until)
	}

	if end.Before(start) {
		return domain.DateRange{}, fmt.Errorf("%w: until anterior a since", ErrInvalidDateRange)
	}

	return domain.DateRange{Since: start, Until: end}, nil
}

// ResolvePreset converte um preset nomeado em intervalo de datas relativo a now.
// Os presets last_Nd terminam ontem, como no gerenciador de anúncios.
func ResolvePreset(preset string, now time.Time) (domain.DateRange, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)

	switch preset {
	case PresetToday:
		return domain.DateRange{Since: today, Until: today}, nil
	case PresetYesterday:
		return domain.DateRange{Since: yesterday, Until: yesterday}, nil
	case PresetLast7d:
		return domain.DateRange{Since: today.AddDate(0, 0, -7), Until: yesterday}, nil
	case PresetLast14d:
		return domain.DateRange{Since: today.AddDate(0, 0, -14), Until: yesterday}, nil
	case PresetLast30d:
		return domain.DateRange{Since: today.AddDate(0, 0, -30), Until: yesterday}, nil
	case PresetLast90d:
		return domain.DateRange{Since: today.AddDate(0, 0, -90), Until: yesterday}, nil
	case PresetThisMonth:
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		return domain.DateRange{Since: first, Until: today}, nil
	case PresetLastMonth:
		firstThisMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		return domain.DateRange{Since: firstThisMonth.AddDate(0, -1, 0), Until: firstThisMonth.AddDate(0, 0, -1)}, nil
	default:
		return domain.DateRange{}, fmt.Errorf("%w: preset desconhecido: %s", ErrInvalidDateRange, preset)
	}
}
