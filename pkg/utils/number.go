package utils

import (
	"strconv"
)

// ParseFloat converte strings numéricas da API; vazio ou inválido vira 0
func ParseFloat(s string) float64 {
	if s == "" {
		return 0
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseInt converte strings inteiras da API; vazio ou inválido vira 0
func ParseInt(s string) int64 {
	if s == "" {
		return 0
	}

	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return int64(ParseFloat(s))
	}
	return v
}

// ParseBudget converte orçamentos em centavos ("5000") para a unidade da moeda
func ParseBudget(s string) *float64 {
	if s == "" {
		return nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}

	budget := v / 100
	return &budget
}
