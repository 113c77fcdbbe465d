package syncing

import "github.com/vfg2006/meta-ads-sync/internal/domain"

// allZero indica se todas as linhas têm gasto, impressões e cliques zerados.
// Um conjunto vazio não é considerado suspeito.
func allZero(insights domain.InsightsByAd) bool {
	rows := 0
	for _, byDate := range insights {
		for _, row := range byDate {
			if !row.Metrics.IsZero() {
				return false
			}
			rows++
		}
	}
	return rows > 0
}

// shouldRetry decide se a passagem deve ser refeita em vez de persistida.
// Quando as tentativas acabam o resultado zerado é aceito como final.
func shouldRetry(insights domain.InsightsByAd, retriesUsed, maxRetries int) bool {
	return allZero(insights) && retriesUsed < maxRetries
}
