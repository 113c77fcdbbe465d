package domain

// Metrics agrupa os contadores somáveis e as razões derivadas deles.
// As razões nunca são arredondadas.
type Metrics struct {
	Spend           float64 `json:"spend"`
	Impressions     int64   `json:"impressions"`
	Clicks          int64   `json:"clicks"`
	Reach           int64   `json:"reach"`
	Conversions     float64 `json:"conversions"`
	ConversionValue float64 `json:"conversion_value"`

	CTR  float64 `json:"ctr"`
	CPC  float64 `json:"cpc"`
	CPM  float64 `json:"cpm"`
	CPA  float64 `json:"cpa"`
	ROAS float64 `json:"roas"`
}

// Add soma apenas os contadores; as razões devem ser recalculadas com CalculateDerived
func (m *Metrics) Add(other Metrics) {
	m.Spend += other.Spend
	m.Impressions += other.Impressions
	m.Clicks += other.Clicks
	m.Reach += other.Reach
	m.Conversions += other.Conversions
	m.ConversionValue += other.ConversionValue
}

// CalculateDerived recalcula CTR, CPC, CPM, CPA e ROAS a partir dos totais
func (m *Metrics) CalculateDerived() {
	m.CTR = SafeDivide(float64(m.Clicks), float64(m.Impressions)) * 100
	m.CPM = SafeDivide(m.Spend, float64(m.Impressions)) * 1000
	m.CPC = SafeDivide(m.Spend, float64(m.Clicks))
	m.CPA = SafeDivide(m.Spend, m.Conversions)
	m.ROAS = SafeDivide(m.ConversionValue, m.Spend)
}

// IsZero indica se gasto, impressões e cliques são todos zero
func (m Metrics) IsZero() bool {
	return m.Spend == 0 && m.Impressions == 0 && m.Clicks == 0
}

// SafeDivide retorna 0 quando o denominador é zero
func SafeDivide(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}
