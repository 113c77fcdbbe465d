package metadomain

import (
	"github.com/tidwall/gjson"
)

// ConversionValueActionTypes define a prioridade dos tipos usados para o valor de conversão.
// Apenas o primeiro encontrado é usado, nunca a soma.
var ConversionValueActionTypes = []string{
	"omni_purchase",
	"purchase",
	"offsite_conversion.fb_pixel_purchase",
}

// InsightRow é uma linha diária de insights no nível de anúncio
type InsightRow struct {
	AdID            string
	AdSetID         string
	CampaignID      string
	DateStart       string
	Spend           string
	Impressions     string
	Clicks          string
	Reach           string
	Conversions     float64
	ConversionValue float64
	HasResults      bool
}

// ParseInsightRow lê uma linha crua da API.
// Conversões vêm exclusivamente do campo "results"; o array "actions" é ignorado.
func ParseInsightRow(raw []byte) InsightRow {
	row := gjson.ParseBytes(raw)

	insight := InsightRow{
		AdID:        row.Get("ad_id").String(),
		AdSetID:     row.Get("adset_id").String(),
		CampaignID:  row.Get("campaign_id").String(),
		DateStart:   row.Get("date_start").String(),
		Spend:       row.Get("spend").String(),
		Impressions: row.Get("impressions").String(),
		Clicks:      row.Get("clicks").String(),
		Reach:       row.Get("reach").String(),
	}

	results := row.Get("results.0.values.0.value")
	if results.Exists() {
		insight.HasResults = true
		insight.Conversions = results.Float()
	}

	for _, actionType := range ConversionValueActionTypes {
		value := row.Get(`action_values.#(action_type=="` + actionType + `").value`)
		if value.Exists() {
			insight.ConversionValue = value.Float()
			break
		}
	}

	return insight
}
