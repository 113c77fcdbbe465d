package metadomain

type Business struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type AdAccount struct {
	ID            string    `json:"id"`
	AccountID     string    `json:"account_id"`
	Name          string    `json:"name"`
	Currency      string    `json:"currency"`
	AccountStatus int       `json:"account_status"`
	Business      *Business `json:"business,omitempty"`
}
