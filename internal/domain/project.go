package domain

import "time"

type ProjectStatus string

const (
	ProjectStatusActive   ProjectStatus = "ACTIVE"
	ProjectStatusArchived ProjectStatus = "ARCHIVED"
)

type Project struct {
	ID             string        `json:"id"`
	OwnerID        string        `json:"owner_id"`
	Name           string        `json:"name"`
	AdAccountID    string        `json:"ad_account_id"`
	BusinessModel  string        `json:"business_model"`
	Currency       string        `json:"currency"`
	AccessToken    string        `json:"-"`
	TokenExpiresAt *time.Time    `json:"token_expires_at,omitempty"`
	Status         ProjectStatus `json:"status"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// HasMetaConnection indica se o projeto tem token e conta de anúncios configurados
func (p *Project) HasMetaConnection() bool {
	return p.AccessToken != "" && p.AdAccountID != ""
}

type CreateProjectRequest struct {
	Name          string `json:"name"`
	AdAccountID   string `json:"ad_account_id"`
	BusinessModel string `json:"business_model"`
	Currency      string `json:"currency"`
}

type MetaConnectionRequest struct {
	AccessToken string `json:"access_token"`
	AdAccountID string `json:"ad_account_id"`
}

type AdAccount struct {
	ID            string `json:"id"`
	AccountID     string `json:"account_id"`
	Name          string `json:"name"`
	Currency      string `json:"currency"`
	AccountStatus int    `json:"account_status"`
	BusinessName  string `json:"business_name,omitempty"`
}
