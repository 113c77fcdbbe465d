package domain

import "errors"

// Erros compartilhados entre a integração com o Meta e os casos de uso
var (
	ErrMetaTokenExpired = errors.New("meta access token expired")
	ErrMetaRateLimited  = errors.New("meta rate limit exceeded")
)
