package syncing

import (
	"errors"
	"fmt"
)

// Erros específicos da sincronização
var (
	// Erros de validação
	ErrProjectIDRequired = errors.New("project id is required")
	ErrProjectNotFound   = errors.New("project not found")
	ErrInvalidDateRange  = errors.New("invalid date range")

	// Erros do Meta
	ErrMetaNotConnected = errors.New("project has no meta connection")
	ErrMetaIntegration  = errors.New("error fetching data from Meta")

	// Erros de banco de dados
	ErrPersistence = errors.New("error persisting sync results")
)

// SyncError é um erro com contexto adicional para a sincronização
type SyncError struct {
	Err       error  // Erro base
	Code      string // Código de erro para API
	ProjectID string // Projeto envolvido (quando aplicável)
	Details   string // Detalhes adicionais
}

func (e *SyncError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

func NewSyncError(err error, code string, projectID string, details string) *SyncError {
	return &SyncError{
		Err:       err,
		Code:      code,
		ProjectID: projectID,
		Details:   details,
	}
}
