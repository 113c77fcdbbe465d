package projecting

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de projetos
var (
	// Erros de validação
	ErrProjectIDRequired   = errors.New("project ID is required")
	ErrProjectNameRequired = errors.New("project name is required")
	ErrProjectNotFound     = errors.New("project not found")
	ErrAccessTokenRequired = errors.New("access token is required")

	// Erros de serviços externos
	ErrMetaTokenExpired = errors.New("meta token expired")
	ErrMetaIntegration  = errors.New("error fetching data from Meta")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("database operation error")

	ErrGenerateID = errors.New("error generating ID")
)

// ProjectError é um erro com contexto adicional para projetos
type ProjectError struct {
	Err       error  // Erro base
	Code      string // Código de erro para API
	ProjectID string // ID do projeto envolvido (quando aplicável)
	Details   string // Detalhes adicionais
}

// Error implementa a interface error
func (e *ProjectError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *ProjectError) Unwrap() error {
	return e.Err
}

// NewProjectError cria um novo ProjectError
func NewProjectError(err error, code string, details string) *ProjectError {
	return &ProjectError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// NewProjectErrorWithID cria um novo ProjectError com ID do projeto
func NewProjectErrorWithID(err error, code string, projectID string, details string) *ProjectError {
	return &ProjectError{
		Err:       err,
		Code:      code,
		ProjectID: projectID,
		Details:   details,
	}
}
