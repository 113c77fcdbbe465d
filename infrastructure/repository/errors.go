package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// dbError acrescenta o código do Postgres quando disponível
func dbError(action string, err error) error {
	if pqErr, ok := err.(*pq.Error); ok {
		return fmt.Errorf("erro no banco de dados ao %s: %w (código: %s)", action, pqErr, pqErr.Code)
	}
	return fmt.Errorf("erro ao %s: %w", action, err)
}

// ErrNotFound indica que nenhuma linha foi afetada pela operação
var ErrNotFound = errors.New("registro não encontrado")
