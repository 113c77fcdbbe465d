package utils

import (
	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 10
)

// GenerateID gera o identificador curto usado nos projetos
func GenerateID() (string, error) {
	return gonanoid.Generate(characters, idLength)
}

// NewUUID gera identificadores para registros append-only (logs e histórico)
func NewUUID() string {
	return uuid.New().String()
}
