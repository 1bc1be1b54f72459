package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateID gera o identificador interno de uma campanha
func GenerateID() (string, error) {
	return gonanoid.Generate(characters, 12)
}

// GenerateRunID identifica uma execução do sync nos logs e no status
func GenerateRunID() string {
	id, err := gonanoid.Generate(characters, 8)
	if err != nil {
		return "sync"
	}
	return "sync_" + id
}
