package random

import (
	"context"

	"github.com/google/uuid"
)

// Generator hands out random UUIDv4 ids.
type Generator struct{}

func New() *Generator {
	return &Generator{}
}

func (g *Generator) GetID(_ context.Context) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}

	return id.String(), nil
}
