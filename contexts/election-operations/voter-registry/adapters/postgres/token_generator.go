package postgresadapter

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

type SecretTokenGenerator struct{}

// NewToken returns the 32-char hex form so tokens survive URL paths unescaped.
func (SecretTokenGenerator) NewToken(_ context.Context) (string, error) {
	return strings.ReplaceAll(uuid.NewString(), "-", ""), nil
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
