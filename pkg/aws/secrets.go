package aws

import (
	"context"
	"fmt"
	"sync"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

type secretsAPI interface {
	GetSecretValue(ctx context.Context, in *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// SecretsClient resolves startup secrets such as MONGO_URI. Values are read
// once and kept for the life of the process.
type SecretsClient struct {
	api    secretsAPI
	mu     sync.Mutex
	values map[string]string
}

func NewSecretsClient(cfg sdkaws.Config) *SecretsClient {
	return newSecretsClient(secretsmanager.NewFromConfig(cfg))
}

func newSecretsClient(api secretsAPI) *SecretsClient {
	return &SecretsClient{api: api, values: map[string]string{}}
}

func (s *SecretsClient) GetSecret(ctx context.Context, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.values[name]; ok {
		return v, nil
	}

	out, err := s.api.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{SecretId: sdkaws.String(name)})
	if err != nil {
		return "", fmt.Errorf("read secret %q: %w", name, err)
	}
	if out.SecretString == nil || *out.SecretString == "" {
		return "", fmt.Errorf("secret %q is empty or binary", name)
	}

	s.values[name] = *out.SecretString
	return *out.SecretString, nil
}
