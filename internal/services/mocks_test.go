package services

import (
	"context"

	"pitstop/internal/models"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/mock"
)

type mockCompleter struct {
	mock.Mock
}

func (m *mockCompleter) GenerateChatCompletion(ctx context.Context, messages []ChatMessage) (string, error) {
	args := m.Called(ctx, messages)
	return args.String(0), args.Error(1)
}

func (m *mockCompleter) Status() ProviderStatus { return ProviderStatusActive }
func (m *mockCompleter) Name() string           { return "mock" }
func (m *mockCompleter) ModelName() string      { return "mock-model" }

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) FetchProducts(ctx context.Context) []models.Product {
	args := m.Called(ctx)
	return args.Get(0).([]models.Product)
}

type mockPolicies struct {
	mock.Mock
}

func (m *mockPolicies) FetchPolicies(ctx context.Context) []models.Policy {
	args := m.Called(ctx)
	return args.Get(0).([]models.Policy)
}

type mockChatClient struct {
	mock.Mock
}

func (m *mockChatClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(openai.ChatCompletionResponse), args.Error(1)
}
