package generator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SlpAus/skillsprint-backend/internal/platform/config"
)

func newTestClient(baseURL string, maxAttempts int) *OpenRouterClient {
	return NewOpenRouterClient(config.GeneratorConfig{
		BaseURL:        baseURL,
		Model:          "test-model",
		APIKey:         "test-key",
		TimeoutSeconds: 5,
		MaxAttempts:    maxAttempts,
	})
}

func completionResponse(content string) []byte {
	resp := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
	data, _ := json.Marshal(resp)
	return data
}

func TestGeneratePlan_ParsesProseWrappedCompletion(t *testing.T) {
	var gotAuth, gotPath string
	var gotBody chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		// 模型经常在JSON前后夹带说明文字
		content := `Here is your plan:
[
  { "day": 1, "title": "安装环境", "description": "配置开发环境", "resources": ["官方文档"] },
  { "day": 2, "title": "基础语法", "description": "", "resources": [] }
]
Good luck!`
		w.Write(completionResponse(content))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 1)
	tasks, err := client.GeneratePlan(context.Background(), "学习Go", 2)
	require.NoError(t, err)

	require.Len(t, tasks, 2)
	assert.Equal(t, 1, tasks[0].Day)
	assert.Equal(t, "安装环境", tasks[0].Title)
	assert.Equal(t, []string{"官方文档"}, tasks[0].Resources)
	assert.Equal(t, []string{}, tasks[1].Resources)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "/chat/completions", gotPath)
	assert.Equal(t, "test-model", gotBody.Model)
	require.Len(t, gotBody.Messages, 1)
	assert.Contains(t, gotBody.Messages[0].Content, "学习Go")
	assert.Contains(t, gotBody.Messages[0].Content, "2-day")
}

func TestGeneratePlan_RetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write(completionResponse(`[{ "day": 1, "title": "开始", "description": "", "resources": [] }]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 3)
	tasks, err := client.GeneratePlan(context.Background(), "学习Go", 1)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.EqualValues(t, 2, calls.Load())
}

func TestGeneratePlan_FailsAfterMaxAttempts(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 2)
	_, err := client.GeneratePlan(context.Background(), "学习Go", 1)
	require.Error(t, err)
	assert.EqualValues(t, 2, calls.Load())
}

func TestGeneratePlan_EmptyCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 1)
	_, err := client.GeneratePlan(context.Background(), "学习Go", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestGeneratePlan_RespectsCallerCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := newTestClient(server.URL, 3)
	_, err := client.GeneratePlan(ctx, "学习Go", 1)
	require.Error(t, err)
}
