package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/SlpAus/skillsprint-backend/internal/platform/config"
	"github.com/SlpAus/skillsprint-backend/pkg/planparse"
)

// promptTemplate 与模型约定只输出JSON数组。
// 实际上模型经常夹带解释文字，所以解析端还有一层容错（见planparse）。
const promptTemplate = `
You are a helpful assistant that generates structured learning plans.

Break down the goal "%s" into a %d-day learning plan.

Respond ONLY with a valid JSON array like:
[
  { "day": 1, "title": "Intro to React", "description": "Learn JSX and components", "resources": ["React docs", "freeCodeCamp"] },
  ...
]

Do not include any explanation, greeting, or formatting outside the JSON.
`

// ErrEmptyCompletion 表示服务返回了空的回复。
var ErrEmptyCompletion = errors.New("生成服务返回了空回复")

// OpenRouterClient 通过OpenRouter的chat completions接口生成学习计划。
// 每次请求有独立的超时，失败后按配置的次数线性退避重试。
type OpenRouterClient struct {
	cfg        config.GeneratorConfig
	httpClient *http.Client
}

// NewOpenRouterClient 根据配置创建一个OpenRouter客户端。
func NewOpenRouterClient(cfg config.GeneratorConfig) *OpenRouterClient {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.TimeoutSeconds < 1 {
		cfg.TimeoutSeconds = 30
	}
	return &OpenRouterClient{
		cfg:        cfg,
		httpClient: &http.Client{},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// GeneratePlan 实现 Client 接口。
func (c *OpenRouterClient) GeneratePlan(ctx context.Context, goal string, days int) ([]planparse.PlanTask, error) {
	var lastErr error
	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		tasks, err := c.requestPlan(ctx, goal, days)
		if err == nil {
			return tasks, nil
		}
		lastErr = err
		fmt.Printf("生成计划第 %d/%d 次尝试失败: %v\n", attempt, c.cfg.MaxAttempts, err)

		if attempt < c.cfg.MaxAttempts {
			// 线性退避，同时尊重调用方的取消
			backoff := time.Duration(attempt) * time.Second
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}
	return nil, fmt.Errorf("生成学习计划失败: %w", lastErr)
}

// requestPlan 执行单次带超时的请求并解析任务列表。
func (c *OpenRouterClient) requestPlan(ctx context.Context, goal string, days int) ([]planparse.PlanTask, error) {
	reqCtx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutSeconds)*time.Second)
	defer cancel()

	body := chatRequest{
		Model:       c.cfg.Model,
		Messages:    []chatMessage{{Role: "user", Content: fmt.Sprintf(promptTemplate, goal, days)}},
		Temperature: c.cfg.Temperature,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("无法序列化请求体: %w", err)
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("无法构造请求: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("HTTP-Referer", c.cfg.Referer)
	req.Header.Set("X-Title", "SkillSprint")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求生成服务失败: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("读取生成服务响应失败: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("生成服务返回状态码 %d: %s", resp.StatusCode, truncate(string(data), 200))
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("无法解析生成服务响应: %w", err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return nil, ErrEmptyCompletion
	}

	tasks, err := planparse.ExtractTaskArray(parsed.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// truncate 截断过长的错误详情，避免把整个响应刷进日志。
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
