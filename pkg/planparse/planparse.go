// Package planparse 负责从大模型的自由文本输出中提取结构化的学习计划。
// 模型经常在JSON前后附带解释性文字，因此解析必须具有容错性：
// 先尝试严格解析整段输出，失败后再扫描第一个配平的JSON数组子串。
package planparse

import (
	"encoding/json"
	"errors"
	"strings"
)

// PlanTask 是计划生成服务返回的单日任务描述。
type PlanTask struct {
	Day         int      `json:"day"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Resources   []string `json:"resources"`
}

var (
	// ErrNoTaskArray 表示输出中找不到任何格式正确的任务数组。
	ErrNoTaskArray = errors.New("模型输出中未找到有效的任务JSON数组")
)

// ExtractTaskArray 从模型的原始输出中解析任务列表。
func ExtractTaskArray(raw string) ([]PlanTask, error) {
	trimmed := strings.TrimSpace(raw)

	// 1. 严格解析：输出本身就是一个任务数组
	if tasks, ok := tryParse(trimmed); ok {
		return tasks, nil
	}

	// 2. 容错解析：扫描每一个 '[' 开头的配平数组子串，取第一个能解析成功的
	for i := 0; i < len(trimmed); i++ {
		if trimmed[i] != '[' {
			continue
		}
		candidate, ok := balancedArrayAt(trimmed, i)
		if !ok {
			continue
		}
		if tasks, ok := tryParse(candidate); ok {
			return tasks, nil
		}
	}

	return nil, ErrNoTaskArray
}

// tryParse 尝试将一段文本解析为非空的、形状正确的任务列表。
func tryParse(s string) ([]PlanTask, bool) {
	var tasks []PlanTask
	if err := json.Unmarshal([]byte(s), &tasks); err != nil {
		return nil, false
	}
	if len(tasks) == 0 {
		return nil, false
	}
	for i := range tasks {
		if tasks[i].Day < 1 || tasks[i].Title == "" {
			return nil, false
		}
		if tasks[i].Resources == nil {
			tasks[i].Resources = []string{}
		}
	}
	return tasks, true
}

// balancedArrayAt 从start位置的'['开始，寻找与之配平的']'并返回该子串。
// 扫描时需要跳过JSON字符串字面量内部的括号和转义字符。
func balancedArrayAt(s string, start int) (string, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '[':
			if !inString {
				depth++
			}
		case ']':
			if !inString {
				depth--
				if depth == 0 {
					return s[start : i+1], true
				}
			}
		}
	}
	return "", false
}
