// Package generator 封装了对外部文本生成服务(OpenRouter)的调用，
// 用于把一个学习目标拆解成逐日任务计划。
package generator

import (
	"context"

	"github.com/SlpAus/skillsprint-backend/pkg/planparse"
)

// Client 是计划生成服务的抽象。
// sprint模块只依赖这个接口，测试时可以注入假实现。
type Client interface {
	// GeneratePlan 把goal拆解为days天的逐日任务列表。
	GeneratePlan(ctx context.Context, goal string, days int) ([]planparse.PlanTask, error)
}
