package planparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_PureJSON(t *testing.T) {
	raw := `[
		{"day": 1, "title": "Intro to React", "description": "Learn JSX", "resources": ["React docs"]},
		{"day": 2, "title": "Components", "description": "Props and state", "resources": []}
	]`

	tasks, err := ExtractTaskArray(raw)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, 1, tasks[0].Day)
	assert.Equal(t, "Intro to React", tasks[0].Title)
	assert.Equal(t, []string{"React docs"}, tasks[0].Resources)
}

func TestExtract_WrappedInProse(t *testing.T) {
	raw := `Sure! Here is your plan:

[{"day": 1, "title": "Setup", "description": "Install tools"}]

Good luck with your learning journey!`

	tasks, err := ExtractTaskArray(raw)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Setup", tasks[0].Title)
	// 缺失的resources字段应被规范化为空列表
	assert.NotNil(t, tasks[0].Resources)
	assert.Empty(t, tasks[0].Resources)
}

func TestExtract_BracketsInsideStrings(t *testing.T) {
	// 标题中的方括号不应干扰配平扫描
	raw := `Note [important]: [{"day": 1, "title": "Read [1] and [2]", "description": "d", "resources": ["a [b] c"]}] done`

	tasks, err := ExtractTaskArray(raw)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Read [1] and [2]", tasks[0].Title)
}

func TestExtract_SkipsNonTaskArrays(t *testing.T) {
	// 第一个数组不是任务形状，应继续扫描后面的数组
	raw := `ids: [1, 2, 3] plan: [{"day": 1, "title": "Go basics", "description": "tour"}]`

	tasks, err := ExtractTaskArray(raw)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Go basics", tasks[0].Title)
}

func TestExtract_NoArray(t *testing.T) {
	_, err := ExtractTaskArray("I cannot help with that request.")
	assert.ErrorIs(t, err, ErrNoTaskArray)
}

func TestExtract_MalformedArray(t *testing.T) {
	_, err := ExtractTaskArray(`[{"day": 1, "title": "oops"`)
	assert.ErrorIs(t, err, ErrNoTaskArray)
}

func TestExtract_InvalidShape(t *testing.T) {
	// 缺少title的条目不满足任务形状
	_, err := ExtractTaskArray(`[{"day": 0, "description": "no title"}]`)
	assert.ErrorIs(t, err, ErrNoTaskArray)
}
