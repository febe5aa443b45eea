package sprint

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/SlpAus/skillsprint-backend/internal/task"
	"github.com/SlpAus/skillsprint-backend/pkg/planparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeGenerator 是计划生成服务的测试替身。
type fakeGenerator struct {
	tasks []planparse.PlanTask
	err   error
	calls int
}

func (f *fakeGenerator) GeneratePlan(ctx context.Context, goal string, days int) ([]planparse.PlanTask, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.tasks, nil
}

func planOfDays(days int) []planparse.PlanTask {
	plan := make([]planparse.PlanTask, 0, days)
	for d := 1; d <= days; d++ {
		plan = append(plan, planparse.PlanTask{
			Day:         d,
			Title:       fmt.Sprintf("Day %d task", d),
			Description: "Practice",
			Resources:   []string{"docs"},
		})
	}
	return plan
}

func newTestService(t *testing.T, gen *fakeGenerator) (*Service, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Sprint{}, &task.Task{}))
	return NewService(db, gen), db
}

func TestCreate_PersistsSprintAndTasks(t *testing.T) {
	gen := &fakeGenerator{tasks: planOfDays(3)}
	svc, db := newTestService(t, gen)

	created, taskCount, err := svc.Create(context.Background(), CreateInput{
		UserID:          "user-1",
		Title:           "Learn X",
		GoalDescription: "Become proficient in X basics",
		DurationDays:    3,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, taskCount)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.StartDate.IsZero())
	assert.Equal(t, 1, gen.calls)

	// 恰好3条任务，day_number连续覆盖[1,3]，全部是todo
	var tasks []task.Task
	require.NoError(t, db.Where("sprint_id = ?", created.ID).Order("day_number ASC").Find(&tasks).Error)
	require.Len(t, tasks, 3)
	for i, tk := range tasks {
		require.NotNil(t, tk.DayNumber)
		assert.Equal(t, i+1, *tk.DayNumber)
		assert.Equal(t, task.StatusTodo, tk.Status)
		assert.Equal(t, task.StringList{"docs"}, tk.Resources)
	}
}

func TestCreate_GeneratorFailure_RollsBackSprint(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("upstream unavailable")}
	svc, db := newTestService(t, gen)

	_, _, err := svc.Create(context.Background(), CreateInput{
		UserID:          "user-1",
		Title:           "Learn X",
		GoalDescription: "Become proficient in X basics",
		DurationDays:    3,
	})
	require.Error(t, err)

	// 生成失败后不应留下孤儿冲刺，也不应有任何任务
	var sprintCount, taskCount int64
	require.NoError(t, db.Model(&Sprint{}).Count(&sprintCount).Error)
	require.NoError(t, db.Model(&task.Task{}).Count(&taskCount).Error)
	assert.EqualValues(t, 0, sprintCount)
	assert.EqualValues(t, 0, taskCount)
}

func TestListForUser_OnlyOwnSprints(t *testing.T) {
	gen := &fakeGenerator{tasks: planOfDays(1)}
	svc, _ := newTestService(t, gen)

	_, _, err := svc.Create(context.Background(), CreateInput{
		UserID: "user-1", Title: "A", GoalDescription: "goal long enough", DurationDays: 1,
	})
	require.NoError(t, err)
	_, _, err = svc.Create(context.Background(), CreateInput{
		UserID: "user-2", Title: "B", GoalDescription: "goal long enough", DurationDays: 1,
	})
	require.NoError(t, err)

	sprints, err := svc.ListForUser("user-1")
	require.NoError(t, err)
	require.Len(t, sprints, 1)
	assert.Equal(t, "A", sprints[0].Title)
}

func TestGetForUser_ChecksOwnership(t *testing.T) {
	gen := &fakeGenerator{tasks: planOfDays(2)}
	svc, _ := newTestService(t, gen)

	created, _, err := svc.Create(context.Background(), CreateInput{
		UserID: "user-1", Title: "A", GoalDescription: "goal long enough", DurationDays: 2,
	})
	require.NoError(t, err)

	sp, tasks, err := svc.GetForUser("user-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, sp.ID)
	assert.Len(t, tasks, 2)

	// 其他用户看不到这个冲刺
	_, _, err = svc.GetForUser("user-2", created.ID)
	assert.ErrorIs(t, err, ErrSprintNotFound)
}

func TestExists(t *testing.T) {
	gen := &fakeGenerator{tasks: planOfDays(1)}
	svc, _ := newTestService(t, gen)

	created, _, err := svc.Create(context.Background(), CreateInput{
		UserID: "user-1", Title: "A", GoalDescription: "goal long enough", DurationDays: 1,
	})
	require.NoError(t, err)

	ok, err := svc.Exists("user-1", created.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Exists("user-1", "no-such-sprint")
	require.NoError(t, err)
	assert.False(t, ok)
}
