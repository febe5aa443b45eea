package checkin

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Checkin{}))
	return NewService(db)
}

func TestCreate_AssignsIDAndPersists(t *testing.T) {
	svc := newTestService(t)

	ck := &Checkin{
		SprintID:       "sprint-1",
		DayNumber:      3,
		ReflectionText: "今天完成了基础语法部分",
		Mood:           "good",
		TaskDifficulty: "medium",
	}
	require.NoError(t, svc.Create(ck))
	assert.NotEmpty(t, ck.ID)

	got, err := svc.ListForSprint("sprint-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, ck.ID, got[0].ID)
	assert.Equal(t, 3, got[0].DayNumber)
	assert.False(t, got[0].CreatedAt.IsZero())
}

func TestListForSprint_OrderedByDayAndScoped(t *testing.T) {
	svc := newTestService(t)

	for _, day := range []int{5, 1, 3} {
		require.NoError(t, svc.Create(&Checkin{SprintID: "sprint-1", DayNumber: day}))
	}
	require.NoError(t, svc.Create(&Checkin{SprintID: "sprint-2", DayNumber: 2}))

	got, err := svc.ListForSprint("sprint-1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []int{1, 3, 5}, []int{got[0].DayNumber, got[1].DayNumber, got[2].DayNumber})
}

func TestListForSprint_Empty(t *testing.T) {
	svc := newTestService(t)

	got, err := svc.ListForSprint("sprint-none")
	require.NoError(t, err)
	assert.Empty(t, got)
}
