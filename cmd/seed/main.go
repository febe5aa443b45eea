// seed 是一个开发用工具，向数据库写入演示数据：
// 三个演示用户，每人两个冲刺，每个冲刺若干任务、打卡和经验值记录。
package main

import (
	"fmt"
	"time"

	"github.com/SlpAus/skillsprint-backend/internal/checkin"
	"github.com/SlpAus/skillsprint-backend/internal/platform/config"
	"github.com/SlpAus/skillsprint-backend/internal/platform/database"
	"github.com/SlpAus/skillsprint-backend/internal/platform/startup"
	"github.com/SlpAus/skillsprint-backend/internal/sprint"
	"github.com/SlpAus/skillsprint-backend/internal/task"
	"github.com/SlpAus/skillsprint-backend/internal/user"
	"github.com/SlpAus/skillsprint-backend/internal/xp"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

var demoUsers = []struct {
	Email    string
	Password string
}{
	{"alice@skillsprint.com", "alice123"},
	{"bob@skillsprint.com", "bob123"},
	{"charlie@skillsprint.com", "charlie123"},
}

var sampleSprints = []struct {
	Title    string
	Goal     string
	Duration int
}{
	{
		Title:    "Learn TypeScript Fundamentals",
		Goal:     "Master the basics of TypeScript including types, interfaces, generics, and advanced patterns",
		Duration: 7,
	},
	{
		Title:    "Build a REST API with Go",
		Goal:     "Create a fully functional backend API with routing, middleware, and database integration",
		Duration: 5,
	},
}

var sampleTasks = []string{
	"Set up development environment",
	"Learn basic types",
	"Practice interfaces and type aliases",
	"Build typed functions",
	"Explore union and intersection types",
	"Learn generics and constraints",
	"Use utility types",
}

var sampleCheckins = []struct {
	Mood       string
	Difficulty string
	Reflection string
}{
	{"good", "easy", "Feeling productive today!"},
	{"okay", "medium", "Struggled a bit but made progress."},
	{"excellent", "hard", "Crushed it! Learned a lot."},
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("无法加载配置: %v", err))
	}

	database.InitDB(cfg.Database)
	if err := startup.InitializeApplication(); err != nil {
		panic(fmt.Sprintf("初始化数据库失败: %v", err))
	}

	fmt.Println("清空现有数据...")
	// 按外键依赖的倒序清空
	for _, model := range []interface{}{&xp.XpLog{}, &checkin.Checkin{}, &task.Task{}, &sprint.Sprint{}, &user.User{}} {
		if err := database.DB.Where("1 = 1").Delete(model).Error; err != nil {
			panic(fmt.Sprintf("清空数据失败: %v", err))
		}
	}

	for _, du := range demoUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(du.Password), 12)
		if err != nil {
			panic(fmt.Sprintf("哈希密码失败: %v", err))
		}
		newUser := user.User{Email: du.Email, PasswordHash: string(hash)}
		if err := database.DB.Create(&newUser).Error; err != nil {
			panic(fmt.Sprintf("创建用户失败: %v", err))
		}
		fmt.Printf("已创建用户: %s\n", du.Email)

		for _, sp := range sampleSprints {
			newSprint := sprint.Sprint{
				UserID:          newUser.ID,
				Title:           sp.Title,
				GoalDescription: sp.Goal,
				DurationDays:    sp.Duration,
				StartDate:       time.Now(),
			}
			if err := database.DB.Create(&newSprint).Error; err != nil {
				panic(fmt.Sprintf("创建冲刺失败: %v", err))
			}

			for day := 1; day <= sp.Duration; day++ {
				dayNumber := day
				status := task.StatusTodo
				// 前两天的任务标记为已完成，便于演示经验值
				if day <= 2 {
					status = task.StatusCompleted
				}
				newTask := task.Task{
					SprintID:    &newSprint.ID,
					DayNumber:   &dayNumber,
					Title:       sampleTasks[(day-1)%len(sampleTasks)],
					Description: fmt.Sprintf("Day %d of %s", day, sp.Title),
					Status:      status,
				}
				if err := database.DB.Create(&newTask).Error; err != nil {
					panic(fmt.Sprintf("创建任务失败: %v", err))
				}

				if status == task.StatusCompleted {
					entry := xp.XpLog{
						UserID:    newUser.ID,
						SprintID:  &newSprint.ID,
						DayNumber: &dayNumber,
						XpEarned:  xp.RewardTaskCompleted,
						Reason:    xp.ReasonTaskCompleted,
					}
					if err := database.DB.Create(&entry).Error; err != nil {
						panic(fmt.Sprintf("写入经验值账本失败: %v", err))
					}

					ck := sampleCheckins[(day-1)%len(sampleCheckins)]
					newCheckin := checkin.Checkin{
						SprintID:       newSprint.ID,
						DayNumber:      dayNumber,
						ReflectionText: ck.Reflection,
						Mood:           ck.Mood,
						TaskDifficulty: ck.Difficulty,
					}
					if err := database.DB.Create(&newCheckin).Error; err != nil {
						panic(fmt.Sprintf("创建打卡记录失败: %v", err))
					}
				}
			}
			fmt.Printf("  已创建冲刺: %s (%d天)\n", sp.Title, sp.Duration)
		}
	}

	fmt.Println("\n演示数据写入完成！")
}
