package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/learnora/backend/internal/authz"
	"github.com/learnora/backend/internal/model"
	"github.com/learnora/backend/internal/notify"
)

// newTestDB opens an isolated in-memory database with the same gorm
// settings as production. One connection only, so every query sees the
// same memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Role{},
		&model.Course{},
		&model.Material{},
		&model.Test{},
		&model.AnswerOption{},
		&model.StudentAnswer{},
		&model.Payment{},
		&model.Subscription{},
	))
	return db
}

func seedRole(t *testing.T, db *gorm.DB, name string) model.Role {
	t.Helper()
	role := model.Role{Name: name}
	require.NoError(t, db.Where("name = ?", name).FirstOrCreate(&role).Error)
	return role
}

func createUser(t *testing.T, db *gorm.DB, email, roleName string) model.User {
	t.Helper()
	user := model.User{Email: email, Password: "x"}
	if roleName != "" {
		user.Roles = []model.Role{seedRole(t, db, roleName)}
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func teacherPrincipal(user model.User) authz.Principal {
	return authz.Principal{
		UserID:        user.ID,
		Email:         user.Email,
		Roles:         []authz.Role{authz.RoleTeacher},
		Authenticated: true,
	}
}

func studentPrincipal(user model.User) authz.Principal {
	return authz.Principal{
		UserID:        user.ID,
		Email:         user.Email,
		Roles:         []authz.Role{authz.RoleStudent},
		Authenticated: true,
	}
}

func createCourse(t *testing.T, db *gorm.DB, ownerID uint, title string) model.Course {
	t.Helper()
	course := model.Course{Title: title, Price: 100, OwnerID: &ownerID}
	require.NoError(t, db.Create(&course).Error)
	return course
}

func createMaterial(t *testing.T, db *gorm.DB, courseID, ownerID uint, title string) model.Material {
	t.Helper()
	material := model.Material{Title: title, CourseID: courseID, OwnerID: &ownerID}
	require.NoError(t, db.Create(&material).Error)
	return material
}

// createTest stores a test with the given options; each option string
// prefixed with "*" is flagged correct.
func createTest(t *testing.T, db *gorm.DB, materialID, ownerID uint, question string, options ...string) model.Test {
	t.Helper()
	test := model.Test{Question: question, MaterialID: materialID, OwnerID: &ownerID}
	for _, opt := range options {
		correct := false
		if len(opt) > 0 && opt[0] == '*' {
			correct = true
			opt = opt[1:]
		}
		test.AnswerOptions = append(test.AnswerOptions, model.AnswerOption{
			AnswerText: opt,
			IsCorrect:  correct,
			OwnerID:    &ownerID,
		})
	}
	require.NoError(t, db.Create(&test).Error)
	return test
}

func subscribe(t *testing.T, db *gorm.DB, userID, courseID uint, active bool) model.Subscription {
	t.Helper()
	sub := model.Subscription{UserID: userID, CourseID: courseID, IsSubscribed: active}
	require.NoError(t, db.Create(&sub).Error)
	return sub
}

func countRows(t *testing.T, db *gorm.DB, value interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(value).Count(&n).Error)
	return n
}

// recordingNotifier captures enqueued messages for assertions.
type recordingNotifier struct {
	messages []notify.Message
}

func (n *recordingNotifier) Enqueue(msg notify.Message) {
	n.messages = append(n.messages, msg)
}

func uniqueEmail(prefix string, i int) string {
	return fmt.Sprintf("%s%d@example.com", prefix, i)
}
