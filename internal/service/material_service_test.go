package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/learnora/backend/internal/apperr"
	"github.com/learnora/backend/internal/authz"
	"github.com/learnora/backend/internal/dto"
	"github.com/learnora/backend/internal/model"
	"github.com/learnora/backend/internal/repository"
)

func newMaterialService(db *gorm.DB, notifier *recordingNotifier) MaterialService {
	return NewMaterialService(
		repository.NewMaterialRepository(db),
		repository.NewCourseRepository(db),
		repository.NewSubscriptionRepository(db),
		notifier,
	)
}

func strptr(s string) *string { return &s }

func TestListMaterialsIsSubscriptionGated(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teacher@example.com", model.RoleTeacher)
	student := createUser(t, db, "student@example.com", model.RoleStudent)

	subscribed := createCourse(t, db, teacher.ID, "Subscribed course")
	other := createCourse(t, db, teacher.ID, "Other course")
	visible := createMaterial(t, db, subscribed.ID, teacher.ID, "Visible")
	createMaterial(t, db, other.ID, teacher.ID, "Hidden")
	own := createMaterial(t, db, other.ID, student.ID, "Student's own")

	subscribe(t, db, student.ID, subscribed.ID, true)

	svc := newMaterialService(db, &recordingNotifier{})
	materials, err := svc.List(studentPrincipal(student))
	require.NoError(t, err)

	ids := make([]uint, 0, len(materials))
	for _, m := range materials {
		ids = append(ids, m.ID)
	}
	assert.ElementsMatch(t, []uint{visible.ID, own.ID}, ids,
		"subscribed-course materials plus authored materials, nothing else")
}

func TestListMaterialsIgnoresInactiveSubscription(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teacher@example.com", model.RoleTeacher)
	student := createUser(t, db, "student@example.com", model.RoleStudent)
	course := createCourse(t, db, teacher.ID, "Course")
	createMaterial(t, db, course.ID, teacher.ID, "M")
	subscribe(t, db, student.ID, course.ID, false)

	svc := newMaterialService(db, &recordingNotifier{})
	materials, err := svc.List(studentPrincipal(student))
	require.NoError(t, err)
	assert.Empty(t, materials)
}

func TestListMaterialsDeniesAnonymous(t *testing.T) {
	db := newTestDB(t)
	svc := newMaterialService(db, &recordingNotifier{})

	_, err := svc.List(authz.Anonymous())
	assert.True(t, apperr.IsKind(err, apperr.KindAuthorization))
}

func TestCreateMaterialRejectsExternalLinks(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teacher@example.com", model.RoleTeacher)
	course := createCourse(t, db, teacher.ID, "Course")

	svc := newMaterialService(db, &recordingNotifier{})
	p := teacherPrincipal(teacher)

	_, err := svc.Create(p, dto.MaterialDTO{
		Title:       "Bad",
		Description: "see https://evil.example.com/doc",
		CourseID:    course.ID,
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.Create(p, dto.MaterialDTO{
		Title:    "Bad video",
		CourseID: course.ID,
		VideoURL: strptr("https://vimeo.com/123"),
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	created, err := svc.Create(p, dto.MaterialDTO{
		Title:       "Good",
		Description: "watch https://youtube.com/watch?v=abc",
		CourseID:    course.ID,
		VideoURL:    strptr("https://youtube.com/watch?v=abc"),
	})
	require.NoError(t, err)
	assert.Equal(t, teacher.ID, *created.OwnerID)
}

func TestCreateMaterialUnknownCourse(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teacher@example.com", model.RoleTeacher)

	svc := newMaterialService(db, &recordingNotifier{})
	_, err := svc.Create(teacherPrincipal(teacher), dto.MaterialDTO{Title: "M", CourseID: 999})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestUpdateMaterialNotifiesActiveSubscribers(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teacher@example.com", model.RoleTeacher)
	course := createCourse(t, db, teacher.ID, "Course")
	material := createMaterial(t, db, course.ID, teacher.ID, "Old title")

	var subscribers []model.User
	for i := 0; i < 2; i++ {
		u := createUser(t, db, uniqueEmail("subscriber", i), model.RoleStudent)
		subscribe(t, db, u.ID, course.ID, true)
		subscribers = append(subscribers, u)
	}
	lapsed := createUser(t, db, "lapsed@example.com", model.RoleStudent)
	subscribe(t, db, lapsed.ID, course.ID, false)

	notifier := &recordingNotifier{}
	svc := newMaterialService(db, notifier)

	_, err := svc.Update(teacherPrincipal(teacher), material.ID, dto.MaterialDTO{
		Title:    "New title",
		CourseID: course.ID,
	})
	require.NoError(t, err)

	require.Len(t, notifier.messages, 2, "one message per active subscriber only")
	recipients := []string{notifier.messages[0].RecipientEmail, notifier.messages[1].RecipientEmail}
	assert.ElementsMatch(t, []string{subscribers[0].Email, subscribers[1].Email}, recipients)
	for _, msg := range notifier.messages {
		assert.Equal(t, "New title", msg.Title)
	}
}

func TestCreateMaterialRequiresTeacher(t *testing.T) {
	db := newTestDB(t)
	student := createUser(t, db, "student@example.com", model.RoleStudent)

	svc := newMaterialService(db, &recordingNotifier{})
	_, err := svc.Create(studentPrincipal(student), dto.MaterialDTO{Title: "M", CourseID: 1})
	assert.True(t, apperr.IsKind(err, apperr.KindAuthorization))
}

func TestDeleteMaterial(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teacher@example.com", model.RoleTeacher)
	course := createCourse(t, db, teacher.ID, "Course")
	material := createMaterial(t, db, course.ID, teacher.ID, "M")
	createTest(t, db, material.ID, teacher.ID, "Q", "*a")

	svc := newMaterialService(db, &recordingNotifier{})
	require.NoError(t, svc.Delete(teacherPrincipal(teacher), material.ID))

	assert.EqualValues(t, 0, countRows(t, db, &model.Material{}))
	assert.EqualValues(t, 0, countRows(t, db, &model.Test{}), "tests fall with their material")
	assert.EqualValues(t, 0, countRows(t, db, &model.AnswerOption{}))
}
