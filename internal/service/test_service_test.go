package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/learnora/backend/internal/apperr"
	"github.com/learnora/backend/internal/dto"
	"github.com/learnora/backend/internal/model"
	"github.com/learnora/backend/internal/repository"
)

func newQuizService(db *gorm.DB) TestService {
	return NewTestService(
		repository.NewTestRepository(db),
		repository.NewMaterialRepository(db),
		repository.NewSubscriptionRepository(db),
	)
}

func TestListTestsForStudentIsSubscriptionGated(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teacher@example.com", model.RoleTeacher)
	student := createUser(t, db, "student@example.com", model.RoleStudent)

	subscribed := createCourse(t, db, teacher.ID, "Subscribed")
	other := createCourse(t, db, teacher.ID, "Other")
	visibleMaterial := createMaterial(t, db, subscribed.ID, teacher.ID, "Visible material")
	hiddenMaterial := createMaterial(t, db, other.ID, teacher.ID, "Hidden material")
	visibleTest := createTest(t, db, visibleMaterial.ID, teacher.ID, "Visible?", "*yes", "no")
	createTest(t, db, hiddenMaterial.ID, teacher.ID, "Hidden?", "*yes", "no")

	subscribe(t, db, student.ID, subscribed.ID, true)

	svc := newQuizService(db)
	tests, err := svc.List(studentPrincipal(student), nil)
	require.NoError(t, err)
	require.Len(t, tests, 1)
	assert.Equal(t, visibleTest.ID, tests[0].ID)
}

func TestListTestsMaterialFilterCannotWidenVisibility(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teacher@example.com", model.RoleTeacher)
	student := createUser(t, db, "student@example.com", model.RoleStudent)

	other := createCourse(t, db, teacher.ID, "Other")
	hiddenMaterial := createMaterial(t, db, other.ID, teacher.ID, "Hidden material")
	createTest(t, db, hiddenMaterial.ID, teacher.ID, "Hidden?", "*yes")

	svc := newQuizService(db)
	// Asking for a non-visible material by id yields nothing, not an error.
	tests, err := svc.List(studentPrincipal(student), &hiddenMaterial.ID)
	require.NoError(t, err)
	assert.Empty(t, tests)
}

func TestListTestsForTeacherCoversOwnMaterialsOnly(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice@example.com", model.RoleTeacher)
	bob := createUser(t, db, "bob@example.com", model.RoleTeacher)

	course := createCourse(t, db, alice.ID, "Course")
	aliceMaterial := createMaterial(t, db, course.ID, alice.ID, "Alice's")
	bobMaterial := createMaterial(t, db, course.ID, bob.ID, "Bob's")
	aliceTest := createTest(t, db, aliceMaterial.ID, alice.ID, "A?", "*yes")
	createTest(t, db, bobMaterial.ID, bob.ID, "B?", "*yes")

	svc := newQuizService(db)
	tests, err := svc.List(teacherPrincipal(alice), nil)
	require.NoError(t, err)
	require.Len(t, tests, 1)
	assert.Equal(t, aliceTest.ID, tests[0].ID)
}

func TestGetTestHidesInvisibleAndOmitsCorrectness(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teacher@example.com", model.RoleTeacher)
	student := createUser(t, db, "student@example.com", model.RoleStudent)

	course := createCourse(t, db, teacher.ID, "Course")
	material := createMaterial(t, db, course.ID, teacher.ID, "Material")
	test := createTest(t, db, material.ID, teacher.ID, "Q", "*right", "wrong")

	svc := newQuizService(db)

	// Not subscribed yet: the test does not exist for this student.
	_, err := svc.Get(studentPrincipal(student), test.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	subscribe(t, db, student.ID, course.ID, true)
	resp, err := svc.Get(studentPrincipal(student), test.ID)
	require.NoError(t, err)
	require.Len(t, resp.AnswerOptions, 2)
	texts := []string{resp.AnswerOptions[0].AnswerText, resp.AnswerOptions[1].AnswerText}
	assert.ElementsMatch(t, []string{"right", "wrong"}, texts)
}

func TestCreateTestWithNestedOptions(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teacher@example.com", model.RoleTeacher)
	course := createCourse(t, db, teacher.ID, "Course")
	material := createMaterial(t, db, course.ID, teacher.ID, "Material")

	svc := newQuizService(db)
	resp, err := svc.Create(teacherPrincipal(teacher), dto.TestDTO{
		Question:   "What closes a channel?",
		MaterialID: material.ID,
		AnswerOptions: []dto.AnswerOptionDTO{
			{AnswerText: "close", IsCorrect: true},
			{AnswerText: "delete"},
		},
	})
	require.NoError(t, err)
	assert.Len(t, resp.AnswerOptions, 2)
	assert.EqualValues(t, 2, countRows(t, db, &model.AnswerOption{}))

	_, err = svc.Create(teacherPrincipal(teacher), dto.TestDTO{
		Question:      "Orphan",
		MaterialID:    999,
		AnswerOptions: []dto.AnswerOptionDTO{{AnswerText: "x"}},
	})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestUpdateTestReplacesOptions(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teacher@example.com", model.RoleTeacher)
	course := createCourse(t, db, teacher.ID, "Course")
	material := createMaterial(t, db, course.ID, teacher.ID, "Material")
	test := createTest(t, db, material.ID, teacher.ID, "Old question", "*old", "stale")

	svc := newQuizService(db)
	resp, err := svc.Update(teacherPrincipal(teacher), test.ID, dto.TestDTO{
		Question:   "New question",
		MaterialID: material.ID,
		AnswerOptions: []dto.AnswerOptionDTO{
			{AnswerText: "new", IsCorrect: true},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "New question", resp.Question)
	require.Len(t, resp.AnswerOptions, 1)
	assert.Equal(t, "new", resp.AnswerOptions[0].AnswerText)
	assert.EqualValues(t, 1, countRows(t, db, &model.AnswerOption{}), "stale options do not linger")
}

func TestDeleteTestRemovesAnswers(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teacher@example.com", model.RoleTeacher)
	student := createUser(t, db, "student@example.com", model.RoleStudent)
	course := createCourse(t, db, teacher.ID, "Course")
	material := createMaterial(t, db, course.ID, teacher.ID, "Material")
	test := createTest(t, db, material.ID, teacher.ID, "Q", "*a")

	answers := newAnswerService(db)
	_, err := answers.Submit(studentPrincipal(student), dto.StudentAnswerSubmitDTO{TestID: test.ID, SelectedAnswer: "a"})
	require.NoError(t, err)

	svc := newQuizService(db)
	require.NoError(t, svc.Delete(teacherPrincipal(teacher), test.ID))

	assert.EqualValues(t, 0, countRows(t, db, &model.Test{}))
	assert.EqualValues(t, 0, countRows(t, db, &model.AnswerOption{}))
	assert.EqualValues(t, 0, countRows(t, db, &model.StudentAnswer{}))
}
