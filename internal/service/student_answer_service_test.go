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

func newAnswerService(db *gorm.DB) StudentAnswerService {
	return NewStudentAnswerService(
		repository.NewStudentAnswerRepository(db),
		repository.NewTestRepository(db),
	)
}

func TestSubmitGradesByTextEquality(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teacher@example.com", model.RoleTeacher)
	student := createUser(t, db, "student@example.com", model.RoleStudent)
	course := createCourse(t, db, teacher.ID, "Go basics")
	material := createMaterial(t, db, course.ID, teacher.ID, "Slices")
	test := createTest(t, db, material.ID, teacher.ID, "What grows a slice?", "*append", "copy", "make")

	svc := newAnswerService(db)
	p := studentPrincipal(student)

	cases := []struct {
		name     string
		selected string
		correct  bool
	}{
		{"exact match", "append", true},
		{"wrong option", "copy", false},
		{"case differs", "Append", false},
		{"free text", "anything else", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := svc.Submit(p, dto.StudentAnswerSubmitDTO{TestID: test.ID, SelectedAnswer: tc.selected})
			require.NoError(t, err)
			assert.Equal(t, tc.correct, resp.IsCorrect)
			assert.Equal(t, student.ID, resp.StudentID)
			assert.Equal(t, tc.selected, resp.SelectedAnswer)
		})
	}
}

func TestSubmitTieBreaksOnLowestOptionID(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teacher@example.com", model.RoleTeacher)
	student := createUser(t, db, "student@example.com", model.RoleStudent)
	course := createCourse(t, db, teacher.ID, "Go basics")
	material := createMaterial(t, db, course.ID, teacher.ID, "Maps")
	// Two options flagged correct; only the first inserted one counts.
	test := createTest(t, db, material.ID, teacher.ID, "Pick one", "*first", "*second")

	svc := newAnswerService(db)
	p := studentPrincipal(student)

	resp, err := svc.Submit(p, dto.StudentAnswerSubmitDTO{TestID: test.ID, SelectedAnswer: "first"})
	require.NoError(t, err)
	assert.True(t, resp.IsCorrect)

	resp, err = svc.Submit(p, dto.StudentAnswerSubmitDTO{TestID: test.ID, SelectedAnswer: "second"})
	require.NoError(t, err)
	assert.False(t, resp.IsCorrect, "text of a later duplicate-correct option must not match")
}

func TestSubmitWithoutCorrectOptionGradesIncorrect(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teacher@example.com", model.RoleTeacher)
	student := createUser(t, db, "student@example.com", model.RoleStudent)
	course := createCourse(t, db, teacher.ID, "Go basics")
	material := createMaterial(t, db, course.ID, teacher.ID, "Channels")
	test := createTest(t, db, material.ID, teacher.ID, "Unscored question", "yes", "no")

	svc := newAnswerService(db)
	resp, err := svc.Submit(studentPrincipal(student), dto.StudentAnswerSubmitDTO{TestID: test.ID, SelectedAnswer: "yes"})
	require.NoError(t, err)
	assert.False(t, resp.IsCorrect)
}

func TestSubmitUnknownTest(t *testing.T) {
	db := newTestDB(t)
	student := createUser(t, db, "student@example.com", model.RoleStudent)

	svc := newAnswerService(db)
	_, err := svc.Submit(studentPrincipal(student), dto.StudentAnswerSubmitDTO{TestID: 999, SelectedAnswer: "x"})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestSubmitAuthorization(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teacher@example.com", model.RoleTeacher)

	svc := newAnswerService(db)
	req := dto.StudentAnswerSubmitDTO{TestID: 1, SelectedAnswer: "x"}

	_, err := svc.Submit(teacherPrincipal(teacher), req)
	assert.True(t, apperr.IsKind(err, apperr.KindAuthorization), "teachers do not submit answers")

	_, err = svc.Submit(authz.Anonymous(), req)
	assert.True(t, apperr.IsKind(err, apperr.KindAuthorization))
}

func TestResubmissionsAreStoredIndependently(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teacher@example.com", model.RoleTeacher)
	student := createUser(t, db, "student@example.com", model.RoleStudent)
	course := createCourse(t, db, teacher.ID, "Go basics")
	material := createMaterial(t, db, course.ID, teacher.ID, "Slices")
	test := createTest(t, db, material.ID, teacher.ID, "Q", "*a", "b")

	svc := newAnswerService(db)
	p := studentPrincipal(student)

	first, err := svc.Submit(p, dto.StudentAnswerSubmitDTO{TestID: test.ID, SelectedAnswer: "b"})
	require.NoError(t, err)
	second, err := svc.Submit(p, dto.StudentAnswerSubmitDTO{TestID: test.ID, SelectedAnswer: "a"})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.False(t, first.IsCorrect)
	assert.True(t, second.IsCorrect)
	assert.EqualValues(t, 2, countRows(t, db, &model.StudentAnswer{}))
}

func TestSubmitBatchPersistsAllOrNothing(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teacher@example.com", model.RoleTeacher)
	student := createUser(t, db, "student@example.com", model.RoleStudent)
	course := createCourse(t, db, teacher.ID, "Go basics")
	material := createMaterial(t, db, course.ID, teacher.ID, "Slices")
	testA := createTest(t, db, material.ID, teacher.ID, "A", "*yes", "no")
	testB := createTest(t, db, material.ID, teacher.ID, "B", "yes", "*no")

	svc := newAnswerService(db)
	p := studentPrincipal(student)

	// A batch containing an unknown test fails before anything is stored.
	_, err := svc.SubmitBatch(p, dto.StudentAnswerBatchDTO{Answers: []dto.StudentAnswerSubmitDTO{
		{TestID: testA.ID, SelectedAnswer: "yes"},
		{TestID: 999, SelectedAnswer: "no"},
	}})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	assert.EqualValues(t, 0, countRows(t, db, &model.StudentAnswer{}))

	// A clean batch grades each entry independently.
	resps, err := svc.SubmitBatch(p, dto.StudentAnswerBatchDTO{Answers: []dto.StudentAnswerSubmitDTO{
		{TestID: testA.ID, SelectedAnswer: "yes"},
		{TestID: testB.ID, SelectedAnswer: "yes"},
	}})
	require.NoError(t, err)
	require.Len(t, resps, 2)
	assert.True(t, resps[0].IsCorrect)
	assert.False(t, resps[1].IsCorrect)
	assert.EqualValues(t, 2, countRows(t, db, &model.StudentAnswer{}))
}

func TestListAnswersIsRoleFiltered(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teacher@example.com", model.RoleTeacher)
	alice := createUser(t, db, "alice@example.com", model.RoleStudent)
	bob := createUser(t, db, "bob@example.com", model.RoleStudent)
	course := createCourse(t, db, teacher.ID, "Go basics")
	material := createMaterial(t, db, course.ID, teacher.ID, "Slices")
	test := createTest(t, db, material.ID, teacher.ID, "Q", "*a")

	svc := newAnswerService(db)
	_, err := svc.Submit(studentPrincipal(alice), dto.StudentAnswerSubmitDTO{TestID: test.ID, SelectedAnswer: "a"})
	require.NoError(t, err)
	_, err = svc.Submit(studentPrincipal(bob), dto.StudentAnswerSubmitDTO{TestID: test.ID, SelectedAnswer: "b"})
	require.NoError(t, err)

	all, err := svc.List(teacherPrincipal(teacher), nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	own, err := svc.List(studentPrincipal(alice), nil)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, alice.ID, own[0].StudentID)
}

func TestUpdateAnswerRegrades(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teacher@example.com", model.RoleTeacher)
	student := createUser(t, db, "student@example.com", model.RoleStudent)
	course := createCourse(t, db, teacher.ID, "Go basics")
	material := createMaterial(t, db, course.ID, teacher.ID, "Slices")
	test := createTest(t, db, material.ID, teacher.ID, "Q", "*right", "wrong")

	svc := newAnswerService(db)
	submitted, err := svc.Submit(studentPrincipal(student), dto.StudentAnswerSubmitDTO{TestID: test.ID, SelectedAnswer: "wrong"})
	require.NoError(t, err)
	require.False(t, submitted.IsCorrect)

	updated, err := svc.Update(teacherPrincipal(teacher), submitted.ID, dto.StudentAnswerUpdateDTO{SelectedAnswer: "right"})
	require.NoError(t, err)
	assert.True(t, updated.IsCorrect)
	assert.Equal(t, student.ID, updated.StudentID, "ownership survives the update")

	_, err = svc.Update(studentPrincipal(student), submitted.ID, dto.StudentAnswerUpdateDTO{SelectedAnswer: "right"})
	assert.True(t, apperr.IsKind(err, apperr.KindAuthorization), "students do not edit graded answers")
}

func TestDeleteAnswer(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teacher@example.com", model.RoleTeacher)
	student := createUser(t, db, "student@example.com", model.RoleStudent)
	course := createCourse(t, db, teacher.ID, "Go basics")
	material := createMaterial(t, db, course.ID, teacher.ID, "Slices")
	test := createTest(t, db, material.ID, teacher.ID, "Q", "*a")

	svc := newAnswerService(db)
	submitted, err := svc.Submit(studentPrincipal(student), dto.StudentAnswerSubmitDTO{TestID: test.ID, SelectedAnswer: "a"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(teacherPrincipal(teacher), submitted.ID))
	assert.EqualValues(t, 0, countRows(t, db, &model.StudentAnswer{}))

	err = svc.Delete(teacherPrincipal(teacher), submitted.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
