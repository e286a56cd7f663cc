package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/learnora/backend/internal/apperr"
)

var (
	anon       = Anonymous()
	teacherP   = Principal{UserID: 1, Roles: []Role{RoleTeacher}, Authenticated: true}
	studentP   = Principal{UserID: 2, Roles: []Role{RoleStudent}, Authenticated: true}
	rolelessP  = Principal{UserID: 3, Authenticated: true}
	dualRolesP = Principal{UserID: 4, Roles: []Role{RoleTeacher, RoleStudent}, Authenticated: true}
)

func TestAuthorizeRuleTable(t *testing.T) {
	cases := []struct {
		name      string
		principal Principal
		resource  Resource
		action    Action
		allowed   bool
	}{
		{"anonymous lists courses", anon, ResourceCourse, ActionList, true},
		{"anonymous cannot create course", anon, ResourceCourse, ActionCreate, false},
		{"student cannot create course", studentP, ResourceCourse, ActionCreate, false},
		{"teacher creates course", teacherP, ResourceCourse, ActionCreate, true},
		{"teacher deletes course", teacherP, ResourceCourse, ActionDelete, true},

		{"anonymous cannot list materials", anon, ResourceMaterial, ActionList, false},
		{"student lists materials", studentP, ResourceMaterial, ActionList, true},
		{"roleless user lists materials", rolelessP, ResourceMaterial, ActionList, true},
		{"student cannot create material", studentP, ResourceMaterial, ActionCreate, false},
		{"teacher updates material", teacherP, ResourceMaterial, ActionUpdate, true},

		{"student lists tests", studentP, ResourceTest, ActionList, true},
		{"teacher lists tests", teacherP, ResourceTest, ActionList, true},
		{"roleless user cannot list tests", rolelessP, ResourceTest, ActionList, false},
		{"student cannot create test", studentP, ResourceTest, ActionCreate, false},

		{"student submits answer", studentP, ResourceStudentAnswer, ActionCreate, true},
		{"teacher cannot submit answer", teacherP, ResourceStudentAnswer, ActionCreate, false},
		{"dual role submits answer", dualRolesP, ResourceStudentAnswer, ActionCreate, true},
		{"student cannot edit answer", studentP, ResourceStudentAnswer, ActionUpdate, false},
		{"teacher edits answer", teacherP, ResourceStudentAnswer, ActionUpdate, true},

		{"student creates payment", studentP, ResourcePayment, ActionCreate, true},
		{"teacher cannot create payment", teacherP, ResourcePayment, ActionCreate, false},
		{"anonymous cannot poll payment", anon, ResourcePayment, ActionPoll, false},
		{"roleless user polls payment", rolelessP, ResourcePayment, ActionPoll, true},

		{"anonymous cannot activate subscription", anon, ResourceSubscription, ActionActivate, false},
		{"student activates subscription", studentP, ResourceSubscription, ActionActivate, true},

		{"unknown action is denied", teacherP, ResourcePayment, ActionDelete, false},
		{"unknown resource is denied", teacherP, Resource("nothing"), ActionList, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Authorize(tc.principal, tc.resource, tc.action)
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.True(t, apperr.IsKind(err, apperr.KindAuthorization))
			}
		})
	}
}

func TestAuthorizeUnauthenticatedMessage(t *testing.T) {
	err := Authorize(anon, ResourceMaterial, ActionList)
	e, ok := apperr.As(err)
	assert.True(t, ok)
	assert.Equal(t, "authentication is required to access this resource", e.Message)
}

func TestAuthorizeObject(t *testing.T) {
	owner := uint(2)
	other := uint(42)

	assert.NoError(t, AuthorizeObject(teacherP, nil), "teachers touch ownerless objects")
	assert.NoError(t, AuthorizeObject(teacherP, &other), "teachers touch any object")
	assert.NoError(t, AuthorizeObject(studentP, &owner), "owners touch their own objects")
	assert.Error(t, AuthorizeObject(studentP, &other))
	assert.Error(t, AuthorizeObject(studentP, nil), "ownerless objects are teacher-only")
	assert.Error(t, AuthorizeObject(anon, &owner))
}

func TestRoleFromName(t *testing.T) {
	r, ok := RoleFromName("teacher")
	assert.True(t, ok)
	assert.Equal(t, RoleTeacher, r)

	r, ok = RoleFromName("student")
	assert.True(t, ok)
	assert.Equal(t, RoleStudent, r)

	_, ok = RoleFromName("admin")
	assert.False(t, ok, "unknown role names grant nothing")
}
