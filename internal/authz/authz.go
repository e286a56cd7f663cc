// Package authz is the access-control resolver. Policy lives in one static
// rule table mapping (resource, action) onto a capability predicate, so the
// rules are testable without HTTP machinery.
package authz

import (
	"github.com/learnora/backend/internal/apperr"
	"github.com/learnora/backend/internal/model"
)

// Role is the closed enumeration of permission groups. Role names coming
// from storage are resolved once, when the principal is loaded.
type Role int8

const (
	RoleTeacher Role = iota + 1
	RoleStudent
)

// RoleFromName maps a stored role name onto the enum. Unknown names are
// ignored (ok=false) rather than treated as an error; an unrecognized
// group grants nothing.
func RoleFromName(name string) (Role, bool) {
	switch name {
	case model.RoleTeacher:
		return RoleTeacher, true
	case model.RoleStudent:
		return RoleStudent, true
	}
	return 0, false
}

// Principal is the actor behind a request. The zero value is anonymous.
type Principal struct {
	UserID        uint
	Email         string
	Roles         []Role
	Authenticated bool
}

func Anonymous() Principal { return Principal{} }

func (p Principal) HasRole(r Role) bool {
	for _, have := range p.Roles {
		if have == r {
			return true
		}
	}
	return false
}

func (p Principal) IsTeacher() bool { return p.HasRole(RoleTeacher) }
func (p Principal) IsStudent() bool { return p.HasRole(RoleStudent) }

type Resource string

const (
	ResourceCourse        Resource = "course"
	ResourceMaterial      Resource = "material"
	ResourceTest          Resource = "test"
	ResourceStudentAnswer Resource = "student_answer"
	ResourcePayment       Resource = "payment"
	ResourceSubscription  Resource = "subscription"
)

type Action string

const (
	ActionList     Action = "list"
	ActionCreate   Action = "create"
	ActionRetrieve Action = "retrieve"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
	ActionActivate Action = "activate"
	ActionPoll     Action = "poll"
)

type capability func(p Principal) bool

func anyone(Principal) bool             { return true }
func authenticated(p Principal) bool    { return p.Authenticated }
func teacher(p Principal) bool          { return p.Authenticated && p.IsTeacher() }
func student(p Principal) bool          { return p.Authenticated && p.IsStudent() }
func studentOrTeacher(p Principal) bool { return p.Authenticated && (p.IsStudent() || p.IsTeacher()) }

// rules is the whole policy. Anything absent from the table is denied.
var rules = map[Resource]map[Action]capability{
	ResourceCourse: {
		ActionList:     anyone,
		ActionCreate:   teacher,
		ActionRetrieve: teacher,
		ActionUpdate:   teacher,
		ActionDelete:   teacher,
	},
	ResourceMaterial: {
		ActionList:     authenticated, // result set is subscription-gated afterwards
		ActionCreate:   teacher,
		ActionRetrieve: teacher,
		ActionUpdate:   teacher,
		ActionDelete:   teacher,
	},
	ResourceTest: {
		ActionList:     studentOrTeacher,
		ActionRetrieve: studentOrTeacher,
		ActionCreate:   teacher,
		ActionUpdate:   teacher,
		ActionDelete:   teacher,
	},
	ResourceStudentAnswer: {
		ActionCreate:   student,
		ActionUpdate:   teacher,
		ActionDelete:   teacher,
		ActionList:     authenticated, // role-filtered by the service
		ActionRetrieve: authenticated,
	},
	ResourcePayment: {
		ActionList:   student,
		ActionCreate: student,
		ActionPoll:   authenticated,
	},
	ResourceSubscription: {
		ActionActivate: authenticated,
	},
}

// Authorize gates entry before any lookup or side effect.
func Authorize(p Principal, res Resource, act Action) error {
	actions, ok := rules[res]
	if !ok {
		return apperr.Authorization("access denied")
	}
	allowed, ok := actions[act]
	if !ok {
		return apperr.Authorization("access denied")
	}
	if !allowed(p) {
		if !p.Authenticated {
			return apperr.Authorization("authentication is required to access this resource")
		}
		return apperr.Authorization("access denied")
	}
	return nil
}

// AuthorizeObject applies the object-level override: teachers pass for any
// object, everyone else passes only for objects they own. ownerID may be
// nil for ownerless records, which only teachers may touch.
func AuthorizeObject(p Principal, ownerID *uint) error {
	if p.IsTeacher() {
		return nil
	}
	if ownerID != nil && p.Authenticated && p.UserID == *ownerID {
		return nil
	}
	return apperr.Authorization("access denied")
}
