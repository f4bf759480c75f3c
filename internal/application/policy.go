package application

import "github.com/oksasatya/classroom-roster/internal/domain/entity"

func requireAdmin(caller *entity.User) error {
	if !caller.IsAdmin() {
		return ErrUnauthorized
	}
	return nil
}

func requireSelfOrAdmin(caller *entity.User, id string) error {
	if caller == nil || (caller.ID != id && !caller.IsAdmin()) {
		return ErrUnauthorized
	}
	return nil
}

// AuthorizeAdmin and the other Authorize helpers let the HTTP layer turn a
// caller away before the rest of the payload is validated. The services
// repeat the same checks.
func AuthorizeAdmin(caller *entity.User) error { return denied(requireAdmin(caller)) }

func AuthorizeUserUpdate(caller *entity.User, id string) error {
	return denied(requireSelfOrAdmin(caller, id))
}

func AuthorizeClassScope(caller *entity.User, classID string) error {
	return denied(requireClassScope(caller, classID))
}

// requireClassScope lets admins through and teachers only for classes they
// are enrolled in themselves. Students never pass.
func requireClassScope(caller *entity.User, classID string) error {
	switch {
	case caller.IsAdmin():
		return nil
	case caller.IsTeacher() && caller.EnrolledIn(classID):
		return nil
	}
	return ErrUnauthorized
}

// canSeeNotes reports whether enrollment notes may be returned to caller.
func canSeeNotes(caller *entity.User) bool {
	return caller != nil && !caller.IsStudent()
}
