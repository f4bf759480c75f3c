package application_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/oksasatya/classroom-roster/internal/application"
	"github.com/oksasatya/classroom-roster/internal/domain/entity"
)

var _ = Describe("EnrollmentService", func() {
	var (
		r       *roster
		admin   *entity.User
		c1, c2  *entity.Class
		teacher *entity.User
		student *entity.User
	)

	BeforeEach(func() {
		r = newRoster()
		admin = r.seedAdmin()
		c1 = r.createClass(admin, "C1")
		c2 = r.createClass(admin, "C2")
		t := r.createUser(admin, "t@example.com", entity.RoleTeacher)
		student = r.createUser(admin, "s@example.com", entity.RoleStudent)
		r.enroll(admin, t, c1)
		r.enroll(admin, student, c1)
		r.enroll(admin, student, c2)
		teacher = r.as(t)
	})

	Describe("AddUserToClass", func() {
		Specify("happy path", func() {
			u := r.createUser(admin, "u@example.com", entity.RoleStudent)
			e, err := r.enrollments.AddUserToClass(ctx, admin, u.ID, c2.ID)
			Expect(err).To(BeNil())
			Expect(e.UserID).To(Equal(u.ID))
			Expect(e.ClassID).To(Equal(c2.ID))
			Expect(e.Title).To(BeEmpty())
		})

		Specify("sad path - duplicate pair", func() {
			_, err := r.enrollments.AddUserToClass(ctx, admin, student.ID, c1.ID)
			Expect(err).To(MatchError(application.ErrAlreadyEnrolled))
			Expect(err).To(MatchError(application.ErrConflict))
		})

		Specify("sad path - unknown user", func() {
			_, err := r.enrollments.AddUserToClass(ctx, admin, "00000000-0000-0000-0000-000000000000", c1.ID)
			Expect(err).To(MatchError(application.ErrUserNotFound))
		})

		Specify("sad path - unknown class", func() {
			_, err := r.enrollments.AddUserToClass(ctx, admin, student.ID, "00000000-0000-0000-0000-000000000000")
			Expect(err).To(MatchError(application.ErrClassNotFound))
		})

		Specify("sad path - teacher, even on own class", func() {
			u := r.createUser(admin, "u@example.com", entity.RoleStudent)
			_, err := r.enrollments.AddUserToClass(ctx, teacher, u.ID, c1.ID)
			Expect(err).To(MatchError(application.ErrUnauthorized))
		})
	})

	Describe("UpdateEnrollment", func() {
		Specify("happy path - teacher on own class", func() {
			e, err := r.enrollments.UpdateEnrollment(ctx, teacher, student.ID, c1.ID, entity.EnrollmentPatch{
				Title: strPtr("Monitor"), Notes: strPtr("helpful"),
			})
			Expect(err).To(BeNil())
			Expect(e.Title).To(Equal("Monitor"))
			Expect(*e.Notes).To(Equal("helpful"))
		})

		Specify("fields left out keep their value", func() {
			_, err := r.enrollments.UpdateEnrollment(ctx, admin, student.ID, c1.ID, entity.EnrollmentPatch{Title: strPtr("Monitor")})
			Expect(err).To(BeNil())
			e, err := r.enrollments.UpdateEnrollment(ctx, admin, student.ID, c1.ID, entity.EnrollmentPatch{Notes: strPtr("n")})
			Expect(err).To(BeNil())
			Expect(e.Title).To(Equal("Monitor"))
		})

		Specify("sad path - teacher on another class", func() {
			_, err := r.enrollments.UpdateEnrollment(ctx, teacher, student.ID, c2.ID, entity.EnrollmentPatch{Title: strPtr("x")})
			Expect(err).To(MatchError(application.ErrUnauthorized))
		})

		Specify("sad path - student", func() {
			_, err := r.enrollments.UpdateEnrollment(ctx, r.as(student), student.ID, c1.ID, entity.EnrollmentPatch{Notes: strPtr("x")})
			Expect(err).To(MatchError(application.ErrUnauthorized))
		})

		Specify("sad path - no such enrollment", func() {
			u := r.createUser(admin, "u@example.com", entity.RoleStudent)
			_, err := r.enrollments.UpdateEnrollment(ctx, teacher, u.ID, c1.ID, entity.EnrollmentPatch{Title: strPtr("x")})
			Expect(err).To(MatchError(application.ErrEnrollmentNotFound))
		})
	})

	Describe("RemoveUserFromClass", func() {
		Specify("happy path - teacher on own class", func() {
			Expect(r.enrollments.RemoveUserFromClass(ctx, teacher, student.ID, c1.ID)).To(Succeed())

			candidates, err := r.classes.ListAvailableUsersForClass(ctx, admin, c1.ID)
			Expect(err).To(BeNil())
			ids := []string{}
			for _, u := range candidates {
				ids = append(ids, u.ID)
			}
			Expect(ids).To(ContainElement(student.ID))
		})

		Specify("sad path - teacher on another class", func() {
			err := r.enrollments.RemoveUserFromClass(ctx, teacher, student.ID, c2.ID)
			Expect(err).To(MatchError(application.ErrUnauthorized))

			_, err = r.store.Enrollments().Get(ctx, student.ID, c2.ID)
			Expect(err).To(BeNil())
		})

		Specify("sad path - already removed", func() {
			Expect(r.enrollments.RemoveUserFromClass(ctx, admin, student.ID, c1.ID)).To(Succeed())
			err := r.enrollments.RemoveUserFromClass(ctx, admin, student.ID, c1.ID)
			Expect(err).To(MatchError(application.ErrEnrollmentNotFound))
		})
	})
})
