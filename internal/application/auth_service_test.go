package application_test

import (
	"strings"
	"sync"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/oksasatya/classroom-roster/internal/application"
	"github.com/oksasatya/classroom-roster/internal/domain/entity"
)

var _ = Describe("AuthService", func() {
	var (
		r     *roster
		admin *entity.User
	)

	BeforeEach(func() {
		r = newRoster()
		admin = r.seedAdmin()
	})

	Describe("Login", func() {
		Specify("happy path - first login sets the credential", func() {
			u := r.createUser(admin, "ada@example.com", entity.RoleStudent)

			got, err := r.auth.Login(ctx, "ada@example.com", "first-pass")
			Expect(err).To(BeNil())
			Expect(got.ID).To(Equal(u.ID))
			Expect(got.Token).To(Equal(u.Token))

			stored, err := r.store.Users().GetByID(ctx, u.ID)
			Expect(err).To(BeNil())
			Expect(stored.HasPassword()).To(BeTrue())
			Expect(stored.Password).NotTo(Equal("first-pass"))
		})

		Specify("happy path - same password logs in again", func() {
			r.createUser(admin, "ada@example.com", entity.RoleStudent)
			_, err := r.auth.Login(ctx, "ada@example.com", "first-pass")
			Expect(err).To(BeNil())

			_, err = r.auth.Login(ctx, "ada@example.com", "first-pass")
			Expect(err).To(BeNil())
		})

		Specify("sad path - a different password after bootstrap fails", func() {
			r.createUser(admin, "ada@example.com", entity.RoleStudent)
			_, err := r.auth.Login(ctx, "ada@example.com", "first-pass")
			Expect(err).To(BeNil())

			_, err = r.auth.Login(ctx, "ada@example.com", "second-pass")
			Expect(err).To(MatchError(application.ErrInvalidCredentials))
		})

		Specify("multi-byte passwords within 72 bytes bootstrap", func() {
			r.createUser(admin, "ada@example.com", entity.RoleStudent)
			pw := strings.Repeat("é", 36)
			_, err := r.auth.Login(ctx, "ada@example.com", pw)
			Expect(err).To(BeNil())
			_, err = r.auth.Login(ctx, "ada@example.com", pw)
			Expect(err).To(BeNil())
		})

		Specify("sad path - an over-long first password leaves the bootstrap open", func() {
			u := r.createUser(admin, "ada@example.com", entity.RoleStudent)
			_, err := r.auth.Login(ctx, "ada@example.com", strings.Repeat("é", 40))
			Expect(err).To(MatchError(application.ErrInvalidCredentials))

			stored, err := r.store.Users().GetByID(ctx, u.ID)
			Expect(err).To(BeNil())
			Expect(stored.HasPassword()).To(BeFalse())
		})

		Specify("happy path - email is matched case-insensitively", func() {
			r.createUser(admin, "ada@example.com", entity.RoleStudent)
			_, err := r.auth.Login(ctx, "  ADA@Example.com ", "pw")
			Expect(err).To(BeNil())
		})

		Specify("sad path - unknown email", func() {
			_, err := r.auth.Login(ctx, "nobody@example.com", "pw")
			Expect(err).To(MatchError(application.ErrInvalidCredentials))
		})

		Specify("racing first logins fix exactly one password", func() {
			r.createUser(admin, "ada@example.com", entity.RoleStudent)

			passwords := []string{"alpha", "bravo", "charlie", "delta"}
			var wg sync.WaitGroup
			var mu sync.Mutex
			winners := 0
			for _, pw := range passwords {
				wg.Add(1)
				go func(pw string) {
					defer GinkgoRecover()
					defer wg.Done()
					if _, err := r.auth.Login(ctx, "ada@example.com", pw); err == nil {
						mu.Lock()
						winners++
						mu.Unlock()
					}
				}(pw)
			}
			wg.Wait()
			Expect(winners).To(Equal(1))

			accepted := 0
			for _, pw := range passwords {
				if _, err := r.auth.Login(ctx, "ada@example.com", pw); err == nil {
					accepted++
				}
			}
			Expect(accepted).To(Equal(1))
		})
	})

	Describe("Resolve", func() {
		Specify("happy path - loads enrollments with their classes", func() {
			u := r.createUser(admin, "ada@example.com", entity.RoleTeacher)
			c := r.createClass(admin, "Algebra")
			r.enroll(admin, u, c)

			caller, err := r.auth.Resolve(ctx, u.Token)
			Expect(err).To(BeNil())
			Expect(caller.ID).To(Equal(u.ID))
			Expect(caller.Enrollments).To(HaveLen(1))
			Expect(caller.Enrollments[0].Class).NotTo(BeNil())
			Expect(caller.Enrollments[0].Class.Name).To(Equal("Algebra"))
		})

		Specify("sad path - unknown token", func() {
			_, err := r.auth.Resolve(ctx, "no-such-token")
			Expect(err).To(MatchError(application.ErrInvalidSession))
		})

		Specify("sad path - empty token", func() {
			_, err := r.auth.Resolve(ctx, "")
			Expect(err).To(MatchError(application.ErrUnauthenticated))
		})

		Specify("sad path - token of a deleted user", func() {
			u := r.createUser(admin, "ada@example.com", entity.RoleStudent)
			_, err := r.users.DeleteUser(ctx, admin, u.ID)
			Expect(err).To(BeNil())

			_, err = r.auth.Resolve(ctx, u.Token)
			Expect(err).To(MatchError(application.ErrInvalidSession))
		})

		Specify("each call reflects the current store state", func() {
			u := r.createUser(admin, "ada@example.com", entity.RoleTeacher)
			c := r.createClass(admin, "Algebra")

			before, err := r.auth.Resolve(ctx, u.Token)
			Expect(err).To(BeNil())
			Expect(before.Enrollments).To(BeEmpty())

			r.enroll(admin, u, c)
			after, err := r.auth.Resolve(ctx, u.Token)
			Expect(err).To(BeNil())
			Expect(after.EnrolledIn(c.ID)).To(BeTrue())
		})
	})
})
