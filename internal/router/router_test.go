package router_test

import (
	"net/http"
	"strings"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/oksasatya/classroom-roster/internal/domain/entity"
)

type userJSON struct {
	ID          string           `json:"id"`
	Email       string           `json:"email"`
	Role        string           `json:"role"`
	Enrollments []enrollmentJSON `json:"enrollments"`
}

type enrollmentJSON struct {
	UserID  string    `json:"user_id"`
	ClassID string    `json:"class_id"`
	Title   string    `json:"title"`
	Notes   *string   `json:"notes"`
	User    *userJSON `json:"user"`
}

type classJSON struct {
	ID    string           `json:"id"`
	Name  string           `json:"name"`
	Users []enrollmentJSON `json:"users"`
}

var _ = Describe("HTTP surface", func() {
	var (
		a     *app
		admin *entity.User
	)

	BeforeEach(func() {
		a = newApp()
		admin = a.seedUser("admin@example.com", entity.RoleAdmin)
	})

	AfterEach(func() { a.close() })

	Describe("session resolver", func() {
		Specify("entry page and assets are public", func() {
			w := a.do(http.MethodGet, "/", nil, nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring("entry"))

			w = a.do(http.MethodGet, "/assets/style.css", nil, nil)
			Expect(w.Code).To(Equal(http.StatusOK))
		})

		Specify("requests without a cookie are redirected to the entry page", func() {
			for _, path := range []string{"/class/getAvailable", "/user/self", "/user/getAll", "/class/addUser"} {
				w := a.post(path, nil, nil)
				Expect(w.Code).To(Equal(http.StatusFound), path)
				Expect(w.Header().Get("Location")).To(Equal("/"), path)
			}
			w := a.do(http.MethodGet, "/dashboard/", nil, nil)
			Expect(w.Code).To(Equal(http.StatusFound))
		})

		Specify("unmatched paths are gated too", func() {
			w := a.do(http.MethodGet, "/no/such/page", nil, nil)
			Expect(w.Code).To(Equal(http.StatusFound))
			Expect(w.Header().Get("Location")).To(Equal("/"))
		})

		Specify("a forged cookie is rejected and cleared", func() {
			w := a.post("/user/self", nil, &http.Cookie{Name: "token", Value: "tok-admin@example.com"})
			Expect(w.Code).To(Equal(http.StatusFound))
			c := sessionCookie(w)
			Expect(c).NotTo(BeNil())
			Expect(c.MaxAge).To(BeNumerically("<", 0))
		})

		Specify("a valid cookie of a deleted user is rejected", func() {
			u := a.seedUser("gone@example.com", entity.RoleStudent)
			cookie := a.session("gone@example.com", "pw")
			adminCookie := a.session("admin@example.com", "root")

			w := a.post("/user/delete", map[string]any{"id": u.ID}, adminCookie)
			Expect(w.Code).To(Equal(http.StatusOK))

			w = a.post("/user/self", nil, cookie)
			Expect(w.Code).To(Equal(http.StatusFound))
		})

		Specify("the dashboard is served to signed-in users", func() {
			cookie := a.session("admin@example.com", "root")
			w := a.do(http.MethodGet, "/dashboard/", nil, cookie)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring("dashboard"))
		})
	})

	Describe("login and logout", func() {
		Specify("first login sets the password, a different one then fails", func() {
			a.session("admin@example.com", "root")

			w := a.login("admin@example.com", "not-root")
			Expect(w.Code).To(Equal(http.StatusSeeOther))
			Expect(w.Header().Get("Location")).To(Equal("/?error=invalid+credentials"))
			Expect(sessionCookie(w)).To(BeNil())
		})

		Specify("unknown email redirects with an error", func() {
			w := a.login("nobody@example.com", "pw")
			Expect(w.Code).To(Equal(http.StatusSeeOther))
			Expect(w.Header().Get("Location")).To(HavePrefix("/?error="))
		})

		Specify("malformed form redirects with an error", func() {
			w := a.login("not-an-email", "pw")
			Expect(w.Code).To(Equal(http.StatusSeeOther))
			Expect(w.Header().Get("Location")).To(HavePrefix("/?error="))
		})

		Specify("multi-byte passwords are measured in bytes", func() {
			w := a.login("admin@example.com", strings.Repeat("é", 40))
			Expect(w.Code).To(Equal(http.StatusSeeOther))
			Expect(w.Header().Get("Location")).To(Equal("/?error=invalid+credentials"))

			a.session("admin@example.com", strings.Repeat("é", 36))
		})

		Specify("sad path - over-long password change answers 400", func() {
			cookie := a.session("admin@example.com", "root")
			w := a.post("/user/update", map[string]any{
				"id": admin.ID, "user": map[string]any{"password": strings.Repeat("é", 40)},
			}, cookie)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decode(w).Error).To(HaveKey("user.password"))
		})

		Specify("logout clears the cookie", func() {
			cookie := a.session("admin@example.com", "root")
			w := a.do(http.MethodGet, "/logout", nil, cookie)
			Expect(w.Code).To(Equal(http.StatusFound))
			Expect(w.Header().Get("Location")).To(Equal("/"))
			cleared := sessionCookie(w)
			Expect(cleared).NotTo(BeNil())
			Expect(cleared.MaxAge).To(BeNumerically("<", 0))
		})

		Specify("the cookie does not carry the raw token", func() {
			cookie := a.session("admin@example.com", "root")
			Expect(cookie.Value).NotTo(ContainSubstring(admin.Token))
			Expect(cookie.HttpOnly).To(BeTrue())
		})
	})

	Describe("roster workflow", func() {
		var adminCookie *http.Cookie

		BeforeEach(func() {
			adminCookie = a.session("admin@example.com", "root")
		})

		createUser := func(email, role string) userJSON {
			w := a.post("/user/create", map[string]any{"email": email, "name": email, "role": role}, adminCookie)
			Expect(w.Code).To(Equal(http.StatusCreated), w.Body.String())
			var u userJSON
			decodeData(w, &u)
			return u
		}

		createClass := func(name string) classJSON {
			w := a.post("/class/create", map[string]any{"name": name}, adminCookie)
			Expect(w.Code).To(Equal(http.StatusCreated), w.Body.String())
			var c classJSON
			decodeData(w, &c)
			return c
		}

		Specify("algebra scenario", func() {
			algebra := createClass("Algebra")
			u := createUser("u@example.com", "STUDENT")

			w := a.post("/class/addUser", map[string]any{"userId": u.ID, "classId": algebra.ID}, adminCookie)
			Expect(w.Code).To(Equal(http.StatusCreated), w.Body.String())

			w = a.post("/class/updateUser", map[string]any{
				"userId": u.ID, "classId": algebra.ID, "user": map[string]any{"notes": "needs help"},
			}, adminCookie)
			Expect(w.Code).To(Equal(http.StatusOK), w.Body.String())

			var asAdmin []classJSON
			decodeData(a.post("/class/getAvailable", nil, adminCookie), &asAdmin)
			Expect(asAdmin).To(HaveLen(1))
			Expect(asAdmin[0].Name).To(Equal("Algebra"))
			Expect(asAdmin[0].Users).To(HaveLen(1))
			Expect(asAdmin[0].Users[0].UserID).To(Equal(u.ID))
			Expect(*asAdmin[0].Users[0].Notes).To(Equal("needs help"))

			studentCookie := a.session("u@example.com", "student-pw")
			w = a.post("/class/getAvailable", nil, studentCookie)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).NotTo(ContainSubstring("notes"))
			Expect(w.Body.String()).NotTo(ContainSubstring("needs help"))

			var asStudent []classJSON
			decodeData(w, &asStudent)
			Expect(asStudent).To(HaveLen(1))
			Expect(asStudent[0].Users).To(HaveLen(1))
			Expect(asStudent[0].Users[0].UserID).To(Equal(u.ID))

			w = a.post("/user/self", nil, studentCookie)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).NotTo(ContainSubstring("needs help"))
		})

		Specify("admin-only routes answer 403 to others", func() {
			createUser("s@example.com", "STUDENT")
			studentCookie := a.session("s@example.com", "pw")

			for _, path := range []string{"/user/getAll", "/user/create", "/class/create", "/class/delete", "/class/addUser"} {
				w := a.post(path, map[string]any{
					"email": "x@example.com", "name": "x", "id": admin.ID,
					"userId": admin.ID, "classId": admin.ID,
				}, studentCookie)
				Expect(w.Code).To(Equal(http.StatusForbidden), path)
				env := decode(w)
				Expect(env.Success).To(BeFalse())
				Expect(env.Message).To(Equal("unauthorized"))
			}
		})

		Specify("editing another user is refused before the body is validated", func() {
			createUser("s@example.com", "STUDENT")
			studentCookie := a.session("s@example.com", "pw")

			for _, body := range []map[string]any{
				{"id": admin.ID},
				{"id": admin.ID, "user": map[string]any{"role": "superuser"}},
				{"id": admin.ID, "user": "not-an-object"},
				{},
			} {
				w := a.post("/user/update", body, studentCookie)
				Expect(w.Code).To(Equal(http.StatusForbidden), w.Body.String())
			}

			w := a.do(http.MethodPost, "/user/update", nil, studentCookie)
			Expect(w.Code).To(Equal(http.StatusForbidden))
		})

		Specify("admin-only and class-scoped routes refuse before validating", func() {
			createUser("s@example.com", "STUDENT")
			studentCookie := a.session("s@example.com", "pw")

			for _, path := range []string{
				"/user/create", "/user/delete", "/user/resetPassword", "/user/search",
				"/class/create", "/class/delete", "/class/getAvailableUsers", "/class/addUser",
				"/class/update", "/class/updateUser", "/class/removeUser",
			} {
				w := a.post(path, map[string]any{"email": 7}, studentCookie)
				Expect(w.Code).To(Equal(http.StatusForbidden), path)
			}
		})

		Specify("teacher scope follows enrollment", func() {
			c1 := createClass("C1")
			c2 := createClass("C2")
			t := createUser("t@example.com", "TEACHER")
			s := createUser("s@example.com", "STUDENT")
			for _, pair := range [][2]string{{t.ID, c1.ID}, {s.ID, c1.ID}, {s.ID, c2.ID}} {
				w := a.post("/class/addUser", map[string]any{"userId": pair[0], "classId": pair[1]}, adminCookie)
				Expect(w.Code).To(Equal(http.StatusCreated))
			}
			teacherCookie := a.session("t@example.com", "pw")

			w := a.post("/class/update", map[string]any{"id": c2.ID, "newClass": map[string]any{"name": "x"}}, teacherCookie)
			Expect(w.Code).To(Equal(http.StatusForbidden))
			w = a.post("/class/updateUser", map[string]any{"userId": s.ID, "classId": c2.ID, "user": map[string]any{"title": "x"}}, teacherCookie)
			Expect(w.Code).To(Equal(http.StatusForbidden))
			w = a.post("/class/removeUser", map[string]any{"userId": s.ID, "classId": c2.ID}, teacherCookie)
			Expect(w.Code).To(Equal(http.StatusForbidden))

			w = a.post("/class/update", map[string]any{"id": c1.ID, "newClass": map[string]any{"name": "Geometry"}}, teacherCookie)
			Expect(w.Code).To(Equal(http.StatusOK))
			w = a.post("/class/updateUser", map[string]any{"userId": s.ID, "classId": c1.ID, "user": map[string]any{"title": "Monitor"}}, teacherCookie)
			Expect(w.Code).To(Equal(http.StatusOK))
			w = a.post("/class/removeUser", map[string]any{"userId": s.ID, "classId": c1.ID}, teacherCookie)
			Expect(w.Code).To(Equal(http.StatusOK))
		})

		Specify("candidates exclude enrolled users", func() {
			c := createClass("Algebra")
			u := createUser("u@example.com", "STUDENT")
			w := a.post("/class/addUser", map[string]any{"userId": u.ID, "classId": c.ID}, adminCookie)
			Expect(w.Code).To(Equal(http.StatusCreated))

			var candidates []userJSON
			decodeData(a.post("/class/getAvailableUsers", map[string]any{"id": c.ID}, adminCookie), &candidates)
			for _, x := range candidates {
				Expect(x.ID).NotTo(Equal(u.ID))
			}
			Expect(candidates).To(HaveLen(1))
		})

		Specify("persistence failures map to 404 and 409", func() {
			c := createClass("Algebra")
			u := createUser("u@example.com", "STUDENT")
			missing := "00000000-0000-0000-0000-000000000000"

			w := a.post("/user/create", map[string]any{"email": "U@example.com", "name": "dup"}, adminCookie)
			Expect(w.Code).To(Equal(http.StatusConflict))

			w = a.post("/class/addUser", map[string]any{"userId": u.ID, "classId": c.ID}, adminCookie)
			Expect(w.Code).To(Equal(http.StatusCreated))
			w = a.post("/class/addUser", map[string]any{"userId": u.ID, "classId": c.ID}, adminCookie)
			Expect(w.Code).To(Equal(http.StatusConflict))

			w = a.post("/class/addUser", map[string]any{"userId": missing, "classId": c.ID}, adminCookie)
			Expect(w.Code).To(Equal(http.StatusNotFound))
			w = a.post("/class/delete", map[string]any{"id": missing}, adminCookie)
			Expect(w.Code).To(Equal(http.StatusNotFound))
			w = a.post("/class/removeUser", map[string]any{"userId": admin.ID, "classId": c.ID}, adminCookie)
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		Specify("invalid payloads answer 400 with field details", func() {
			w := a.post("/user/create", map[string]any{"email": "nope", "name": ""}, adminCookie)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			env := decode(w)
			Expect(env.Error).To(HaveKey("email"))
			Expect(env.Error).To(HaveKey("name"))

			w = a.post("/class/delete", map[string]any{"id": "not-a-uuid"}, adminCookie)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		Specify("user list never exposes credentials", func() {
			createUser("u@example.com", "STUDENT")
			w := a.post("/user/getAll", nil, adminCookie)
			Expect(w.Code).To(Equal(http.StatusOK))
			body := w.Body.String()
			Expect(body).NotTo(ContainSubstring("tok-"))
			Expect(body).NotTo(ContainSubstring("$2a$"))
			Expect(strings.Count(body, `"email"`)).To(Equal(2))
		})

		Specify("self-service update ignores a role change", func() {
			u := createUser("u@example.com", "STUDENT")
			studentCookie := a.session("u@example.com", "pw")

			w := a.post("/user/update", map[string]any{"id": u.ID, "user": map[string]any{"name": "Uma", "role": "ADMIN"}}, studentCookie)
			Expect(w.Code).To(Equal(http.StatusOK), w.Body.String())
			var updated userJSON
			decodeData(w, &updated)
			Expect(updated.Role).To(Equal("STUDENT"))

			w = a.post("/user/update", map[string]any{"id": admin.ID, "user": map[string]any{"name": "x"}}, studentCookie)
			Expect(w.Code).To(Equal(http.StatusForbidden))
		})

		Specify("debug counters are served to signed-in users", func() {
			w := a.do(http.MethodGet, "/debug/vars", nil, adminCookie)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring("roster_logins_ok"))
		})
	})
})
