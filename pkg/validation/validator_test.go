package validation_test

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/gin-gonic/gin/binding"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/oksasatya/classroom-roster/pkg/validation"
)

type patch struct {
	Name *string `json:"name" binding:"omitempty,min=1"`
}

type sample struct {
	ID       string `json:"id" binding:"required,id"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Role     string `json:"role" binding:"omitempty,role"`
	User     *patch `json:"user" binding:"required"`
}

var _ = Describe("Validator", func() {
	BeforeEach(func() { validation.Init() })

	valid := func() sample {
		name := "Ada"
		return sample{
			ID:       "0b9f1c9e-6f4e-4c39-9f55-4d1d2f6a9a11",
			Email:    "ada@example.com",
			Password: "secret",
			Role:     "TEACHER",
			User:     &patch{Name: &name},
		}
	}

	Specify("happy path", func() {
		s := valid()
		Expect(binding.Validator.ValidateStruct(&s)).To(Succeed())
	})

	Specify("lower-case roles are accepted", func() {
		s := valid()
		s.Role = "student"
		Expect(binding.Validator.ValidateStruct(&s)).To(Succeed())
	})

	Specify("sad path - details are keyed by json name", func() {
		s := valid()
		s.ID = "not-a-uuid"
		s.Email = "nope"
		s.Password = strings.Repeat("x", 73)
		s.Role = "OWNER"

		details := validation.ToDetails(binding.Validator.ValidateStruct(&s))
		Expect(details).To(HaveKeyWithValue("id", "must be a valid UUID"))
		Expect(details).To(HaveKeyWithValue("email", "must be a valid email"))
		Expect(details).To(HaveKeyWithValue("password", "must be between 1 and 72 bytes"))
		Expect(details).To(HaveKeyWithValue("role", "must be one of: ADMIN, TEACHER, STUDENT"))
	})

	Specify("password length is counted in bytes", func() {
		s := valid()
		s.Password = strings.Repeat("é", 36) // 72 bytes
		Expect(binding.Validator.ValidateStruct(&s)).To(Succeed())

		s.Password = strings.Repeat("é", 40) // 40 runes, 80 bytes
		details := validation.ToDetails(binding.Validator.ValidateStruct(&s))
		Expect(details).To(HaveKeyWithValue("password", "must be between 1 and 72 bytes"))
	})

	Specify("sad path - nested fields keep their path", func() {
		s := valid()
		empty := ""
		s.User.Name = &empty
		details := validation.ToDetails(binding.Validator.ValidateStruct(&s))
		Expect(details).To(HaveKeyWithValue("user.name", "must be at least 1 characters long"))
	})

	Specify("sad path - missing nested object", func() {
		s := valid()
		s.User = nil
		details := validation.ToDetails(binding.Validator.ValidateStruct(&s))
		Expect(details).To(HaveKeyWithValue("user", "is required"))
	})

	Specify("payload errors", func() {
		Expect(validation.ToDetails(nil)).To(BeNil())
		Expect(validation.ToDetails(io.EOF)).To(HaveKeyWithValue("payload", "empty body"))

		var v map[string]any
		err := json.Unmarshal([]byte("{"), &v)
		Expect(validation.ToDetails(err)).To(HaveKeyWithValue("payload", "invalid json"))
	})
})
