package helpers_test

import (
	"errors"
	"strings"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/oksasatya/classroom-roster/pkg/helpers"
)

var _ = Describe("Password", func() {
	Specify("hashes are salted", func() {
		a, err := helpers.HashPassword("secret")
		Expect(err).To(BeNil())
		b, err := helpers.HashPassword("secret")
		Expect(err).To(BeNil())
		Expect(a).NotTo(Equal(b))
		Expect(helpers.CompareHashAndPassword(a, "secret")).To(BeTrue())
		Expect(helpers.CompareHashAndPassword(b, "secret")).To(BeTrue())
	})

	Specify("sad path - wrong password", func() {
		h, err := helpers.HashPassword("secret")
		Expect(err).To(BeNil())
		Expect(helpers.CompareHashAndPassword(h, "Secret")).To(BeFalse())
	})

	Specify("sad path - empty hash never matches", func() {
		Expect(helpers.CompareHashAndPassword("", "")).To(BeFalse())
	})
})

var _ = Describe("Password length", func() {
	Specify("multi-byte passwords up to 72 bytes hash", func() {
		pw := strings.Repeat("é", 36)
		h, err := helpers.HashPassword(pw)
		Expect(err).To(BeNil())
		Expect(helpers.CompareHashAndPassword(h, pw)).To(BeTrue())
	})

	Specify("sad path - over 72 bytes is rejected, not truncated", func() {
		_, err := helpers.HashPassword(strings.Repeat("é", 40))
		Expect(errors.Is(err, helpers.ErrPasswordTooLong)).To(BeTrue())
	})
})
