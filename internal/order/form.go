// Package order implements checkout: the delivery form validator and the
// validate→send→confirm submission workflow.
package order

import (
	"strings"

	"github.com/oceancatch/fishhub/pkg/common"
)

// Form holds the customer-supplied delivery details. It lives only for
// the duration of a checkout attempt.
type Form struct {
	FullName     string `json:"fullName" form:"fullName"`
	Phone        string `json:"phone" form:"phone"`
	Email        string `json:"email" form:"email"`
	Address      string `json:"address" form:"address"`
	Instructions string `json:"instructions" form:"instructions"`
}

// Field length bounds for the delivery form.
const (
	MaxFullNameLen     = 100
	MaxPhoneLen        = 20
	MaxEmailLen        = 255
	MaxAddressLen      = 500
	MaxInstructionsLen = 1000
)

// Trimmed returns a copy with every field stripped of surrounding
// whitespace. Validation and submission always operate on the trimmed
// form.
func (f Form) Trimmed() Form {
	return Form{
		FullName:     strings.TrimSpace(f.FullName),
		Phone:        strings.TrimSpace(f.Phone),
		Email:        strings.TrimSpace(f.Email),
		Address:      strings.TrimSpace(f.Address),
		Instructions: strings.TrimSpace(f.Instructions),
	}
}

// Validate checks the trimmed form and returns a field-keyed error map.
// Every failing field is reported at once; an empty map means the form
// is acceptable.
func Validate(f Form) map[string]string {
	f = f.Trimmed()
	fieldErrors := make(map[string]string)

	if f.FullName == "" {
		fieldErrors["fullName"] = "Full name is required"
	} else if len(f.FullName) > MaxFullNameLen {
		fieldErrors["fullName"] = "Full name must be at most 100 characters"
	}

	if f.Phone == "" {
		fieldErrors["phone"] = "Phone number is required"
	} else if len(f.Phone) > MaxPhoneLen {
		fieldErrors["phone"] = "Phone number must be at most 20 characters"
	}

	if f.Email == "" || len(f.Email) > MaxEmailLen || !common.IsEmailValid(f.Email) {
		fieldErrors["email"] = "Invalid email address"
	}

	if f.Address == "" {
		fieldErrors["address"] = "Delivery address is required"
	} else if len(f.Address) > MaxAddressLen {
		fieldErrors["address"] = "Delivery address must be at most 500 characters"
	}

	if len(f.Instructions) > MaxInstructionsLen {
		fieldErrors["instructions"] = "Special instructions must be at most 1000 characters"
	}

	return fieldErrors
}
