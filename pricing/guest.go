package pricing

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// GuestInfo is the guest captured by the wizard or the guest screens. Both
// paths validate it with the same tags before anything is stored.
type GuestInfo struct {
	FirstName      string `json:"first_name" validate:"required,max=100"`
	LastName       string `json:"last_name" validate:"required,max=100"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"required,max=50"`
	DocumentType   string `json:"document_type" validate:"omitempty,oneof=dni passport ce ruc other"`
	DocumentNumber string `json:"document_number" validate:"omitempty,alphanum,min=6,max=20"`
	Nationality    string `json:"nationality" validate:"max=80"`
	Address        string `json:"address"`
	City           string `json:"city" validate:"max=100"`
	Country        string `json:"country" validate:"max=80"`
}

// Normalize trims every field, lowercases the email and the document type.
func (g GuestInfo) Normalize() GuestInfo {
	return GuestInfo{
		FirstName:      strings.TrimSpace(g.FirstName),
		LastName:       strings.TrimSpace(g.LastName),
		Email:          strings.ToLower(strings.TrimSpace(g.Email)),
		Phone:          strings.TrimSpace(g.Phone),
		DocumentType:   strings.ToLower(strings.TrimSpace(g.DocumentType)),
		DocumentNumber: strings.TrimSpace(g.DocumentNumber),
		Nationality:    strings.TrimSpace(g.Nationality),
		Address:        strings.TrimSpace(g.Address),
		City:           strings.TrimSpace(g.City),
		Country:        strings.TrimSpace(g.Country),
	}
}

// Validate checks the normalized guest and returns a *ValidationError keyed
// by json field names.
func (g GuestInfo) Validate() error {
	verr := &ValidationError{}
	g.validate("", verr)
	return verr.Err()
}

func (g GuestInfo) validate(prefix string, verr *ValidationError) {
	err := validate.Struct(g.Normalize())
	if err == nil {
		return
	}
	var fes validator.ValidationErrors
	if !errors.As(err, &fes) {
		verr.Add(strings.TrimSuffix(prefix, "."), err.Error())
		return
	}
	for _, fe := range fes {
		verr.Add(prefix+fe.Field(), ruleMessage(fe))
	}
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "alphanum":
		return "must contain only letters and digits"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	}
	return "failed " + fe.Tag() + " check"
}
