package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type UpdateProfileRequest struct {
	Mascot string `json:"mascot"`
	Email  string `json:"email"`
}

func (r UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Mascot, validation.Length(0, 50)),
		validation.Field(&r.Email, is.Email),
	)
}

type UpdateUserFlagsRequest struct {
	IsAdmin   bool `json:"isAdmin"`
	IsPremium bool `json:"isPremium"`
}

func (r UpdateUserFlagsRequest) Validate() error {
	return nil
}
