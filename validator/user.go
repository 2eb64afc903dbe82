package validator // import "github.com/acuna/shelfwise/validator"

import (
	"github.com/pkg/errors"

	"github.com/acuna/shelfwise/model"
	"github.com/acuna/shelfwise/store"
	"github.com/acuna/shelfwise/util"
)

func ValidateSignupRequest(s *store.Store, signup *model.UserSignupRequest) error {
	if signup == nil {
		return errors.New("signup request is nil")
	}
	if signup.Username == "" {
		return errors.New("username is empty")
	}
	if !util.UIDMatcher.MatchString(signup.Username) {
		return errors.New("username is invalid")
	}
	if signup.Email == "" {
		return errors.New("email is empty")
	}
	if !util.ValidateEmail(signup.Email) {
		return errors.New("email is invalid")
	}
	if signup.Password == "" {
		return errors.New("password is empty")
	}
	if err := validatePassword(signup.Password); err != nil {
		return err
	}
	if existing, _ := s.GetUser(&model.FindUser{Username: &signup.Username}); existing != nil {
		return errors.New("username already exists")
	}
	if existing, _ := s.GetUser(&model.FindUser{Email: &signup.Email}); existing != nil {
		return errors.New("email already registered")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 6 {
		return errors.New("password is too short")
	}
	return nil
}
