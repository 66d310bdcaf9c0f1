package form

import (
	"strings"
	"time"
	"unicode"
)

type RegistrationInput struct {
	Username  string `form:"username" json:"username" validate:"required,max=150,username"`
	FirstName string `form:"first_name" json:"first_name" validate:"required,max=30"`
	LastName  string `form:"last_name" json:"last_name" validate:"required,max=30"`
	Email     string `form:"email" json:"email" validate:"required,email,max=254"`
	Password1 string `form:"password1" json:"password1" validate:"required"`
	Password2 string `form:"password2" json:"password2" validate:"required,eqfield=Password1"`
}

var RegistrationFields = []Widget{
	text("username", "Username", true),
	text("first_name", "First name", true),
	text("last_name", "Last name", true),
	{Name: "email", Label: "Email", Type: "email", Class: inputClass, Required: true},
	{Name: "password1", Label: "Password", Type: "password", Class: inputClass, Required: true},
	{Name: "password2", Label: "Password confirmation", Type: "password", Class: inputClass, Required: true},
}

const minPasswordLength = 8

// ValidateRegistration checks the sign-up form. Username uniqueness needs
// the database and is left to the caller.
func ValidateRegistration(in RegistrationInput) (RegistrationInput, Errors) {
	in.Username = strings.TrimSpace(in.Username)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)

	errs := check(in)
	if _, bad := errs["password2"]; !bad && in.Password1 != "" {
		for _, msg := range passwordProblems(in.Password1, in.Username) {
			errs.Add("password2", msg)
		}
	}
	return in, errs
}

func passwordProblems(password, username string) []string {
	var problems []string
	if len([]rune(password)) < minPasswordLength {
		problems = append(problems, "This password is too short. It must contain at least 8 characters.")
	}
	if strings.IndexFunc(password, func(r rune) bool { return !unicode.IsDigit(r) }) == -1 {
		problems = append(problems, "This password is entirely numeric.")
	}
	if len(username) >= 3 && strings.Contains(strings.ToLower(password), strings.ToLower(username)) {
		problems = append(problems, "The password is too similar to the username.")
	}
	return problems
}

type LoginInput struct {
	Username string `form:"username" json:"username" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

var LoginFields = []Widget{
	text("username", "Username", true),
	{Name: "password", Label: "Password", Type: "password", Class: inputClass, Required: true},
}

func ValidateLogin(in LoginInput) (LoginInput, Errors) {
	in.Username = strings.TrimSpace(in.Username)
	return in, check(in)
}

// UserUpdateInput is the identity half of the profile page.
type UserUpdateInput struct {
	FirstName string `form:"first_name" json:"first_name" validate:"max=30"`
	LastName  string `form:"last_name" json:"last_name" validate:"max=30"`
	Email     string `form:"email" json:"email" validate:"omitempty,email,max=254"`
}

var UserUpdateFields = []Widget{
	text("first_name", "First name", false),
	text("last_name", "Last name", false),
	{Name: "email", Label: "Email address", Type: "email", Class: inputClass},
}

func ValidateUserUpdate(in UserUpdateInput) (UserUpdateInput, Errors) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)
	return in, check(in)
}

// ProfileInput is the profile half of the profile page. The picture upload
// travels separately as a multipart file.
type ProfileInput struct {
	Bio         string `form:"bio" json:"bio"`
	DateOfBirth string `form:"date_of_birth" json:"date_of_birth"`
	PhoneNumber string `form:"phone_number" json:"phone_number" validate:"omitempty,max=15,phone"`
}

var ProfileFields = []Widget{
	{Name: "bio", Label: "Bio", Type: "textarea", Class: inputClass, Rows: 3},
	{Name: "profile_picture", Label: "Profile picture", Type: "file", Class: inputClass},
	{Name: "date_of_birth", Label: "Date of birth", Type: "date", Class: inputClass, Format: "2006-01-02"},
	text("phone_number", "Phone number", false),
}

type ProfileData struct {
	Bio         string
	DateOfBirth *time.Time
	PhoneNumber string
}

const dateLayout = "2006-01-02"

// ValidateProfile checks the profile fields; today bounds the birth date.
func ValidateProfile(in ProfileInput, today time.Time) (ProfileData, Errors) {
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	in.DateOfBirth = strings.TrimSpace(in.DateOfBirth)

	errs := check(in)
	data := ProfileData{Bio: in.Bio, PhoneNumber: in.PhoneNumber}

	if in.DateOfBirth != "" {
		dob, err := time.ParseInLocation(dateLayout, in.DateOfBirth, today.Location())
		switch {
		case err != nil:
			errs.Add("date_of_birth", "Enter a valid date.")
		case dob.After(today):
			errs.Add("date_of_birth", "Date of birth cannot be in the future.")
		default:
			data.DateOfBirth = &dob
		}
	}
	return data, errs
}
