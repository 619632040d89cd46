package http

import (
	"regexp"

	"github.com/AlibekovAA/task-manager/internal/common/constants"
	"github.com/AlibekovAA/task-manager/internal/common/validation"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

var signupSchema = &validation.Schema{
	Body: []validation.Field{
		{
			Name:        "username",
			Required:    true,
			RequiredMsg: "Username is required",
			TypeMsg:     "Username is required",
			Rules: []validation.Rule{
				validation.MinLen(constants.UsernameMinLength, "Username must be at least 3 characters"),
				validation.MaxLen(constants.UsernameMaxLength, "Username must be less than 20 characters"),
				validation.Pattern(usernamePattern, "Username can only contain letters, numbers and underscores"),
			},
		},
		{
			Name:        "password",
			Required:    true,
			RequiredMsg: "Password is required",
			TypeMsg:     "Password is required",
			Rules: []validation.Rule{
				validation.MinLen(constants.PasswordMinLength, "Password must be at least 8 characters"),
				validation.MaxLen(constants.PasswordMaxLength, "Password must be less than 100 characters"),
				validation.Check(validation.TagStrongPassword,
					"Password must contain at least one uppercase letter, one lowercase letter, and one number"),
			},
		},
	},
}

var loginSchema = &validation.Schema{
	Body: []validation.Field{
		{
			Name:        "username",
			Required:    true,
			RequiredMsg: "Username is required",
			TypeMsg:     "Username is required",
			Rules:       []validation.Rule{validation.MinLen(1, "Username cannot be empty")},
		},
		{
			Name:        "password",
			Required:    true,
			RequiredMsg: "Password is required",
			TypeMsg:     "Password is required",
			Rules:       []validation.Rule{validation.MinLen(1, "Password cannot be empty")},
		},
	},
}
