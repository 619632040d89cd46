package http

import (
	"github.com/AlibekovAA/task-manager/internal/common/constants"
	"github.com/AlibekovAA/task-manager/internal/common/validation"
)

var idParams = []validation.Field{
	{
		Name:     "id",
		Kind:     validation.KindNumericString,
		Required: true,
		TypeMsg:  "ID must be a number",
	},
}

func titleRules() []validation.Rule {
	return []validation.Rule{
		validation.MinLen(constants.TaskTitleMinLength, "Title cannot be empty"),
		validation.MaxLen(constants.TaskTitleMaxLength, "Title must be less than 255 characters"),
	}
}

func descriptionRules() []validation.Rule {
	return []validation.Rule{
		validation.MaxLen(constants.TaskDescriptionMax, "Description must be less than 1000 characters"),
	}
}

var taskIDSchema = &validation.Schema{Params: idParams}

var createTaskSchema = &validation.Schema{
	Body: []validation.Field{
		{
			Name:        "title",
			Required:    true,
			RequiredMsg: "Title is required",
			TypeMsg:     "Title must be a string",
			Rules:       titleRules(),
		},
		{
			Name:  "description",
			Rules: descriptionRules(),
		},
	},
}

var updateTaskSchema = &validation.Schema{
	Body: []validation.Field{
		{Name: "title", Rules: titleRules()},
		{Name: "description", Nullable: true, Rules: descriptionRules()},
		{Name: "completed", Kind: validation.KindBool},
	},
	Params: idParams,
}
