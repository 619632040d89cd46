package mapper

import (
	"github.com/AlibekovAA/task-manager/internal/common/dto"
	taskdomain "github.com/AlibekovAA/task-manager/internal/task/domain"
)

func TaskToDTO(task taskdomain.Task) dto.Task {
	return dto.Task{
		ID:          int64(task.ID),
		UserID:      int64(task.OwnerID),
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func TasksToDTO(tasks []taskdomain.Task) []dto.Task {
	result := make([]dto.Task, len(tasks))
	for i, t := range tasks {
		result[i] = TaskToDTO(t)
	}
	return result
}
