package mapper

import (
	"github.com/AlibekovAA/task-manager/internal/common/dto"
	userdomain "github.com/AlibekovAA/task-manager/internal/user/domain"
)

func UserToDTO(user userdomain.User) dto.User {
	return dto.User{
		ID:        int64(user.ID),
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	}
}
