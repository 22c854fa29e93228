package dto

import (
	"github.com/yukikurage/team-work-tracker/internal/models"
	"github.com/yukikurage/team-work-tracker/internal/services"
)

// UserLoginDTO is the login part of a registration request
type UserLoginDTO struct {
	UserID   string `json:"user_id" binding:"required,max=100"`
	Password string `json:"password" binding:"required"`
}

// UserInfoDTO is the profile part of a registration request
type UserInfoDTO struct {
	UserID    string `json:"user_id" binding:"required,max=100"`
	Email     string `json:"email" binding:"omitempty,email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Gender    string `json:"gender"`
}

// UserRegistrationDTO represents a registration request. Both parts are required by
// the service; they are pointers so a missing part reaches it as nil.
type UserRegistrationDTO struct {
	LoginInfo *UserLoginDTO `json:"login"`
	UserInfo  *UserInfoDTO  `json:"user"`
}

// UserProfileDTO represents a user in API responses
type UserProfileDTO struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Gender    string `json:"gender"`
}

// UserServerDTO represents a linked team server in API responses
type UserServerDTO struct {
	UserID     string `json:"user_id"`
	TfsID      uint64 `json:"tfs_id"`
	ServerName string `json:"server_name"`
	ServerURL  string `json:"server_url"`
}

// RegisterServerDTO represents a request to link the current user to a team server
type RegisterServerDTO struct {
	ServerID       uint64 `json:"server_id" binding:"required"`
	ServerUserID   string `json:"server_user_id" binding:"required"`
	ServerPassword string `json:"server_password" binding:"required"`
	ServerDomain   string `json:"server_domain"`
}

// IDResponse carries the identifier of a created record
type IDResponse struct {
	ID uint64 `json:"id"`
}

// ToRegisterUserInput converts a registration request to service input
func ToRegisterUserInput(req UserRegistrationDTO) services.RegisterUserInput {
	var input services.RegisterUserInput
	if req.LoginInfo != nil {
		input.Login = &services.LoginInput{
			UserID:   req.LoginInfo.UserID,
			Password: req.LoginInfo.Password,
		}
	}
	if req.UserInfo != nil {
		input.Profile = &services.ProfileInput{
			UserID:    req.UserInfo.UserID,
			Email:     req.UserInfo.Email,
			FirstName: req.UserInfo.FirstName,
			LastName:  req.UserInfo.LastName,
			Gender:    req.UserInfo.Gender,
		}
	}
	return input
}

// ToUserProfileDTO converts a UserInfo model to UserProfileDTO
func ToUserProfileDTO(info models.UserInfo) UserProfileDTO {
	return UserProfileDTO{
		UserID:    info.UserID,
		Email:     info.Email,
		FirstName: info.FirstName,
		LastName:  info.LastName,
		Gender:    info.Gender,
	}
}

// ToUserServerDTOs converts service results to DTOs. The result is never nil.
func ToUserServerDTOs(servers []services.UserServer) []UserServerDTO {
	dtos := make([]UserServerDTO, len(servers))
	for i, server := range servers {
		dtos[i] = UserServerDTO{
			UserID:     server.UserID,
			TfsID:      server.TfsID,
			ServerName: server.ServerName,
			ServerURL:  server.ServerURL,
		}
	}
	return dtos
}
