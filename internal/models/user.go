package models

// UserLogin holds the credentials of a local user. Password is stored encrypted.
type UserLogin struct {
	Base
	UserID     string `gorm:"type:varchar(100);index;not null" json:"user_id"`
	Password   string `gorm:"type:varchar(512);not null" json:"-"`
	IsActive   bool   `gorm:"not null" json:"is_active"`
	IsLocked   bool   `gorm:"not null" json:"is_locked"`
	RetryCount int    `gorm:"not null" json:"retry_count"`
}

func (UserLogin) TableName() string {
	return "user_logins"
}

// UserInfo is the profile of a local user, keyed by the same UserID as its UserLogin.
type UserInfo struct {
	Base
	UserID    string `gorm:"type:varchar(100);index;not null" json:"user_id"`
	Email     string `gorm:"type:varchar(255)" json:"email"`
	FirstName string `gorm:"type:varchar(100)" json:"first_name"`
	LastName  string `gorm:"type:varchar(100)" json:"last_name"`
	Gender    string `gorm:"type:varchar(20)" json:"gender"`
}

func (UserInfo) TableName() string {
	return "user_infos"
}
