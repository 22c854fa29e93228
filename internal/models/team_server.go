package models

// TeamServer is a remote work-tracking server users can link their accounts to.
type TeamServer struct {
	Base
	Name string `gorm:"type:varchar(255);not null" json:"name"`
	URL  string `gorm:"column:url;type:varchar(1024);not null" json:"url"`
}

func (TeamServer) TableName() string {
	return "team_servers"
}

// UserServerInfo links a local user to an account on a TeamServer.
// CredentialHash is the encrypted serialized credential, never plaintext.
type UserServerInfo struct {
	Base
	UserID         string `gorm:"type:varchar(100);index:idx_user_server;not null" json:"user_id"`
	TfsID          uint64 `gorm:"index:idx_user_server;not null" json:"tfs_id"`
	TfsUserID      string `gorm:"type:varchar(255)" json:"tfs_user_id"`
	CredentialHash string `gorm:"type:text;not null" json:"-"`
}

func (UserServerInfo) TableName() string {
	return "user_server_infos"
}
