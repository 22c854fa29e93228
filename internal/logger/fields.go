package logger

import "go.uber.org/zap"

const (
	FieldModule     = "module"
	FieldUserID     = "user_id"
	FieldServerID   = "server_id"
	FieldWorkItemID = "work_item_id"
)

func Module(module string) zap.Field {
	return zap.String(FieldModule, module)
}

func UserID(userID string) zap.Field {
	return zap.String(FieldUserID, userID)
}

func ServerID(ID uint64) zap.Field {
	return zap.Uint64(FieldServerID, ID)
}

func WorkItemID(ID uint64) zap.Field {
	return zap.Uint64(FieldWorkItemID, ID)
}
