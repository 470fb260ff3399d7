package domain

type CtxKey string

const (
	KeyUserID     CtxKey = "UserID"
	KeyUserName   CtxKey = "Name"
	KeyUserEmail  CtxKey = "Email"
	KeyUserAvatar CtxKey = "Avatar"
)
