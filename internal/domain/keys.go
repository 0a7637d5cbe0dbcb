package domain

type CtxKey string

// KeyUserID holds the authenticated principal id on the gin context.
const KeyUserID CtxKey = "UserID"
