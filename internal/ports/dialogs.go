package ports

import "context"

// Dialogs — блокирующие диалоги с пользователем (alert/confirm).
type Dialogs interface {
	Alert(ctx context.Context, message string)
	Confirm(ctx context.Context, message string) bool
}
