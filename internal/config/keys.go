package config

import "fmt"

// Redis key layout. Kept in one place so the auth service, the sheet
// service and the upload worker agree on names.

// SessionKey returns the redis key holding the active session JTI for a user.
func SessionKey(userID string) string {
	return fmt.Sprintf("session:%s", userID)
}

// SheetUploadQueue is the redis list the upload worker drains.
const SheetUploadQueue = "sheet_upload_queue"
