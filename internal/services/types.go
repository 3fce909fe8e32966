package services

import "strconv"

// formatID renders a numeric id for external metadata fields
func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
