package cache

import "strings"

const namespace = "hive:v1"

// Keys used by the bookmark engine.
const (
	KeyTree           = namespace + ":bookmarks:tree"
	KeyActiveFolderID = namespace + ":bookmarks:active_folder_id"
)

// WidgetSourceKey returns the key of the source preference of a widget type.
func WidgetSourceKey(widgetType string) string {
	return namespace + ":widget:" + strings.ToLower(widgetType) + ":source"
}
