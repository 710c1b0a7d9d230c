package domain

import "fmt"

// User-facing Hebrew messages. The assistant speaks Hebrew end to end, so
// these strings are part of observable behavior and are shared between the
// services, the resolver, and the dispatcher rather than scattered as
// literals.
const (
	MsgEmptyText        = "טקסט לא יכול להיות ריק"
	MsgNotHebrew        = "טקסט חייב להיות בעיקר בעברית"
	MsgQuantityPositive = "כמות חייבת להיות חיובית"
	MsgQuantityTooHigh  = "כמות לא יכולה להיות גדולה מ-99"

	MsgListNotFound    = "רשימה לא נמצאה"
	MsgItemNotFound    = "פריט לא נמצא באף רשימה"
	MsgNoDefaultList   = "לא נמצאה רשימת ברירת מחדל"
	MsgListDeleted     = "לא ניתן לעדכן רשימה מחוקה"
	MsgListNotDeleted  = "רשימה זו לא מחוקה"
	MsgNoPermission    = "אין הרשאה לבצע פעולה זו על רשימה זו"
	MsgQuantityRemoved = "הפריט הוסר מהרשימה כי הכמות ירדה ל-0"

	MsgToolTimeout   = "פעולה ארכה יותר מדי זמן"
	MsgLowConfidence = "רמת הביטחון נמוכה מדי"
	MsgNoToolCalls   = "לא הצלחתי להבין את הבקשה"
	MsgUnknownError  = "שגיאה לא ידועה"

	MsgUpstreamRateLimited = "יותר מדי בקשות, נסה שוב בעוד מספר שניות"
	MsgUpstreamTimeout     = "השרת לא הגיב בזמן, נסה שוב"
	MsgUpstreamAuth        = "שגיאה בהגדרות המערכת"
	MsgUpstreamGeneric     = "שגיאה בתקשורת עם השרת"
)

// Suggestion strings attached to failed Results.
const (
	SuggestCreateList        = "צור רשימה חדשה"
	SuggestOtherName         = "נסה לחפש בשם אחר"
	SuggestIncludeBought     = "כולל פריטים שנקנו"
	SuggestRetry             = "נסה שוב"
	SuggestRephrase          = "נסה לנסח את הבקשה בצורה ברורה יותר"
	SuggestSplitRequest      = "פצל את הפעולה לחלקים קטנים יותר"
	SuggestWaitAndRetry      = "המתן מעט ונסה שוב"
	SuggestCheckConnection   = "בדוק את החיבור לאינטרנט"
	SuggestContactAdmin      = "פנה למנהל המערכת"
	SuggestRestoreDeleted    = "שחזר את הרשימה המחוקה"
	SuggestPickOtherName     = "בחר שם אחר לרשימה החדשה"
	SuggestUseOtherName      = "השתמש בשם אחר"
	SuggestUpdateExisting    = "עדכן את הכמות של הפריט הקיים"
	SuggestRenameThenRestore = "שנה את שם הרשימה לפני השחזור"
	SuggestDeleteActiveList  = "מחק את הרשימה הפעילה תחילה"
	SuggestOtherTool         = "נסה להשתמש בכלי אחר"
	SuggestRestoreList       = "שחזר את הרשימה או בחר רשימה אחרת"
)

// MsgListMissing formats the not-found message for a named list.
func MsgListMissing(name string) string {
	return fmt.Sprintf("לא מצאתי רשימה בשם %s", name)
}

// MsgItemMissingInList formats the not-found message for an item scoped to a list.
func MsgItemMissingInList(item, list string) string {
	return fmt.Sprintf("לא מצאתי %s ברשימה %s", item, list)
}

// MsgDuplicateName formats the name-collision message.
func MsgDuplicateName(name string) string {
	return fmt.Sprintf("השם '%s' כבר קיים", name)
}

// MsgPreviouslyDeleted formats the create-over-soft-deleted message.
func MsgPreviouslyDeleted(name string) string {
	return fmt.Sprintf("רשימה בשם '%s' נמחקה בעבר", name)
}

// MsgActiveNameExists formats the restore-conflict message.
func MsgActiveNameExists(name string) string {
	return fmt.Sprintf("קיימת רשימה פעילה בשם '%s'", name)
}

// MsgAmbiguousItem formats the multi-location disambiguation prompt.
func MsgAmbiguousItem(name string) string {
	return fmt.Sprintf("מצאתי %s במספר רשימות, באיזו רשימה התכוונת?", name)
}

// MsgUnsupportedTool formats the unknown-tool message.
func MsgUnsupportedTool(name string) string {
	return fmt.Sprintf("כלי לא נתמך: %s", name)
}

// MsgMissingArgument formats the missing-required-argument message.
func MsgMissingArgument(name string) string {
	return fmt.Sprintf("חסר שדה חובה: %s", name)
}

// MsgBadArgument formats the unparseable-argument message.
func MsgBadArgument(name string) string {
	return fmt.Sprintf("ערך לא תקין בשדה %s", name)
}

// MsgItemAlreadyInList formats the duplicate-item message for add without merge.
func MsgItemAlreadyInList(item, list string) string {
	return fmt.Sprintf("%s כבר קיים ברשימה %s", item, list)
}

// Success message formatters. Success messages are addressed to the user in
// first person, matching the assistant's voice.

func MsgAddedItem(name string, qty int, unit, list string) string {
	return fmt.Sprintf("הוספתי %s (%d %s) לרשימה %s", name, qty, unit, list)
}

func MsgMergedQuantity(name string, qty int) string {
	return fmt.Sprintf("עדכנתי את %s, הכמות החדשה: %d", name, qty)
}

func MsgQuantitySet(name string, qty int) string {
	return fmt.Sprintf("הכמות של %s עודכנה ל-%d", name, qty)
}

func MsgItemRemoved(name string) string {
	return fmt.Sprintf("הסרתי את %s מהרשימה", name)
}

func MsgMarkedBought(name string) string {
	return fmt.Sprintf("סימנתי את %s כנקנה", name)
}

func MsgMarkedUnbought(name string) string {
	return fmt.Sprintf("ביטלתי את סימון הקנייה של %s", name)
}

func MsgListCreated(name string) string {
	return fmt.Sprintf("יצרתי את הרשימה %s", name)
}

func MsgListRemoved(name string) string {
	return fmt.Sprintf("מחקתי את הרשימה %s", name)
}

func MsgListRestored(name string) string {
	return fmt.Sprintf("שחזרתי את הרשימה %s", name)
}

func MsgListRenamed(oldName, newName string) string {
	return fmt.Sprintf("שיניתי את שם הרשימה %s ל-%s", oldName, newName)
}

func MsgDefaultListSet(name string) string {
	return fmt.Sprintf("הרשימה %s נקבעה כברירת מחדל", name)
}
