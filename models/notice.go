package models

type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice is a user-visible, non-fatal message attached to a response.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
	Items   []string    `json:"items,omitempty"`
}

func Info(msg string) Notice    { return Notice{Level: NoticeInfo, Message: msg} }
func Warning(msg string) Notice { return Notice{Level: NoticeWarning, Message: msg} }
func Error(msg string) Notice   { return Notice{Level: NoticeError, Message: msg} }
