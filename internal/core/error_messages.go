package core

// # Error Codes Reference
//
// The shell shows these codes next to failures that the user cannot fix by
// re-entering a value, so a reported code can be traced back to the log.
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL001 - Age is not an integer            (ErrAgeFormat)
//	VAL002 - Age outside 15-50                (ErrAgeRange)
//	VAL003 - Unknown enrollment status        (ErrUnknownStatus)
//	VAL004 - Wrong field count in a data line (ErrFieldCount)
//	VAL005 - Any other field problem          (ErrValidation)
//
// # Record Errors (REC001-REC099)
//
//	REC001 - Student ID already in use (ErrDuplicate)
//	REC002 - Student ID not found      (ErrNotFound)
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - Permission denied    (fs.ErrPermission)
//	FILE002 - File does not exist  (fs.ErrNotExist)
//	FILE003 - Other storage failure (ErrStorage)
//
// # Spreadsheet Errors (SHEET001-SHEET099)
//
// Matched on message text, since the spreadsheet library reports these as
// plain errors.
//
//	SHEET001 - Required column missing from header row
//	SHEET002 - Worksheet not found
//	SHEET003 - File is not a valid xlsx workbook
//
// # Default Error (ERR000)
//
// Fallback when nothing matches. Check the log for the technical error.
//
// Kind matchers run before text patterns, and the first match wins, so
// specific kinds come before the kinds they wrap.

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorKind struct {
	kind error
	msg  UserMessage
}

var errorKinds = []errorKind{
	{
		kind: ErrAgeFormat,
		msg:  UserMessage{Message: "年龄格式不正确", Action: "请输入整数年龄", Code: "VAL001"},
	},
	{
		kind: ErrAgeRange,
		msg:  UserMessage{Message: "年龄超出范围", Action: "年龄必须在15到50岁之间", Code: "VAL002"},
	},
	{
		kind: ErrUnknownStatus,
		msg:  UserMessage{Message: "无效的学籍状态", Action: "请输入 入学、休学、退学 或 留级", Code: "VAL003"},
	},
	{
		kind: ErrFieldCount,
		msg:  UserMessage{Message: "数据行字段数量不正确", Action: "每行需要9个以逗号分隔的字段", Code: "VAL004"},
	},
	{
		kind: ErrValidation,
		msg:  UserMessage{Message: "输入信息不完整或不正确", Action: "请检查后重新输入", Code: "VAL005"},
	},
	{
		kind: ErrDuplicate,
		msg:  UserMessage{Message: "学号已存在", Action: "请使用其他学号", Code: "REC001"},
	},
	{
		kind: ErrNotFound,
		msg:  UserMessage{Message: "未找到该学号的学生", Action: "请先查询确认学号", Code: "REC002"},
	},
	{
		kind: fs.ErrPermission,
		msg:  UserMessage{Message: "没有文件访问权限", Action: "请检查数据目录的读写权限", Code: "FILE001"},
	},
	{
		kind: fs.ErrNotExist,
		msg:  UserMessage{Message: "文件不存在", Action: "请检查文件路径", Code: "FILE002"},
	},
	{
		kind: ErrStorage,
		msg:  UserMessage{Message: "文件读写失败", Action: "请检查磁盘空间和数据目录后重试", Code: "FILE003"},
	},
	{
		kind: context.Canceled,
		msg:  UserMessage{Message: "操作已取消", Action: "如需继续请重新操作", Code: "ERR001"},
	},
}

// errorPattern matches errors that carry no kind, by lower-cased message text.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	{
		pattern: "missing required columns",
		msg:     UserMessage{Message: "表格缺少必需的列", Action: "请使用导出的表格作为模板", Code: "SHEET001"},
	},
	{
		pattern: "does not exist",
		msg:     UserMessage{Message: "找不到指定的工作表", Action: "请检查工作表名称配置", Code: "SHEET002"},
	},
	{
		pattern: "not a valid zip file",
		msg:     UserMessage{Message: "文件不是有效的 xlsx 工作簿", Action: "请用 Excel 另存为 .xlsx 格式", Code: "SHEET003"},
	},
	{
		pattern: "unsupported workbook file format",
		msg:     UserMessage{Message: "文件不是有效的 xlsx 工作簿", Action: "请用 Excel 另存为 .xlsx 格式", Code: "SHEET003"},
	},
}

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "发生未知错误",
	Action:  "请重试，或查看日志文件",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, ek := range errorKinds {
		if errors.Is(err, ek.kind) {
			return ek.msg
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message（代码：XXX）。Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s（代码：%s）。%s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific code rather than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user-facing message.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}

// DisplayError is the text the shell shows for err. Validation and record
// errors already carry a specific message and are shown as is; everything
// else gets the mapped message with its code.
func DisplayError(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrValidation) || errors.Is(err, ErrDuplicate) || errors.Is(err, ErrNotFound) {
		return err.Error()
	}
	return FormatUserError(err)
}
