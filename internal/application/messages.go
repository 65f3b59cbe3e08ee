package application

import "errors"

// Shell text shared across screens.
const (
	appTitle      = "学生学籍管理系统"
	backLabel     = "返回"
	busyText      = "处理中..."
	cancelledText = "操作已取消"
	noMatchText   = "未找到匹配的学生信息"
	emptyText     = "没有学生记录"
)

var errInvalidInput = errors.New("输入无效，请重新输入")
