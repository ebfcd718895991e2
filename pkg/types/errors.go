package types

import (
	"errors"
	"fmt"
)

// 错误类别，供 errors.Is 判断
var (
	ErrInput  = errors.New("输入错误")
	ErrDecode = errors.New("交易解码错误")
	ErrRender = errors.New("页面渲染错误")
	ErrWrite  = errors.New("文件写入错误")
)

// InputError 事件日志无法读取或某一行格式错误
type InputError struct {
	Path string
	Line int // 0 表示与具体行无关
	Err  error
}

func (e *InputError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("读取事件日志 %s 第 %d 行失败: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("读取事件日志 %s 失败: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error        { return e.Err }
func (e *InputError) Is(target error) bool { return target == ErrInput }

// DecodeError 原始交易字节无法解析
type DecodeError struct {
	TxID string // 日志中记录的交易ID
	Side string // replaced | replacement
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("解码%s交易 %s 失败: %v", e.Side, e.TxID, e.Err)
}

func (e *DecodeError) Unwrap() error        { return e.Err }
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// RenderError 模板渲染失败
type RenderError struct {
	Page int
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("渲染第 %d 页失败: %v", e.Page, e.Err)
}

func (e *RenderError) Unwrap() error        { return e.Err }
func (e *RenderError) Is(target error) bool { return target == ErrRender }

// WriteError 输出文件无法创建或写入
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("写入 %s 失败: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error        { return e.Err }
func (e *WriteError) Is(target error) bool { return target == ErrWrite }
