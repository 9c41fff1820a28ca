package service

import (
	"errors"
)

const (
	BadRequest          = 400
	NotFound            = 404
	PayloadTooLarge     = 413
	InternalServerError = 500
)

var (
	ErrParamInvalid       = errors.New("参数错误")
	ErrPostNotFound       = errors.New("文章不存在")
	ErrPostIDInvalid      = errors.New("文章ID格式错误")
	ErrFileNotSupported   = errors.New("不支持的文件类型")
	ErrFileTooLarge       = errors.New("文件大小超过限制")
	ErrFileNotExist       = errors.New("文件不存在")
	ErrFileSaveFailed     = errors.New("文件保存失败")
	ErrAttachmentNotFound = errors.New("附件不存在")
	UnExpectedError       = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:       BadRequest,
	ErrPostNotFound:       NotFound,
	ErrPostIDInvalid:      BadRequest,
	ErrFileNotSupported:   BadRequest,
	ErrFileTooLarge:       PayloadTooLarge,
	ErrFileNotExist:       NotFound,
	ErrFileSaveFailed:     InternalServerError,
	ErrAttachmentNotFound: NotFound,
	UnExpectedError:       InternalServerError,
}
