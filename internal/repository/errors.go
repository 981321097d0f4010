package repository

import "errors"

// 通用的存储库错误
var (
	// ErrNotFound 表示请求的 key 不存在
	ErrNotFound = errors.New("repository: record not found")
)
