package repository

import "context"

// AddressStore 定义了可导航地址 (例如 URL 片段 "#<id>") 的读写。
// 空字符串表示当前没有选中任何工作区。
type AddressStore interface {
	// Current 返回当前地址
	Current(ctx context.Context) (string, error)

	// Navigate 把地址设置为 address，立即生效
	Navigate(ctx context.Context, address string) error
}
