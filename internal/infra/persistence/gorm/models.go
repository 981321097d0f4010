package gormpersistence

import "time"

// KVEntry 是键值存储在数据库中的一行。
// 自增 ID 记录首次写入顺序，Keys 按 ID 升序枚举。
type KVEntry struct {
	ID        uint      `gorm:"primaryKey"`
	Key       string    `gorm:"column:entry_key;type:varchar(191);uniqueIndex:idx_entry_key;not null"` // 限制长度以匹配索引
	Value     string    `gorm:"column:entry_value;type:longtext;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (KVEntry) TableName() string { return "kv_entries" }

// AddressEntry 保存当前的可导航地址，表中只有 ID=1 一行
type AddressEntry struct {
	ID        uint      `gorm:"primaryKey"`
	Address   string    `gorm:"type:varchar(255);not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (AddressEntry) TableName() string { return "editor_addresses" }
