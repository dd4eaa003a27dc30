package metadata

// --- SQLite Keys ---
// 这些常量用于metadata表的key列。
const (
	// LeaderboardLastRefreshKey 记录最近一次排行榜缓存全量刷新的完成时间(RFC3339)。
	// 它在周期刷新与停机前的最终刷新时被更新，用于观察刷新服务是否正常工作。
	LeaderboardLastRefreshKey = "leaderboard_last_refresh_at"

	// SchemaSeededKey 标记种子数据（动作库与食物库）是否已经写入。
	// 值为 "1" 时，启动流程跳过种子导入。
	SchemaSeededKey = "schema_seeded"
)
