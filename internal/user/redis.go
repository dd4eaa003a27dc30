package user

// KnownUsersKey 是一个 Redis Set 的键，缓存了所有已持久化的用户UUID。
// 写路径用它来快速判断一个Cookie中的UUID是否已经被激活。
const KnownUsersKey = "user:known"
