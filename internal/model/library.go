package model

// StorageEntry 本地键值存储条目，三个集合各占一个固定键
type StorageEntry struct {
	Key   string `gorm:"primaryKey;column:key"`
	Value string `gorm:"column:value"`
}

// TableName 指定表名
func (StorageEntry) TableName() string {
	return "storage_entries"
}

// Rating 用户评分，每部电影仅保留一条，更新时整体覆盖
// 时间戳与导出格式保持毫秒精度
type Rating struct {
	Rating    int   `json:"rating"`
	Timestamp int64 `json:"timestamp"`
}

// Review 用户影评，按插入顺序追加，从不原地修改
type Review struct {
	ID        string `json:"id"`
	Rating    int    `json:"rating"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
	Date      string `json:"date"`
}

// WatchlistEntry 待看清单条目：添加时刻的电影快照，上游数据变化后不跟随更新
type WatchlistEntry struct {
	Movie
	AddedAt int64 `json:"addedAt"`
}

// RatingMap / ReviewMap / WatchlistMap 三个集合的存储形态，键为电影 ID
// （Go 对 int 键的 map 序列化为字符串键对象，与导出格式一致）
type (
	RatingMap    map[int]Rating
	ReviewMap    map[int][]Review
	WatchlistMap map[int]WatchlistEntry
)

// RatedMovie 「我的评分」聚合条目：有评分或有影评的电影各出现一次
type RatedMovie struct {
	MovieID    int     `json:"movieId"`
	HasReview  bool    `json:"hasReview"`
	Rating     int     `json:"rating"`
	LastReview *Review `json:"lastReview,omitempty"`
	Timestamp  int64   `json:"timestamp,omitempty"`
}

// ActivityTime 最近活动时间：优先取最新影评时间，否则取评分时间
func (m *RatedMovie) ActivityTime() int64 {
	if m.LastReview != nil {
		return m.LastReview.Timestamp
	}
	return m.Timestamp
}

// Stats 个人数据统计
type Stats struct {
	RatedMoviesCount    int     `json:"ratedMoviesCount"`
	ReviewedMoviesCount int     `json:"reviewedMoviesCount"`
	WatchlistCount      int     `json:"watchlistCount"`
	AverageRating       float64 `json:"averageRating"`
}

// ExportBundle 导出/导入数据包，导入时缺失的集合保持不变
type ExportBundle struct {
	Ratings    RatingMap    `json:"ratings"`
	Reviews    ReviewMap    `json:"reviews"`
	Watchlist  WatchlistMap `json:"watchlist"`
	ExportDate string       `json:"exportDate,omitempty"`
}
