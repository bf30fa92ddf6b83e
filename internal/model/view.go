package model

// MovieCard 电影卡片视图数据
type MovieCard struct {
	ID          int
	Title       string
	PosterURL   string
	Score       string
	Year        string
	Overview    string
	UserRating  int
	InWatchlist bool
	HasReview   bool
	// 原始列表条目，详情拉取失败时作为待看快照兜底回传
	Movie Movie
}

// CastView 演员卡片视图数据
type CastView struct {
	Name       string
	Character  string
	ProfileURL string
}

// MovieDetailView 电影详情视图数据
type MovieDetailView struct {
	ID           int
	Title        string
	Tagline      string
	PosterURL    string
	BackdropURL  string
	Score        string
	VoteCount    int
	Year         string
	ReleaseText  string
	RuntimeText  string
	GenreNames   string
	Overview     string
	BudgetText   string
	RevenueText  string
	Cast         []CastView
	TrailerURL   string
	TrailerThumb string
	UserRating   int
	InWatchlist  bool
	UserReviews  []Review
	Similar      []MovieCard
}
