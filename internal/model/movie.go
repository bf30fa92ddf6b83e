package model

// Movie 电影列表条目（TMDB 返回）
type Movie struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	ReleaseDate  string  `json:"release_date"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	GenreIDs     []int   `json:"genre_ids,omitempty"`
	Popularity   float64 `json:"popularity,omitempty"`
}

// MovieList 分页电影列表
type MovieList struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// Genre 电影类型
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GenreList 类型列表响应
type GenreList struct {
	Genres []Genre `json:"genres"`
}

// CastMember 演员
type CastMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
	Order       int    `json:"order"`
}

// CrewMember 剧组成员
type CrewMember struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Job        string `json:"job"`
	Department string `json:"department"`
}

// Credits 演职员表
type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// Video 预告片等视频资源
type Video struct {
	ID       string `json:"id"`
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}

// VideoList 视频列表响应
type VideoList struct {
	ID      int     `json:"id"`
	Results []Video `json:"results"`
}

// ProviderReview TMDB 站方影评（区别于本地用户影评）
type ProviderReview struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	URL       string `json:"url"`
}

// ProviderReviewList 站方影评分页列表
type ProviderReviewList struct {
	Page         int              `json:"page"`
	Results      []ProviderReview `json:"results"`
	TotalPages   int              `json:"total_pages"`
	TotalResults int              `json:"total_results"`
}

// MovieDetail 电影详情（append_to_response 一次性附带关联资源）
type MovieDetail struct {
	Movie
	Runtime int                 `json:"runtime"`
	Genres  []Genre             `json:"genres"`
	Tagline string              `json:"tagline"`
	Budget  int64               `json:"budget"`
	Revenue int64               `json:"revenue"`
	Status  string              `json:"status"`
	Credits *Credits            `json:"credits,omitempty"`
	Videos  *VideoList          `json:"videos,omitempty"`
	Reviews *ProviderReviewList `json:"reviews,omitempty"`
	Similar *MovieList          `json:"similar,omitempty"`
}

// Trailer 在视频列表中找出第一条 YouTube 预告片，没有则返回 nil
func (d *MovieDetail) Trailer() *Video {
	if d.Videos == nil {
		return nil
	}
	for i := range d.Videos.Results {
		v := &d.Videos.Results[i]
		if v.Type == "Trailer" && v.Site == "YouTube" {
			return v
		}
	}
	return nil
}

// Person 人物详情
type Person struct {
	ID                 int    `json:"id"`
	Name               string `json:"name"`
	Biography          string `json:"biography"`
	Birthday           string `json:"birthday"`
	PlaceOfBirth       string `json:"place_of_birth"`
	ProfilePath        string `json:"profile_path"`
	KnownForDepartment string `json:"known_for_department"`
}
