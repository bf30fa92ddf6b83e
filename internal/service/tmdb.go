package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/user/cinerate/internal/config"
	"github.com/user/cinerate/internal/model"
	"golang.org/x/sync/singleflight"
)

// TMDBService TMDB 数据客户端：统一的请求入口加限时缓存，
// 各端点只是参数拼装的薄封装
type TMDBService struct {
	config *config.Config
	client *http.Client
	cache  *cache.Cache
	group  singleflight.Group
}

// NewTMDBService 创建 TMDB 客户端
func NewTMDBService(cfg *config.Config) *TMDBService {
	return &TMDBService{
		config: cfg,
		client: &http.Client{Timeout: 10 * time.Second},
		// go-cache 自带清理协程，按 CacheCleanup 间隔扫除过期条目
		cache: cache.New(cfg.CacheTTL, cfg.CacheCleanup),
	}
}

// makeRequest 通用请求：拼装完整请求串（api_key 固定附加，空值参数一律丢弃），
// 命中未过期缓存直接返回；否则发起请求并以完整 URL 为键缓存响应体。
// 非 2xx 状态与传输失败直接返回错误，失败不缓存，也不重试。
func (s *TMDBService) makeRequest(ctx context.Context, endpoint string, params map[string]string) ([]byte, error) {
	values := url.Values{}
	values.Set("api_key", s.config.TMDBAPIKey)
	for key, value := range params {
		// 与查询参数的可选语义保持一致：空串、0、false 不拼入
		if value == "" || value == "0" || value == "false" {
			continue
		}
		values.Set(key, value)
	}

	// Encode 按键名排序，同样的请求总是得到同样的签名
	requestURL := s.config.TMDBBaseURL + endpoint + "?" + values.Encode()

	if cached, found := s.cache.Get(requestURL); found {
		return cached.([]byte), nil
	}

	// singleflight 合并并发的相同请求
	val, err, _ := s.group.Do(requestURL, func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := s.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("http request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read response: %w", err)
		}

		s.cache.SetDefault(requestURL, body)
		return body, nil
	})
	if err != nil {
		return nil, err
	}
	return val.([]byte), nil
}

// getJSON 请求并解析到 target
func (s *TMDBService) getJSON(ctx context.Context, endpoint string, params map[string]string, target interface{}) error {
	body, err := s.makeRequest(ctx, endpoint, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// ClearCache 清空响应缓存
func (s *TMDBService) ClearCache() {
	s.cache.Flush()
}

// ==================== 端点封装 ====================

// GetTrendingMovies 热门趋势，timeWindow 为 day 或 week
func (s *TMDBService) GetTrendingMovies(ctx context.Context, timeWindow string) (*model.MovieList, error) {
	if timeWindow == "" {
		timeWindow = "week"
	}
	var list model.MovieList
	if err := s.getJSON(ctx, fmt.Sprintf("/trending/movie/%s", timeWindow), nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// SearchMovies 按关键词搜索
func (s *TMDBService) SearchMovies(ctx context.Context, query string, page int) (*model.MovieList, error) {
	if page <= 0 {
		page = 1
	}
	var list model.MovieList
	err := s.getJSON(ctx, "/search/movie", map[string]string{
		"query":         query,
		"page":          strconv.Itoa(page),
		"include_adult": "false",
	}, &list)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// GetMovieDetails 电影详情，一次请求附带演职员、视频、影评和相似影片
func (s *TMDBService) GetMovieDetails(ctx context.Context, movieID int) (*model.MovieDetail, error) {
	var detail model.MovieDetail
	err := s.getJSON(ctx, fmt.Sprintf("/movie/%d", movieID), map[string]string{
		"append_to_response": "credits,videos,reviews,similar",
	}, &detail)
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// GetPopularMovies 热门电影
func (s *TMDBService) GetPopularMovies(ctx context.Context, page int) (*model.MovieList, error) {
	return s.movieListing(ctx, "/movie/popular", page)
}

// GetTopRatedMovies 高分电影
func (s *TMDBService) GetTopRatedMovies(ctx context.Context, page int) (*model.MovieList, error) {
	return s.movieListing(ctx, "/movie/top_rated", page)
}

// GetNowPlayingMovies 正在上映
func (s *TMDBService) GetNowPlayingMovies(ctx context.Context, page int) (*model.MovieList, error) {
	return s.movieListing(ctx, "/movie/now_playing", page)
}

// GetUpcomingMovies 即将上映
func (s *TMDBService) GetUpcomingMovies(ctx context.Context, page int) (*model.MovieList, error) {
	return s.movieListing(ctx, "/movie/upcoming", page)
}

func (s *TMDBService) movieListing(ctx context.Context, endpoint string, page int) (*model.MovieList, error) {
	if page <= 0 {
		page = 1
	}
	var list model.MovieList
	err := s.getJSON(ctx, endpoint, map[string]string{
		"page": strconv.Itoa(page),
	}, &list)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// DiscoverMovies 按条件发现电影，调用方的过滤条件覆盖默认排序和分页
func (s *TMDBService) DiscoverMovies(ctx context.Context, filters map[string]string) (*model.MovieList, error) {
	params := map[string]string{
		"page":          "1",
		"sort_by":       "popularity.desc",
		"include_adult": "false",
		"include_video": "false",
	}
	for key, value := range filters {
		params[key] = value
	}
	var list model.MovieList
	if err := s.getJSON(ctx, "/discover/movie", params, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetGenres 电影类型列表
func (s *TMDBService) GetGenres(ctx context.Context) (*model.GenreList, error) {
	var list model.GenreList
	if err := s.getJSON(ctx, "/genre/movie/list", nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetPersonDetails 人物详情
func (s *TMDBService) GetPersonDetails(ctx context.Context, personID int) (*model.Person, error) {
	var person model.Person
	if err := s.getJSON(ctx, fmt.Sprintf("/person/%d", personID), nil, &person); err != nil {
		return nil, err
	}
	return &person, nil
}

// GetMovieVideos 电影视频（预告片等）
func (s *TMDBService) GetMovieVideos(ctx context.Context, movieID int) (*model.VideoList, error) {
	var list model.VideoList
	if err := s.getJSON(ctx, fmt.Sprintf("/movie/%d/videos", movieID), nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetMovieCredits 电影演职员表
func (s *TMDBService) GetMovieCredits(ctx context.Context, movieID int) (*model.Credits, error) {
	var credits model.Credits
	if err := s.getJSON(ctx, fmt.Sprintf("/movie/%d/credits", movieID), nil, &credits); err != nil {
		return nil, err
	}
	return &credits, nil
}

// GetMovieReviews 站方影评
func (s *TMDBService) GetMovieReviews(ctx context.Context, movieID, page int) (*model.ProviderReviewList, error) {
	if page <= 0 {
		page = 1
	}
	var list model.ProviderReviewList
	err := s.getJSON(ctx, fmt.Sprintf("/movie/%d/reviews", movieID), map[string]string{
		"page": strconv.Itoa(page),
	}, &list)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// GetSimilarMovies 相似影片
func (s *TMDBService) GetSimilarMovies(ctx context.Context, movieID, page int) (*model.MovieList, error) {
	if page <= 0 {
		page = 1
	}
	var list model.MovieList
	err := s.getJSON(ctx, fmt.Sprintf("/movie/%d/similar", movieID), map[string]string{
		"page": strconv.Itoa(page),
	}, &list)
	if err != nil {
		return nil, err
	}
	return &list, nil
}
