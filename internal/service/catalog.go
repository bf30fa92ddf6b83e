package service

import (
	"context"
	"log"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/user/cinerate/internal/model"
	"github.com/user/cinerate/internal/repository"
	"github.com/user/cinerate/internal/utils"
	"golang.org/x/sync/errgroup"
)

// 卡片上简介的最大展示长度（按字符数截断）
const overviewExcerptLen = 150

// CatalogService 组装页面数据：远程电影数据配上本地评分/待看状态
type CatalogService struct {
	tmdb    *TMDBService
	library *repository.LibraryRepository

	// 类型映射每次会话只拉取一次，常驻内存
	mu     sync.RWMutex
	genres map[int]string

	// 搜索建议走有界 LRU，避免输入联想打满请求缓存
	suggestCache *utils.SearchCache[[]model.Movie]
}

// NewCatalogService 创建目录服务
func NewCatalogService(tmdb *TMDBService, library *repository.LibraryRepository) *CatalogService {
	return &CatalogService{
		tmdb:         tmdb,
		library:      library,
		genres:       make(map[int]string),
		suggestCache: utils.NewSearchCache[[]model.Movie](500, time.Hour),
	}
}

// LoadGenres 拉取类型列表并缓存到内存，用于过滤器选项和类型名渲染
func (s *CatalogService) LoadGenres(ctx context.Context) error {
	list, err := s.tmdb.GetGenres(ctx)
	if err != nil {
		return err
	}
	genres := make(map[int]string, len(list.Genres))
	for _, g := range list.Genres {
		genres[g.ID] = g.Name
	}
	s.mu.Lock()
	s.genres = genres
	s.mu.Unlock()
	return nil
}

// GenreName 按 ID 取类型名
func (s *CatalogService) GenreName(id int) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.genres[id]
}

// GenreOptions 过滤器下拉选项，按名称排序
func (s *CatalogService) GenreOptions() []model.Genre {
	s.mu.RLock()
	options := make([]model.Genre, 0, len(s.genres))
	for id, name := range s.genres {
		options = append(options, model.Genre{ID: id, Name: name})
	}
	s.mu.RUnlock()
	sort.Slice(options, func(i, j int) bool {
		return options[i].Name < options[j].Name
	})
	return options
}

// BuildCards 把电影列表转成卡片视图，并叠加本地评分/待看状态
func (s *CatalogService) BuildCards(movies []model.Movie) []model.MovieCard {
	cards := make([]model.MovieCard, 0, len(movies))
	for _, m := range movies {
		cards = append(cards, s.BuildCard(m))
	}
	return cards
}

// BuildCard 单张电影卡片
func (s *CatalogService) BuildCard(m model.Movie) model.MovieCard {
	return model.MovieCard{
		ID:          m.ID,
		Title:       m.Title,
		PosterURL:   ImageURL(m.PosterPath, ""),
		Score:       fmt1(m.VoteAverage),
		Year:        Year(m.ReleaseDate),
		Overview:    excerpt(m.Overview),
		UserRating:  s.library.GetRating(m.ID),
		InWatchlist: s.library.IsInWatchlist(m.ID),
		HasReview:   len(s.library.GetMovieReviews(m.ID)) > 0,
		Movie:       m,
	}
}

// BuildDetail 电影详情视图：片长、类型名、前 6 位演员、预告片、本人影评
func (s *CatalogService) BuildDetail(d *model.MovieDetail) model.MovieDetailView {
	genreNames := make([]string, 0, len(d.Genres))
	for _, g := range d.Genres {
		genreNames = append(genreNames, g.Name)
	}
	genreText := strings.Join(genreNames, ", ")
	if genreText == "" {
		genreText = "N/A"
	}

	view := model.MovieDetailView{
		ID:          d.ID,
		Title:       d.Title,
		Tagline:     d.Tagline,
		PosterURL:   ImageURL(d.PosterPath, ""),
		BackdropURL: BackdropURL(d.BackdropPath, ""),
		Score:       fmt1(d.VoteAverage),
		VoteCount:   d.VoteCount,
		Year:        Year(d.ReleaseDate),
		ReleaseText: FormatDate(d.ReleaseDate),
		RuntimeText: FormatRuntime(d.Runtime),
		GenreNames:  genreText,
		Overview:    d.Overview,
		BudgetText:  FormatCurrency(d.Budget),
		RevenueText: FormatCurrency(d.Revenue),
		UserRating:  s.library.GetRating(d.ID),
		InWatchlist: s.library.IsInWatchlist(d.ID),
		UserReviews: s.library.GetMovieReviews(d.ID),
	}

	// 演员只展示前 6 位
	if d.Credits != nil {
		cast := d.Credits.Cast
		if len(cast) > 6 {
			cast = cast[:6]
		}
		for _, member := range cast {
			view.Cast = append(view.Cast, model.CastView{
				Name:       member.Name,
				Character:  member.Character,
				ProfileURL: ImageURL(member.ProfilePath, "w185"),
			})
		}
	}

	if trailer := d.Trailer(); trailer != nil {
		view.TrailerURL = YouTubeURL(trailer.Key)
		view.TrailerThumb = YouTubeThumbnail(trailer.Key)
	}

	if d.Similar != nil {
		similar := d.Similar.Results
		if len(similar) > 6 {
			similar = similar[:6]
		}
		view.Similar = s.BuildCards(similar)
	}

	return view
}

// LoadRatedMovies 「我的评分」列表：按本地记录的电影 ID 并发补全完整数据，
// 单个失败只丢弃对应条目，不影响整页
func (s *CatalogService) LoadRatedMovies(ctx context.Context) []model.Movie {
	rated := s.library.GetAllReviewedMovies()
	if len(rated) == 0 {
		return nil
	}

	movies := make([]*model.MovieDetail, len(rated))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(5)
	for i, entry := range rated {
		g.Go(func() error {
			detail, err := s.tmdb.GetMovieDetails(ctx, entry.MovieID)
			if err != nil {
				log.Printf("[Catalog] 补全已评分电影失败 (movieID=%d): %v", entry.MovieID, err)
				return nil
			}
			movies[i] = detail
			return nil
		})
	}
	g.Wait()

	// 保持活动时间倒序，丢掉拉取失败的
	result := make([]model.Movie, 0, len(movies))
	for _, detail := range movies {
		if detail != nil {
			result = append(result, detail.Movie)
		}
	}
	return result
}

// Suggest 搜索建议：取前 5 条结果，结果进有界 LRU
func (s *CatalogService) Suggest(ctx context.Context, query string) ([]model.Movie, error) {
	key := strings.ToLower(strings.TrimSpace(query))
	if key == "" {
		return nil, nil
	}
	if cached, ok := s.suggestCache.Get(key); ok {
		return cached, nil
	}

	list, err := s.tmdb.SearchMovies(ctx, query, 1)
	if err != nil {
		return nil, err
	}
	results := list.Results
	if len(results) > 5 {
		results = results[:5]
	}
	s.suggestCache.Set(key, results)
	return results, nil
}

// fmt1 评分保留一位小数
func fmt1(value float64) string {
	return strconv.FormatFloat(value, 'f', 1, 64)
}

func excerpt(text string) string {
	if text == "" {
		return "No overview available."
	}
	runes := []rune(text)
	if len(runes) <= overviewExcerptLen {
		return text
	}
	return strings.TrimSpace(string(runes[:overviewExcerptLen])) + "..."
}
