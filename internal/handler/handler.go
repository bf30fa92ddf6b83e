package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/user/cinerate/internal/config"
	"github.com/user/cinerate/internal/model"
	"github.com/user/cinerate/internal/repository"
	"github.com/user/cinerate/internal/service"
	"github.com/user/cinerate/internal/utils"
)

// Handler HTTP 处理器
type Handler struct {
	Repos   *repository.Repositories
	Config  *config.Config
	TMDB    *service.TMDBService
	Catalog *service.CatalogService
}

// NewHandler 创建处理器
func NewHandler(repos *repository.Repositories, cfg *config.Config) *Handler {
	// 创建 TMDB 客户端
	tmdb := service.NewTMDBService(cfg)

	// 创建目录服务
	catalog := service.NewCatalogService(tmdb, repos.Library)

	return &Handler{
		Repos:   repos,
		Config:  cfg,
		TMDB:    tmdb,
		Catalog: catalog,
	}
}

// RenderData 统一封装公共渲染数据
func (h *Handler) RenderData(c *gin.Context, data gin.H) gin.H {
	// 基础数据
	res := gin.H{
		"SiteName": h.Config.SiteName,
		"SiteUrl":  h.Config.SiteUrl,
		"Path":     c.Request.URL.Path,
		"Query":    c.Query("q"),
	}

	// 菜单高亮逻辑
	res["ActiveMenu"] = h.getActiveMenu(c.Request.URL.Path)

	// 过滤器选项与上次选中的条件
	res["Genres"] = h.Catalog.GenreOptions()
	session := sessions.Default(c)
	if genre := session.Get("filter_genre"); genre != nil {
		res["FilterGenre"] = genre
	}
	if sortBy := session.Get("filter_sort"); sortBy != nil {
		res["FilterSort"] = sortBy
	}

	// 合并传入的数据
	for k, v := range data {
		res[k] = v
	}

	return res
}

// getActiveMenu 根据路径判断当前高亮菜单
func (h *Handler) getActiveMenu(path string) string {
	switch path {
	case "/", "/discover":
		return "trending"
	case "/watchlist":
		return "watchlist"
	case "/rated":
		return "rated"
	case "/search":
		return "search"
	case "/stats":
		return "stats"
	default:
		return ""
	}
}

// NotFound 未匹配路由的兜底：API 返回 JSON，页面渲染 404 页
func (h *Handler) NotFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		utils.NotFound(c, "Resource not found")
		return
	}
	c.HTML(http.StatusNotFound, "404.html", h.RenderData(c, gin.H{
		"Title": "Page Not Found - " + h.Config.SiteName,
	}))
}

// renderGrid 渲染电影网格页，加载失败时展示内嵌错误面板
func (h *Handler) renderGrid(c *gin.Context, page string, data gin.H) {
	c.HTML(http.StatusOK, page, h.RenderData(c, data))
}

// ==================== 浏览页面 ====================

// Home 首页（热门趋势）
func (h *Handler) Home(c *gin.Context) {
	timeWindow := c.DefaultQuery("window", "week")

	list, err := h.TMDB.GetTrendingMovies(c.Request.Context(), timeWindow)
	if err != nil {
		h.renderGrid(c, "home.html", gin.H{
			"Title":        h.Config.SiteName + " - Discover Movies",
			"SectionTitle": "Trending Movies",
			"Error":        "Failed to load trending movies. Please try again.",
			"ShowFilters":  true,
		})
		return
	}

	h.renderGrid(c, "home.html", gin.H{
		"Title":        h.Config.SiteName + " - Discover Movies",
		"SectionTitle": "Trending Movies",
		"Cards":        h.Catalog.BuildCards(list.Results),
		"ShowFilters":  true,
	})
}

// Search 搜索结果页
func (h *Handler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.Redirect(http.StatusFound, "/")
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	list, err := h.TMDB.SearchMovies(c.Request.Context(), query, page)
	if err != nil {
		h.renderGrid(c, "search.html", gin.H{
			"Title":        query + " - " + h.Config.SiteName,
			"SectionTitle": fmt.Sprintf("Search Results for %q", query),
			"Error":        "Failed to search movies. Please try again.",
			"ShowFilters":  true,
		})
		return
	}

	h.renderGrid(c, "search.html", gin.H{
		"Title":        query + " - " + h.Config.SiteName,
		"SectionTitle": fmt.Sprintf("Search Results for %q", query),
		"Cards":        h.Catalog.BuildCards(list.Results),
		"ShowFilters":  true,
		"Page":         list.Page,
		"TotalPages":   list.TotalPages,
		"EmptyMessage": "No movies found. Try a different search.",
	})
}

// Discover 过滤发现页：只有趋势/搜索两个状态带过滤器，条件变化重新发起发现查询
func (h *Handler) Discover(c *gin.Context) {
	genreID := c.Query("with_genres")
	sortBy := c.DefaultQuery("sort_by", "popularity.desc")

	// 记住过滤条件，回到页面时恢复选中状态
	session := sessions.Default(c)
	session.Set("filter_genre", genreID)
	session.Set("filter_sort", sortBy)
	session.Save()

	filters := map[string]string{"sort_by": sortBy}
	if genreID != "" {
		filters["with_genres"] = genreID
	}

	sectionTitle := "Discover Movies"
	if genreID != "" {
		if id, err := strconv.Atoi(genreID); err == nil {
			if name := h.Catalog.GenreName(id); name != "" {
				sectionTitle += " - " + name
			}
		}
	}

	list, err := h.TMDB.DiscoverMovies(c.Request.Context(), filters)
	if err != nil {
		h.renderGrid(c, "discover.html", gin.H{
			"Title":        "Discover - " + h.Config.SiteName,
			"SectionTitle": sectionTitle,
			"Error":        "Failed to apply filters. Please try again.",
			"ShowFilters":  true,
		})
		return
	}

	h.renderGrid(c, "discover.html", gin.H{
		"Title":        "Discover - " + h.Config.SiteName,
		"SectionTitle": sectionTitle,
		"Cards":        h.Catalog.BuildCards(list.Results),
		"ShowFilters":  true,
	})
}

// Watchlist 待看清单页（纯本地数据）
func (h *Handler) Watchlist(c *gin.Context) {
	entries := h.Repos.Library.GetWatchlistMovies()
	movies := make([]model.Movie, 0, len(entries))
	for _, entry := range entries {
		movies = append(movies, entry.Movie)
	}

	h.renderGrid(c, "watchlist.html", gin.H{
		"Title":        "My Watchlist - " + h.Config.SiteName,
		"SectionTitle": "My Watchlist",
		"Cards":        h.Catalog.BuildCards(movies),
		"EmptyMessage": "Your watchlist is empty. Add movies you want to watch!",
	})
}

// Rated 我的评分页：本地记录的电影 ID 逐个补全远程数据
func (h *Handler) Rated(c *gin.Context) {
	movies := h.Catalog.LoadRatedMovies(c.Request.Context())

	h.renderGrid(c, "rated.html", gin.H{
		"Title":        "My Rated Movies - " + h.Config.SiteName,
		"SectionTitle": "My Rated Movies",
		"Cards":        h.Catalog.BuildCards(movies),
		"EmptyMessage": "You haven't rated any movies yet.",
	})
}

// Movie 电影详情页
func (h *Handler) Movie(c *gin.Context) {
	movieID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.HTML(http.StatusNotFound, "404.html", h.RenderData(c, gin.H{
			"Title": "Movie Not Found - " + h.Config.SiteName,
		}))
		return
	}

	detail, err := h.TMDB.GetMovieDetails(c.Request.Context(), movieID)
	if err != nil {
		c.HTML(http.StatusOK, "movie.html", h.RenderData(c, gin.H{
			"Title": "Error - " + h.Config.SiteName,
			"Error": "Failed to load movie details. Please try again.",
		}))
		return
	}

	view := h.Catalog.BuildDetail(detail)
	c.HTML(http.StatusOK, "movie.html", h.RenderData(c, gin.H{
		"Title": fmt.Sprintf("%s (%s) - %s", view.Title, view.Year, h.Config.SiteName),
		"Movie": view,
	}))
}

// Person 人物详情页
func (h *Handler) Person(c *gin.Context) {
	personID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.HTML(http.StatusNotFound, "404.html", h.RenderData(c, gin.H{
			"Title": "Not Found - " + h.Config.SiteName,
		}))
		return
	}

	person, err := h.TMDB.GetPersonDetails(c.Request.Context(), personID)
	if err != nil {
		c.HTML(http.StatusOK, "person.html", h.RenderData(c, gin.H{
			"Title": "Error - " + h.Config.SiteName,
			"Error": "Failed to load person details. Please try again.",
		}))
		return
	}

	c.HTML(http.StatusOK, "person.html", h.RenderData(c, gin.H{
		"Title":      person.Name + " - " + h.Config.SiteName,
		"Person":     person,
		"ProfileURL": service.ImageURL(person.ProfilePath, "w185"),
	}))
}

// Stats 数据统计页，附带导出/导入/清空入口
func (h *Handler) Stats(c *gin.Context) {
	stats := h.Repos.Library.GetStats()

	c.HTML(http.StatusOK, "stats.html", h.RenderData(c, gin.H{
		"Title": "My Stats - " + h.Config.SiteName,
		"Stats": stats,
	}))
}
