package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/user/cinerate/internal/model"
	"github.com/user/cinerate/internal/service"
	"github.com/user/cinerate/internal/utils"
)

// RatingForm 评分提交
type RatingForm struct {
	Rating int `form:"rating" json:"rating" binding:"required,min=1,max=5"`
}

// ReviewForm 影评提交：评分必填，正文可留空（只存评分）
type ReviewForm struct {
	Rating int    `form:"rating" json:"rating" binding:"required,min=1,max=5"`
	Text   string `form:"text" json:"text"`
}

// SnapshotForm 待看快照兜底数据：详情拉取失败时由前端提供当前列表里的字段
type SnapshotForm struct {
	Title        string  `form:"title" json:"title"`
	PosterPath   string  `form:"poster_path" json:"poster_path"`
	BackdropPath string  `form:"backdrop_path" json:"backdrop_path"`
	Overview     string  `form:"overview" json:"overview"`
	ReleaseDate  string  `form:"release_date" json:"release_date"`
	VoteAverage  float64 `form:"vote_average" json:"vote_average"`
	VoteCount    int     `form:"vote_count" json:"vote_count"`
}

// RateMovie 立即提交评分（列表卡片场景）
func (h *Handler) RateMovie(c *gin.Context) {
	movieID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "invalid movie id")
		return
	}

	var form RatingForm
	if err := c.ShouldBind(&form); err != nil {
		utils.BadRequest(c, "rating must be between 1 and 5")
		return
	}

	if !h.Repos.Library.SetRating(movieID, form.Rating) {
		utils.InternalServerError(c, "failed to save rating")
		return
	}

	suffix := ""
	if form.Rating != 1 {
		suffix = "s"
	}
	utils.SuccessWithMessage(c, "Rated "+strconv.Itoa(form.Rating)+" star"+suffix+"!", gin.H{
		"movieId": movieID,
		"rating":  form.Rating,
	})
}

// RemoveRating 删除评分
func (h *Handler) RemoveRating(c *gin.Context) {
	movieID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "invalid movie id")
		return
	}

	if !h.Repos.Library.RemoveRating(movieID) {
		utils.InternalServerError(c, "failed to remove rating")
		return
	}
	utils.SuccessWithMessage(c, "Rating removed", gin.H{"movieId": movieID})
}

// SubmitReview 提交影评：有正文存影评（同时覆盖评分），没有正文只存评分
func (h *Handler) SubmitReview(c *gin.Context) {
	movieID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "invalid movie id")
		return
	}

	var form ReviewForm
	if err := c.ShouldBind(&form); err != nil {
		utils.BadRequest(c, "Please select a rating")
		return
	}

	text := strings.TrimSpace(form.Text)
	if text != "" {
		if !h.Repos.Library.SetReview(movieID, form.Rating, text) {
			utils.InternalServerError(c, "failed to save review")
			return
		}
		utils.SuccessWithMessage(c, "Review saved successfully!", gin.H{"movieId": movieID})
		return
	}

	if !h.Repos.Library.SetRating(movieID, form.Rating) {
		utils.InternalServerError(c, "failed to save rating")
		return
	}
	utils.SuccessWithMessage(c, "Rating saved successfully!", gin.H{"movieId": movieID})
}

// ToggleWatchlist 待看清单开关：已在清单则移除，否则拉取详情存快照；
// 详情拉取失败时退回前端提交的列表快照。返回按钮片段原地替换。
func (h *Handler) ToggleWatchlist(c *gin.Context) {
	movieID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "invalid movie id")
		return
	}

	if h.Repos.Library.IsInWatchlist(movieID) {
		if !h.Repos.Library.RemoveFromWatchlist(movieID) {
			utils.InternalServerError(c, "failed to update watchlist")
			return
		}
		h.watchlistButton(c, movieID, false, "Removed from watchlist")
		return
	}

	movie, ok := h.resolveMovie(c, movieID)
	if !ok {
		utils.InternalServerError(c, "failed to load movie data")
		return
	}

	if !h.Repos.Library.AddToWatchlist(movie) {
		utils.InternalServerError(c, "failed to update watchlist")
		return
	}
	h.watchlistButton(c, movieID, true, "Added to watchlist")
}

// resolveMovie 优先取完整详情，失败时退回表单里的快照字段
func (h *Handler) resolveMovie(c *gin.Context, movieID int) (model.Movie, bool) {
	detail, err := h.TMDB.GetMovieDetails(c.Request.Context(), movieID)
	if err == nil {
		return detail.Movie, true
	}

	var snapshot SnapshotForm
	if err := c.ShouldBind(&snapshot); err != nil || snapshot.Title == "" {
		return model.Movie{}, false
	}
	return model.Movie{
		ID:           movieID,
		Title:        snapshot.Title,
		PosterPath:   snapshot.PosterPath,
		BackdropPath: snapshot.BackdropPath,
		Overview:     snapshot.Overview,
		ReleaseDate:  snapshot.ReleaseDate,
		VoteAverage:  snapshot.VoteAverage,
		VoteCount:    snapshot.VoteCount,
	}, true
}

func (h *Handler) watchlistButton(c *gin.Context, movieID int, inWatchlist bool, message string) {
	c.Header("X-Toast", message)
	c.HTML(http.StatusOK, "partials/watchlist_button.html", gin.H{
		"MovieID":     movieID,
		"InWatchlist": inWatchlist,
	})
}

// Suggest 搜索联想
func (h *Handler) Suggest(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		utils.Success(c, []gin.H{})
		return
	}

	results, err := h.Catalog.Suggest(c.Request.Context(), query)
	if err != nil {
		utils.InternalServerError(c, "suggest failed")
		return
	}

	suggestions := make([]gin.H, 0, len(results))
	for _, m := range results {
		suggestions = append(suggestions, gin.H{
			"id":    m.ID,
			"title": m.Title,
			"year":  service.Year(m.ReleaseDate),
		})
	}
	utils.Success(c, suggestions)
}

// ExportLibrary 导出三个集合加导出时间戳
func (h *Handler) ExportLibrary(c *gin.Context) {
	bundle := h.Repos.Library.ExportData()
	c.Header("Content-Disposition", `attachment; filename="cinerate-export.json"`)
	c.JSON(http.StatusOK, bundle)
}

// ImportLibrary 导入数据包，只覆盖出现的集合
func (h *Handler) ImportLibrary(c *gin.Context) {
	var bundle model.ExportBundle
	if err := c.ShouldBindJSON(&bundle); err != nil {
		utils.BadRequest(c, "invalid import payload")
		return
	}
	if bundle.Ratings == nil && bundle.Reviews == nil && bundle.Watchlist == nil {
		utils.BadRequest(c, "nothing to import")
		return
	}

	if !h.Repos.Library.ImportData(bundle) {
		utils.InternalServerError(c, "import failed")
		return
	}
	utils.SuccessWithMessage(c, "Data imported successfully!", nil)
}

// ClearLibrary 清空全部本地数据
func (h *Handler) ClearLibrary(c *gin.Context) {
	if !h.Repos.Library.ClearAll() {
		utils.InternalServerError(c, "failed to clear data")
		return
	}
	utils.SuccessWithMessage(c, "All data cleared", nil)
}

// ClearCache 清空 API 响应缓存
func (h *Handler) ClearCache(c *gin.Context) {
	h.TMDB.ClearCache()
	utils.SuccessWithMessage(c, "Cache cleared", nil)
}
