package router

import (
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-gonic/gin"
	"github.com/user/cinerate/internal/handler"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ==================== 浏览页面 ====================
	r.GET("/", h.Home)
	r.GET("/search", h.Search)
	r.GET("/discover", h.Discover)
	r.GET("/watchlist", h.Watchlist)
	r.GET("/rated", h.Rated)
	r.GET("/movie/:id", h.Movie)
	r.GET("/person/:id", h.Person)
	r.GET("/stats", h.Stats)

	// ==================== 交互 API ====================
	api := r.Group("/api")
	{
		api.POST("/ratings/:id", h.RateMovie)
		api.DELETE("/ratings/:id", h.RemoveRating)
		api.POST("/reviews/:id", h.SubmitReview)
		api.POST("/watchlist/:id", h.ToggleWatchlist)
		api.GET("/movies/suggest", h.Suggest)

		// 本地数据管理
		api.GET("/library/export", h.ExportLibrary)
		api.POST("/library/import", h.ImportLibrary)
		api.POST("/library/clear", h.ClearLibrary)
		api.POST("/cache/clear", h.ClearCache)
	}

	// 未匹配路由
	r.NoRoute(h.NotFound)
}

// LoadTemplates 使用 multitemplate 加载模板，解决模板继承问题
func LoadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	// 获取布局和局部模板
	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	partials, err := filepath.Glob(templatesDir + "/partials/*.html")
	if err != nil {
		panic(err)
	}

	// 组装模板文件列表
	assemble := func(view string) []string {
		files := make([]string, 0)
		files = append(files, layouts...)
		files = append(files, partials...)
		files = append(files, view)
		return files
	}

	// 模板函数
	funcMap := template.FuncMap{
		"dict": func(values ...interface{}) (map[string]interface{}, error) {
			if len(values)%2 != 0 {
				return nil, fmt.Errorf("invalid dict call")
			}
			dict := make(map[string]interface{}, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict keys must be strings")
				}
				dict[key] = values[i+1]
			}
			return dict, nil
		},
		"default": func(defaultValue, value interface{}) interface{} {
			switch v := value.(type) {
			case string:
				if v == "" {
					return defaultValue
				}
			case int:
				if v == 0 {
					return defaultValue
				}
			case nil:
				return defaultValue
			}
			return value
		},
		"add": func(a, b int) int {
			return a + b
		},
		// 星级控件用：生成 1..n 序列
		"seq": func(n int) []int {
			result := make([]int, n)
			for i := range result {
				result[i] = i + 1
			}
			return result
		},
	}

	// 注册所有页面模板
	pages := []string{
		"home", "search", "discover",
		"watchlist", "rated",
		"movie", "person", "stats", "404",
	}

	for _, page := range pages {
		viewPath := templatesDir + "/pages/" + page + ".html"
		r.AddFromFilesFuncs(page+".html", funcMap, assemble(viewPath)...)
	}

	// 可单独渲染的片段（按钮原地替换）
	r.AddFromFilesFuncs("partials/watchlist_button.html", funcMap,
		templatesDir+"/partials/watchlist_button.html")

	return r
}
