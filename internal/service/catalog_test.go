package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/user/cinerate/internal/model"
	"github.com/user/cinerate/internal/repository"
)

func newTestLibrary(t *testing.T) *repository.LibraryRepository {
	t.Helper()
	db, err := repository.InitDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	return repository.NewRepositories(db).Library
}

func TestBuildCardDecoratesLocalState(t *testing.T) {
	library := newTestLibrary(t)
	library.SetRating(603, 4)
	library.SetReview(603, 4, "still holds up")
	library.AddToWatchlist(model.Movie{ID: 603, Title: "The Matrix"})

	catalog := NewCatalogService(NewTMDBService(testConfig("http://unused", time.Minute)), library)

	card := catalog.BuildCard(model.Movie{
		ID:          603,
		Title:       "The Matrix",
		PosterPath:  "/matrix.jpg",
		ReleaseDate: "1999-03-31",
		VoteAverage: 8.169,
	})

	if card.UserRating != 4 {
		t.Fatalf("应叠加本地评分 4，实际 %d", card.UserRating)
	}
	if !card.InWatchlist || !card.HasReview {
		t.Fatalf("待看/影评状态不正确: %+v", card)
	}
	if card.Score != "8.2" {
		t.Fatalf("评分应保留一位小数: %s", card.Score)
	}
	if card.Year != "1999" {
		t.Fatalf("年份不正确: %s", card.Year)
	}
	if card.Overview != "No overview available." {
		t.Fatalf("空简介应有占位文案: %s", card.Overview)
	}
	if card.Movie.PosterPath != "/matrix.jpg" || card.Movie.ReleaseDate != "1999-03-31" {
		t.Fatalf("卡片应携带原始条目作快照兜底: %+v", card.Movie)
	}
}

func TestExcerptTruncation(t *testing.T) {
	long := strings.Repeat("a", 200)
	got := excerpt(long)
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("超长简介应截断加省略号: %s", got)
	}
	if len([]rune(got)) > overviewExcerptLen+3 {
		t.Fatalf("截断长度不正确: %d", len([]rune(got)))
	}

	short := "short overview"
	if excerpt(short) != short {
		t.Fatal("短简介不应截断")
	}
}

func TestLoadGenresAndOptions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"genres":[{"id":18,"name":"Drama"},{"id":28,"name":"Action"}]}`))
	}))
	defer srv.Close()

	catalog := NewCatalogService(NewTMDBService(testConfig(srv.URL, time.Minute)), newTestLibrary(t))
	if err := catalog.LoadGenres(context.Background()); err != nil {
		t.Fatalf("LoadGenres: %v", err)
	}

	if got := catalog.GenreName(18); got != "Drama" {
		t.Fatalf("类型名不正确: %s", got)
	}

	options := catalog.GenreOptions()
	if len(options) != 2 || options[0].Name != "Action" || options[1].Name != "Drama" {
		t.Fatalf("选项应按名称排序: %+v", options)
	}
}

func TestSuggestUsesBoundedCache(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(`{"page":1,"results":[
			{"id":1,"title":"A"},{"id":2,"title":"B"},{"id":3,"title":"C"},
			{"id":4,"title":"D"},{"id":5,"title":"E"},{"id":6,"title":"F"}
		]}`))
	}))
	defer srv.Close()

	catalog := NewCatalogService(NewTMDBService(testConfig(srv.URL, time.Nanosecond)), newTestLibrary(t))
	ctx := context.Background()

	results, err := catalog.Suggest(ctx, "Dune")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(results) != 5 {
		t.Fatalf("建议应只取前 5 条，实际 %d", len(results))
	}

	// 大小写与首尾空白归一后命中建议缓存
	if _, err := catalog.Suggest(ctx, "  dune "); err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Fatalf("归一化后的重复查询应命中缓存，实际 %d 次请求", got)
	}

	if results, _ := catalog.Suggest(ctx, ""); results != nil {
		t.Fatal("空查询应返回空")
	}
}

func TestLoadRatedMoviesDropsFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/movie/2") {
			http.Error(w, `{"status_message":"not found"}`, http.StatusNotFound)
			return
		}
		fmt.Fprintf(w, `{"id":1,"title":"Survivor","runtime":100}`)
	}))
	defer srv.Close()

	library := newTestLibrary(t)
	library.SetRating(1, 5)
	library.SetRating(2, 3)

	catalog := NewCatalogService(NewTMDBService(testConfig(srv.URL, time.Minute)), library)
	movies := catalog.LoadRatedMovies(context.Background())

	if len(movies) != 1 {
		t.Fatalf("拉取失败的条目应被丢弃，实际 %d 条", len(movies))
	}
	if movies[0].Title != "Survivor" {
		t.Fatalf("条目不正确: %+v", movies[0])
	}
}
