package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/user/cinerate/internal/config"
)

func testConfig(baseURL string, ttl time.Duration) *config.Config {
	return &config.Config{
		TMDBAPIKey:   "test-key",
		TMDBBaseURL:  baseURL,
		CacheTTL:     ttl,
		CacheCleanup: time.Minute,
	}
}

func TestMakeRequestCachesWithinTTL(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(`{"page":1,"results":[{"id":1,"title":"Cached"}]}`))
	}))
	defer srv.Close()

	s := NewTMDBService(testConfig(srv.URL, 5*time.Minute))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		list, err := s.GetTrendingMovies(ctx, "week")
		if err != nil {
			t.Fatalf("请求 %d 失败: %v", i, err)
		}
		if len(list.Results) != 1 || list.Results[0].Title != "Cached" {
			t.Fatalf("响应解析不正确: %+v", list)
		}
	}

	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Fatalf("有效期内重复请求应只发一次网络请求，实际 %d 次", got)
	}
}

func TestMakeRequestRefetchesAfterExpiry(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(`{"page":1,"results":[]}`))
	}))
	defer srv.Close()

	s := NewTMDBService(testConfig(srv.URL, 30*time.Millisecond))
	ctx := context.Background()

	if _, err := s.GetTrendingMovies(ctx, "day"); err != nil {
		t.Fatalf("首次请求失败: %v", err)
	}
	time.Sleep(60 * time.Millisecond)
	if _, err := s.GetTrendingMovies(ctx, "day"); err != nil {
		t.Fatalf("过期后请求失败: %v", err)
	}

	if got := atomic.LoadInt32(&hits); got != 2 {
		t.Fatalf("缓存过期后应重新发起请求，实际 %d 次", got)
	}
}

func TestMakeRequestDropsEmptyParams(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"page":1,"results":[]}`))
	}))
	defer srv.Close()

	s := NewTMDBService(testConfig(srv.URL, time.Minute))
	if _, err := s.SearchMovies(context.Background(), "dune", 1); err != nil {
		t.Fatalf("搜索失败: %v", err)
	}

	if !strings.Contains(gotQuery, "api_key=test-key") {
		t.Fatalf("应附带 api_key: %s", gotQuery)
	}
	if !strings.Contains(gotQuery, "query=dune") || !strings.Contains(gotQuery, "page=1") {
		t.Fatalf("应附带搜索参数: %s", gotQuery)
	}
	// false 是可选参数的空值语义，不应出现在请求串中
	if strings.Contains(gotQuery, "include_adult") {
		t.Fatalf("空值参数应被丢弃: %s", gotQuery)
	}
}

func TestMakeRequestErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status_message":"Invalid API key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	s := NewTMDBService(testConfig(srv.URL, time.Minute))
	if _, err := s.GetMovieDetails(context.Background(), 550); err == nil {
		t.Fatal("非 2xx 状态应返回错误")
	}
	// 失败不应写入缓存
	if s.cache.ItemCount() != 0 {
		t.Fatalf("失败响应不应缓存，缓存条目 %d", s.cache.ItemCount())
	}
}

func TestDiscoverMoviesFilterOverrides(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"page":1,"results":[]}`))
	}))
	defer srv.Close()

	s := NewTMDBService(testConfig(srv.URL, time.Minute))
	_, err := s.DiscoverMovies(context.Background(), map[string]string{
		"with_genres": "28",
		"sort_by":     "vote_average.desc",
	})
	if err != nil {
		t.Fatalf("发现请求失败: %v", err)
	}

	if !strings.Contains(gotQuery, "with_genres=28") {
		t.Fatalf("过滤条件未生效: %s", gotQuery)
	}
	if !strings.Contains(gotQuery, "sort_by=vote_average.desc") {
		t.Fatalf("调用方排序应覆盖默认值: %s", gotQuery)
	}
}

func TestGetMovieDetailsAppendsResponses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("append_to_response"); got != "credits,videos,reviews,similar" {
			t.Errorf("append_to_response 不正确: %q", got)
		}
		w.Write([]byte(`{
			"id": 550, "title": "Fight Club", "runtime": 139,
			"videos": {"results": [
				{"key": "teaser1", "site": "YouTube", "type": "Teaser"},
				{"key": "trailer1", "site": "YouTube", "type": "Trailer"}
			]}
		}`))
	}))
	defer srv.Close()

	s := NewTMDBService(testConfig(srv.URL, time.Minute))
	detail, err := s.GetMovieDetails(context.Background(), 550)
	if err != nil {
		t.Fatalf("详情请求失败: %v", err)
	}
	if detail.Title != "Fight Club" || detail.Runtime != 139 {
		t.Fatalf("详情解析不正确: %+v", detail)
	}

	trailer := detail.Trailer()
	if trailer == nil || trailer.Key != "trailer1" {
		t.Fatalf("应取第一个 YouTube Trailer: %+v", trailer)
	}
}

func TestClearCacheForcesRefetch(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(`{"genres":[{"id":28,"name":"Action"}]}`))
	}))
	defer srv.Close()

	s := NewTMDBService(testConfig(srv.URL, time.Hour))
	ctx := context.Background()

	if _, err := s.GetGenres(ctx); err != nil {
		t.Fatalf("首次请求失败: %v", err)
	}
	s.ClearCache()
	if _, err := s.GetGenres(ctx); err != nil {
		t.Fatalf("清缓存后请求失败: %v", err)
	}

	if got := atomic.LoadInt32(&hits); got != 2 {
		t.Fatalf("清缓存后应重新发起请求，实际 %d 次", got)
	}
}
