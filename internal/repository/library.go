package repository

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/user/cinerate/internal/model"
)

// 三个集合的固定存储键
const (
	KeyRatings   = "cineRate_ratings"
	KeyReviews   = "cineRate_reviews"
	KeyWatchlist = "cineRate_watchlist"
)

// LibraryRepository 个人影库：评分、影评、待看清单及其派生查询
type LibraryRepository struct {
	storage *StorageRepository
}

func NewLibraryRepository(storage *StorageRepository) *LibraryRepository {
	return &LibraryRepository{storage: storage}
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

// ==================== 评分 ====================

func (r *LibraryRepository) getRatings() model.RatingMap {
	ratings := model.RatingMap{}
	r.storage.Get(KeyRatings, &ratings)
	return ratings
}

// SetRating 写入评分，同一电影覆盖旧值
func (r *LibraryRepository) SetRating(movieID, rating int) bool {
	ratings := r.getRatings()
	ratings[movieID] = model.Rating{
		Rating:    rating,
		Timestamp: nowMillis(),
	}
	return r.storage.Set(KeyRatings, ratings)
}

// GetRating 读取评分，无评分返回 0
func (r *LibraryRepository) GetRating(movieID int) int {
	ratings := r.getRatings()
	if rating, ok := ratings[movieID]; ok {
		return rating.Rating
	}
	return 0
}

// RemoveRating 删除评分
func (r *LibraryRepository) RemoveRating(movieID int) bool {
	ratings := r.getRatings()
	delete(ratings, movieID)
	return r.storage.Set(KeyRatings, ratings)
}

// ==================== 影评 ====================

func (r *LibraryRepository) getReviews() model.ReviewMap {
	reviews := model.ReviewMap{}
	r.storage.Get(KeyReviews, &reviews)
	return reviews
}

// SetReview 追加一条影评，并同步覆盖该电影的评分
func (r *LibraryRepository) SetReview(movieID, rating int, text string) bool {
	reviews := r.getReviews()
	now := time.Now()
	reviews[movieID] = append(reviews[movieID], model.Review{
		ID:        uuid.NewString(),
		Rating:    rating,
		Text:      text,
		Timestamp: now.UnixMilli(),
		Date:      now.Format("1/2/2006"),
	})

	// 写影评的同时保存评分
	r.SetRating(movieID, rating)

	return r.storage.Set(KeyReviews, reviews)
}

// GetMovieReviews 返回某部电影的全部影评，按插入顺序（最旧在前）
func (r *LibraryRepository) GetMovieReviews(movieID int) []model.Review {
	reviews := r.getReviews()
	return reviews[movieID]
}

// GetAllReviewedMovies 聚合列表：有评分或有影评的电影各出现一次，
// 按最近活动时间倒序
func (r *LibraryRepository) GetAllReviewedMovies() []model.RatedMovie {
	reviews := r.getReviews()
	ratings := r.getRatings()
	var result []model.RatedMovie

	// 有影评的电影
	for movieID, list := range reviews {
		if len(list) == 0 {
			continue
		}
		last := list[len(list)-1]
		entry := model.RatedMovie{
			MovieID:    movieID,
			HasReview:  true,
			LastReview: &last,
		}
		if rating, ok := ratings[movieID]; ok {
			entry.Rating = rating.Rating
		}
		result = append(result, entry)
	}

	// 只有评分没有影评的电影
	for movieID, rating := range ratings {
		if len(reviews[movieID]) > 0 {
			continue
		}
		result = append(result, model.RatedMovie{
			MovieID:   movieID,
			HasReview: false,
			Rating:    rating.Rating,
			Timestamp: rating.Timestamp,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ActivityTime() > result[j].ActivityTime()
	})
	return result
}

// ==================== 待看清单 ====================

func (r *LibraryRepository) getWatchlist() model.WatchlistMap {
	watchlist := model.WatchlistMap{}
	r.storage.Get(KeyWatchlist, &watchlist)
	return watchlist
}

// AddToWatchlist 保存电影快照，已存在则覆盖
func (r *LibraryRepository) AddToWatchlist(movie model.Movie) bool {
	watchlist := r.getWatchlist()
	watchlist[movie.ID] = model.WatchlistEntry{
		Movie:   movie,
		AddedAt: nowMillis(),
	}
	return r.storage.Set(KeyWatchlist, watchlist)
}

// RemoveFromWatchlist 移出待看清单
func (r *LibraryRepository) RemoveFromWatchlist(movieID int) bool {
	watchlist := r.getWatchlist()
	delete(watchlist, movieID)
	return r.storage.Set(KeyWatchlist, watchlist)
}

// IsInWatchlist 是否在待看清单中
func (r *LibraryRepository) IsInWatchlist(movieID int) bool {
	watchlist := r.getWatchlist()
	_, ok := watchlist[movieID]
	return ok
}

// GetWatchlistMovies 待看清单全部条目，按加入时间倒序
func (r *LibraryRepository) GetWatchlistMovies() []model.WatchlistEntry {
	watchlist := r.getWatchlist()
	result := make([]model.WatchlistEntry, 0, len(watchlist))
	for _, entry := range watchlist {
		result = append(result, entry)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].AddedAt > result[j].AddedAt
	})
	return result
}

// ==================== 统计 ====================

// GetStats 统计个人数据：评分数、影评数、待看数、平均分（保留一位小数）
func (r *LibraryRepository) GetStats() model.Stats {
	ratings := r.getRatings()
	reviews := r.getReviews()
	watchlist := r.getWatchlist()

	reviewedCount := 0
	for _, list := range reviews {
		if len(list) > 0 {
			reviewedCount++
		}
	}

	average := 0.0
	if len(ratings) > 0 {
		sum := 0
		for _, rating := range ratings {
			sum += rating.Rating
		}
		average = math.Round(float64(sum)/float64(len(ratings))*10) / 10
	}

	return model.Stats{
		RatedMoviesCount:    len(ratings),
		ReviewedMoviesCount: reviewedCount,
		WatchlistCount:      len(watchlist),
		AverageRating:       average,
	}
}

// ==================== 批量操作 ====================

// ClearAll 清空三个集合
func (r *LibraryRepository) ClearAll() bool {
	ok := r.storage.Delete(KeyRatings)
	ok = r.storage.Delete(KeyReviews) && ok
	ok = r.storage.Delete(KeyWatchlist) && ok
	return ok
}

// ExportData 导出全部数据加导出时间戳
func (r *LibraryRepository) ExportData() model.ExportBundle {
	return model.ExportBundle{
		Ratings:    r.getRatings(),
		Reviews:    r.getReviews(),
		Watchlist:  r.getWatchlist(),
		ExportDate: time.Now().UTC().Format(time.RFC3339),
	}
}

// ImportData 导入数据包：只覆盖数据包中出现的集合，缺失的保持不变
func (r *LibraryRepository) ImportData(data model.ExportBundle) bool {
	ok := true
	if data.Ratings != nil {
		ok = r.storage.Set(KeyRatings, data.Ratings) && ok
	}
	if data.Reviews != nil {
		ok = r.storage.Set(KeyReviews, data.Reviews) && ok
	}
	if data.Watchlist != nil {
		ok = r.storage.Set(KeyWatchlist, data.Watchlist) && ok
	}
	return ok
}
