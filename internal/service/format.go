package service

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// 纯格式化辅助函数，不发网络请求

const (
	imageBaseURL        = "https://image.tmdb.org/t/p/"
	posterPlaceholder   = "https://via.placeholder.com/500x750/1a1a2e/ffffff?text=No+Image"
	backdropPlaceholder = "https://via.placeholder.com/1280x720/1a1a2e/ffffff?text=No+Backdrop"
	youtubeThumbBaseURL = "https://img.youtube.com/vi/"
	youtubeWatchBaseURL = "https://www.youtube.com/watch?v="
)

// 美式英语的本地化输出（千分位分组等）
var enPrinter = message.NewPrinter(language.AmericanEnglish)

// ImageURL 拼接海报图片地址，路径缺失时返回固定占位图
func ImageURL(path, size string) string {
	if path == "" {
		return posterPlaceholder
	}
	if size == "" {
		size = "w500"
	}
	return imageBaseURL + size + path
}

// BackdropURL 拼接背景大图地址，路径缺失时返回固定占位图
func BackdropURL(path, size string) string {
	if path == "" {
		return backdropPlaceholder
	}
	if size == "" {
		size = "w1280"
	}
	return imageBaseURL + size + path
}

// YouTubeThumbnail 视频封面图地址
func YouTubeThumbnail(videoKey string) string {
	return youtubeThumbBaseURL + videoKey + "/maxresdefault.jpg"
}

// YouTubeURL 视频播放地址
func YouTubeURL(videoKey string) string {
	return youtubeWatchBaseURL + videoKey
}

// FormatRuntime 片长格式化为 "2h 49m"，缺失返回 N/A
func FormatRuntime(minutes int) string {
	if minutes <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// FormatDate 上映日期格式化为长日期，缺失或无法解析返回 N/A
func FormatDate(dateString string) string {
	if dateString == "" {
		return "N/A"
	}
	t, err := time.Parse("2006-01-02", dateString)
	if err != nil {
		return "N/A"
	}
	return t.Format("January 2, 2006")
}

// FormatCurrency 金额格式化为本地化美元，缺失或为零返回 N/A
func FormatCurrency(amount int64) string {
	if amount == 0 {
		return "N/A"
	}
	return enPrinter.Sprintf("$%.2f", float64(amount))
}

// Year 从日期串中取年份，缺失返回 N/A
func Year(dateString string) string {
	if len(dateString) < 4 {
		return "N/A"
	}
	return dateString[:4]
}
