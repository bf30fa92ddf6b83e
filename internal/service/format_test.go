package service

import "testing"

func TestImageURL(t *testing.T) {
	if got := ImageURL("/abc.jpg", ""); got != "https://image.tmdb.org/t/p/w500/abc.jpg" {
		t.Fatalf("默认尺寸应为 w500: %s", got)
	}
	if got := ImageURL("/abc.jpg", "w185"); got != "https://image.tmdb.org/t/p/w185/abc.jpg" {
		t.Fatalf("指定尺寸未生效: %s", got)
	}
	if got := ImageURL("", ""); got != "https://via.placeholder.com/500x750/1a1a2e/ffffff?text=No+Image" {
		t.Fatalf("缺失路径应返回占位图: %s", got)
	}
}

func TestBackdropURL(t *testing.T) {
	if got := BackdropURL("/bg.jpg", ""); got != "https://image.tmdb.org/t/p/w1280/bg.jpg" {
		t.Fatalf("默认尺寸应为 w1280: %s", got)
	}
	if got := BackdropURL("", ""); got != "https://via.placeholder.com/1280x720/1a1a2e/ffffff?text=No+Backdrop" {
		t.Fatalf("缺失路径应返回占位图: %s", got)
	}
}

func TestFormatRuntime(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{169, "2h 49m"},
		{60, "1h 0m"},
		{45, "0h 45m"},
		{0, "N/A"},
		{-5, "N/A"},
	}
	for _, c := range cases {
		if got := FormatRuntime(c.minutes); got != c.want {
			t.Errorf("FormatRuntime(%d) = %q，期望 %q", c.minutes, got, c.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate("1999-10-15"); got != "October 15, 1999" {
		t.Fatalf("长日期格式不正确: %s", got)
	}
	if got := FormatDate(""); got != "N/A" {
		t.Fatalf("空日期应返回 N/A: %s", got)
	}
	if got := FormatDate("not-a-date"); got != "N/A" {
		t.Fatalf("非法日期应返回 N/A: %s", got)
	}
}

func TestFormatCurrency(t *testing.T) {
	if got := FormatCurrency(63000000); got != "$63,000,000.00" {
		t.Fatalf("千分位格式不正确: %s", got)
	}
	if got := FormatCurrency(0); got != "N/A" {
		t.Fatalf("零金额应返回 N/A: %s", got)
	}
}

func TestYear(t *testing.T) {
	if got := Year("1999-10-15"); got != "1999" {
		t.Fatalf("年份截取不正确: %s", got)
	}
	if got := Year(""); got != "N/A" {
		t.Fatalf("空日期应返回 N/A: %s", got)
	}
	if got := Year("99"); got != "N/A" {
		t.Fatalf("过短日期应返回 N/A: %s", got)
	}
}

func TestYouTubeHelpers(t *testing.T) {
	if got := YouTubeURL("abc123"); got != "https://www.youtube.com/watch?v=abc123" {
		t.Fatalf("播放地址不正确: %s", got)
	}
	if got := YouTubeThumbnail("abc123"); got != "https://img.youtube.com/vi/abc123/maxresdefault.jpg" {
		t.Fatalf("封面地址不正确: %s", got)
	}
}
