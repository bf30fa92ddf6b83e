package repository

import (
	"path/filepath"
	"testing"
)

func newTestStorage(t *testing.T) *StorageRepository {
	t.Helper()
	db, err := InitDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	return NewStorageRepository(db)
}

func TestStorageGetMissingKey(t *testing.T) {
	storage := newTestStorage(t)

	var target map[string]int
	if storage.Get("missing", &target) {
		t.Fatal("不存在的键应返回 false")
	}
}

func TestStorageSetGetDelete(t *testing.T) {
	storage := newTestStorage(t)

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	if !storage.Set("k", payload{Name: "a", Count: 1}) {
		t.Fatal("Set 失败")
	}

	var got payload
	if !storage.Get("k", &got) {
		t.Fatal("Get 失败")
	}
	if got.Name != "a" || got.Count != 1 {
		t.Fatalf("读回的值不一致: %+v", got)
	}

	// 同键覆盖
	if !storage.Set("k", payload{Name: "b", Count: 2}) {
		t.Fatal("覆盖写入失败")
	}
	if !storage.Get("k", &got) || got.Name != "b" {
		t.Fatalf("覆盖后读回的值不一致: %+v", got)
	}

	if !storage.Delete("k") {
		t.Fatal("Delete 失败")
	}
	if storage.Get("k", &got) {
		t.Fatal("删除后不应再读到值")
	}
}
