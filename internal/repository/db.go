package repository

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/user/cinerate/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB 初始化本地数据库连接
func InitDB(dataPath string) (*gorm.DB, error) {
	// 确保数据目录存在
	dir := filepath.Dir(dataPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("无法创建数据目录: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dataPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("无法打开数据库: %w", err)
	}

	// 键值存储只有一张表
	if err := db.AutoMigrate(&model.StorageEntry{}); err != nil {
		return nil, fmt.Errorf("数据表迁移失败: %w", err)
	}

	return db, nil
}

// Repositories 仓库集合
type Repositories struct {
	DB      *gorm.DB
	Storage *StorageRepository
	Library *LibraryRepository
}

// NewRepositories 创建仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	storage := NewStorageRepository(db)
	return &Repositories{
		DB:      db,
		Storage: storage,
		Library: NewLibraryRepository(storage),
	}
}
