package repository

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/user/cinerate/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StorageRepository 通用键值存储：按字符串键读写任意可 JSON 序列化的值。
// 读写失败只记录日志并返回 false，不向调用方抛出。
type StorageRepository struct {
	db *gorm.DB
}

func NewStorageRepository(db *gorm.DB) *StorageRepository {
	return &StorageRepository{db: db}
}

// Get 读取键对应的值并反序列化到 target，键不存在或出错返回 false
func (r *StorageRepository) Get(key string, target interface{}) bool {
	var entry model.StorageEntry
	err := r.db.Where("key = ?", key).First(&entry).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[Storage] 读取失败 (key=%s): %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal([]byte(entry.Value), target); err != nil {
		log.Printf("[Storage] 反序列化失败 (key=%s): %v", key, err)
		return false
	}
	return true
}

// Set 序列化 value 并写入键，已存在则覆盖
func (r *StorageRepository) Set(key string, value interface{}) bool {
	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("[Storage] 序列化失败 (key=%s): %v", key, err)
		return false
	}
	entry := model.StorageEntry{Key: key, Value: string(data)}
	err = r.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&entry).Error
	if err != nil {
		log.Printf("[Storage] 写入失败 (key=%s): %v", key, err)
		return false
	}
	return true
}

// Delete 删除键，键不存在视为成功
func (r *StorageRepository) Delete(key string) bool {
	err := r.db.Where("key = ?", key).Delete(&model.StorageEntry{}).Error
	if err != nil {
		log.Printf("[Storage] 删除失败 (key=%s): %v", key, err)
		return false
	}
	return true
}
