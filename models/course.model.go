package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Course struct {
	gorm.Model
	Name         string                      `json:"name" gorm:"not null"`
	TimeRequired int64                       `json:"time_required" gorm:"not null"` // Estimated hours to complete
	ImageURL     string                      `json:"image_url"`
	VideoURLs    datatypes.JSONSlice[string] `json:"video_urls"` // Ordered, matches upload submission order
	IsDeleted    bool                        `gorm:"default:false"`
}

// HasContent reports whether the course can be started (at least one video)
func (c *Course) HasContent() bool {
	return len(c.VideoURLs) > 0
}
