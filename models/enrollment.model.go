package models

import (
	"gorm.io/gorm"
)

// Enrollment statuses. COMPLETED is reserved, nothing sets it yet.
const (
	EnrollmentNotStarted = "NOT_STARTED"
	EnrollmentInProgress = "IN_PROGRESS"
	EnrollmentCompleted  = "COMPLETED"
)

// Enrollment links a user to a course with a progress status. The composite
// unique index is what makes enroll idempotent: a second insert for the same
// (user, course) pair conflicts and is dropped by the storage layer, so two
// concurrent enrolls can never produce two rows.
type Enrollment struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"index;not null;uniqueIndex:idx_user_course"`
	CourseID  uint   `json:"course_id" gorm:"index;not null;uniqueIndex:idx_user_course"`
	Status    string `json:"status" gorm:"default:'NOT_STARTED'"`
	IsDeleted bool   `gorm:"default:false"`
	User      User   `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Course    Course `json:"course" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}
