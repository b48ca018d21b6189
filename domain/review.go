package domain

import "time"

type Review struct {
	ReviewID   uint64    `gorm:"column:review_id;primaryKey;autoIncrement" json:"review_id"`
	ProductID  uint64    `gorm:"column:product_id;index" json:"product_id"`
	UserID     uint64    `gorm:"column:user_id;index" json:"user_id"`
	Rating     int       `gorm:"column:rating;not null;check:rating >= 1 AND rating <= 5" json:"rating" validate:"min=1,max=5"`
	ReviewText string    `gorm:"column:review_text;type:text" json:"review_text"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Review) TableName() string {
	return "reviews"
}
