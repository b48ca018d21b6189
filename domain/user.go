package domain

import (
	"time"
)

type User struct {
	UserID    uint64    `gorm:"column:user_id;primaryKey;autoIncrement" json:"user_id"`
	Email     string    `gorm:"column:email;uniqueIndex;not null" json:"email"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	Country   *string   `gorm:"column:country" json:"country"`
	Age       *int      `gorm:"column:age" json:"age"`
	Gender    *string   `gorm:"column:gender" json:"gender"`

	Orders  []Order  `gorm:"foreignKey:UserID;references:UserID" json:"-"`
	Reviews []Review `gorm:"foreignKey:UserID;references:UserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}
