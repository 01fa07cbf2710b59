package domain

import (
	"time"
)

type SysConfig struct {
	ID        int64     `json:"id,string"   form:"id"`
	Sort      int       `json:"sort"  form:"sort"`
	Type      string    `gorm:"index" json:"type" form:"type"`
	Name      string    `gorm:"index" json:"name" form:"name"`
	Value     string    `json:"value" form:"value"`
	Remark    string    `json:"remark" form:"remark"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (SysConfig) TableName() string {
	return "sys_config"
}

// SysContactMsg is a stored contact-page message; delivery to the shop
// mailbox happens through the notification mailer.
type SysContactMsg struct {
	ID        int64     `json:"id,string" form:"id"`
	Name      string    `json:"name" form:"name"`
	Email     string    `json:"email" form:"email"`
	Message   string    `gorm:"size:2048" json:"message" form:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName Specify table name
func (SysContactMsg) TableName() string {
	return "sys_contact_msg"
}
