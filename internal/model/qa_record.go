package model

import "time"

// QARecord is the archived copy of a history entry, persisted to MySQL
// by the archive worker when archiving is enabled.
type QARecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:64;not null;index" json:"username"`
	Question  string    `gorm:"type:text;not null" json:"question"`
	Answer    string    `gorm:"type:text;not null" json:"answer"`
	Source    string    `gorm:"size:2048" json:"source,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
