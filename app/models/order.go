package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const OrderStatusPending = "pending"

// Order is a customer order. Total is taken from the client as-is.
type Order struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Items     Items     `gorm:"type:text" json:"items"`
	Total     float64   `gorm:"not null" json:"total"`
	Status    string    `gorm:"size:50;default:pending" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Items is the line-item payload exactly as the client sent it. It is
// normally an array of line-item objects, but any JSON value is kept and
// listed back unchanged, numbers included. A missing or null payload is nil.
type Items json.RawMessage

func (it Items) MarshalJSON() ([]byte, error) {
	if len(it) == 0 {
		return []byte("null"), nil
	}
	return []byte(it), nil
}

func (it *Items) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*it = nil
		return nil
	}
	if !json.Valid(data) {
		return errors.New("models: items are not valid JSON")
	}
	*it = append(Items(nil), data...)
	return nil
}

// Value implements driver.Valuer. A nil payload is stored as JSON null.
func (it Items) Value() (driver.Value, error) {
	if len(it) == 0 {
		return "null", nil
	}
	return string(it), nil
}

// Scan implements sql.Scanner and is the exact inverse of Value.
func (it *Items) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*it = nil
		return nil
	case string:
		return it.UnmarshalJSON([]byte(v))
	case []byte:
		return it.UnmarshalJSON(v)
	default:
		return fmt.Errorf("models: cannot scan %T into Items", value)
	}
}

func (Items) GormDataType() string { return "text" }

// DailySale is the summed order total for one calendar day.
type DailySale struct {
	SaleDate string  `json:"sale_date"`
	Total    float64 `json:"total"`
}
