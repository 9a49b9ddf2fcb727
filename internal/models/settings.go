package models

import "time"

// SettingsSingletonID is the primary key of the only admin_settings row.
const SettingsSingletonID = 1

type AdminSettings struct {
	ID                 uint      `json:"-" gorm:"primaryKey;autoIncrement:false"`
	UPIID              string    `json:"upi_id" gorm:"column:upi_id"`
	MerchantName       string    `json:"merchant_name"`
	PaymentEnabled     bool      `json:"payment_enabled"`
	EmailNotifications bool      `json:"email_notifications"`
	SMSNotifications   bool      `json:"sms_notifications" gorm:"column:sms_notifications"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (AdminSettings) TableName() string { return "admin_settings" }

// DefaultAdminSettings is returned while no settings row exists.
func DefaultAdminSettings() AdminSettings {
	return AdminSettings{
		ID:                 SettingsSingletonID,
		MerchantName:       "Cyber Cafe",
		PaymentEnabled:     true,
		EmailNotifications: true,
		SMSNotifications:   true,
	}
}
