package models

import "time"

// ExpiringProductNotice сообщение об истекающем продукте, публикуемое
// планировщиком в очередь и превращаемое отправителем в письмо.
type ExpiringProductNotice struct {
	Email          string    `json:"email"`
	ProductID      string    `json:"productId"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	ExpirationDate time.Time `json:"expirationDate"`
	DaysLeft       int       `json:"daysLeft"`
}
