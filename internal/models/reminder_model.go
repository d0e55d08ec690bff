package models

import "time"

// Reminder is a private, dated note that gets emailed to its owner when due.
// DeliveryError is set when the reminder was retired without being emailed.
type Reminder struct {
	ID            string    `json:"id" firestore:"-"`
	UserID        string    `json:"userId" firestore:"userId"`
	Title         string    `json:"title" firestore:"title"`
	Description   string    `json:"description,omitempty" firestore:"description,omitempty"`
	Date          time.Time `json:"date" firestore:"date"`
	Location      string    `json:"location,omitempty" firestore:"location,omitempty"`
	ReminderSent  bool      `json:"reminderSent" firestore:"reminderSent"`
	DeliveryError string    `json:"deliveryError,omitempty" firestore:"deliveryError,omitempty"`
	CreatedAt     time.Time `json:"createdAt" firestore:"createdAt"`
}
