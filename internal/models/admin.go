package models

import "time"

// Admin represents an operator account stored in the admins table.
type Admin struct {
	ID               string    `db:"id" json:"id"`
	Email            string    `db:"email" json:"email"`
	PasswordHash     string    `db:"password_hash" json:"-"`
	CurrentUPIPerson string    `db:"current_upi_person" json:"currentUpiPerson"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
}

// DeviceToken is one active logged-in session for an admin. A session stays
// valid only while its row exists.
type DeviceToken struct {
	ID       string    `db:"id" json:"id"`
	AdminID  string    `db:"admin_id" json:"adminId"`
	Token    string    `db:"token" json:"-"`
	IssuedAt time.Time `db:"issued_at" json:"issuedAt"`
}
