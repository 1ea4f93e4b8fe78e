package domain

import "time"

// DefaultMaxDevicesPerWorker caps active bindings per (worker, company).
const DefaultMaxDevicesPerWorker = 3

// DeviceBinding ties a physical device to a worker within a company.
type DeviceBinding struct {
	BindingID  string     `json:"bindingID" db:"binding_id"`
	WorkerID   string     `json:"workerID" db:"worker_id"`
	CompanyID  string     `json:"companyID" db:"company_id"`
	DeviceID   string     `json:"deviceID" db:"device_id"`
	PointID    *string    `json:"pointID,omitempty" db:"point_id"`
	IsActive   bool       `json:"isActive" db:"is_active"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty" db:"last_used_at"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
}

// DeviceRecord is a company-scoped registry entry used to attribute time events.
// LocalID is the opaque client identifier kept in the record metadata.
type DeviceRecord struct {
	DeviceRecordID string    `json:"deviceRecordID" db:"device_record_id"`
	CompanyID      string    `json:"companyID" db:"company_id"`
	LocalID        string    `json:"localID" db:"local_id"`
	Name           string    `json:"name" db:"name"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}
