package model

import (
	"time"
)

// Approval status enum constants
const (
	StatusApproving   = "APPROVING"
	StatusApproved    = "APPROVED"
	StatusDisapproved = "DISAPPROVED"
)

// Operation type values are caller-supplied free text; the frontend filters by
// sign of the sum. These are the conventional values.
const (
	OperationIncome   = "income"
	OperationOutcome  = "outcome"
	OperationTransfer = "transfer"
)

// Request represents a submitted financial operation awaiting or holding an
// approval decision. Company and creator identity fields are stamped once at
// creation from the gateway caller context and never updated afterwards.
type Request struct {
	ID                 int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Description        string    `gorm:"type:text;not null" json:"description"`
	TypeOfOperation    string    `gorm:"type:varchar(50);not null" json:"typeOfOperation"`
	ProjectID          int64     `gorm:"not null;index" json:"projectId"`
	NameOfCounterparty string    `gorm:"type:varchar(255);not null" json:"nameOfCounterparty"`
	Sum                int64     `gorm:"not null" json:"sum"` // sign carries direction
	Name               string    `gorm:"type:varchar(255)" json:"name,omitempty"`
	CreatedAt          time.Time `gorm:"not null" json:"createdAt"`
	CompanyID          int64     `gorm:"not null;index" json:"companyId"`
	CreatorLogin       string    `gorm:"type:varchar(255)" json:"creatorLogin"`
	CreatorEmail       string    `gorm:"type:varchar(255);not null" json:"creatorEmail"`
	ResponsibleManager string    `gorm:"type:varchar(255)" json:"responsibleManager,omitempty"`
	ApprovedStatus     string    `gorm:"type:varchar(20);not null;default:'APPROVING';index" json:"approvedStatus"`
	Files              []File    `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE" json:"files,omitempty"`
}

// IsApproved reports whether the request is visible as an operation.
func (r *Request) IsApproved() bool {
	return r.ApprovedStatus == StatusApproved
}
