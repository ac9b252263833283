package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TypeFulltime  = "FULLTIME"
	TypeParttime  = "PARTTIME"
	TypeProbation = "PROBATION"

	SalaryBasisMonthly = "MONTHLY"
	SalaryBasisHourly  = "HOURLY"
)

// Employee is the master record consumed by the calculation. It is loaded
// once per calculation and treated as immutable for its duration.
type Employee struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName string    `gorm:"type:varchar(255);not null"`
	Email    string    `gorm:"uniqueIndex"`

	EmployeeType string `gorm:"type:varchar(20);not null;default:'FULLTIME'"`
	SalaryBasis  string `gorm:"type:varchar(10);not null;default:'MONTHLY'"`

	// BaseSalary is the monthly amount for MONTHLY basis and the hourly
	// rate for HOURLY basis.
	BaseSalary float64 `gorm:"type:numeric(12,2);not null;default:0"`

	ShiftCode string `gorm:"type:varchar(30)"`

	BankName      string `gorm:"type:varchar(100)"`
	BankAccountNo string `gorm:"type:varchar(50)"`

	IsActive bool `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
