package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Gender constants
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// Patient is the root clinical record: identity and contact fields plus the
// owned odontogram, billing treatments and clinical files. Appointments are
// kept in their own collection and joined in at read time so the global and
// per-patient views can never drift apart.
type Patient struct {
	ID             int64          `gorm:"primaryKey" json:"id"`
	Name           string         `gorm:"type:varchar(255);not null;index" json:"name"`
	DOB            string         `gorm:"type:date" json:"dob"`
	Gender         string         `gorm:"type:varchar(10);not null" json:"gender"`
	Phone          string         `gorm:"type:varchar(30);index" json:"phone"`
	Email          string         `gorm:"type:varchar(255);not null;index" json:"email"`
	Address        string         `gorm:"type:text" json:"address,omitempty"`
	MedicalHistory string         `gorm:"type:text" json:"medical_history,omitempty"`
	Notes          string         `gorm:"type:text" json:"notes,omitempty"`
	AvatarURL      string         `gorm:"type:text" json:"avatar_url,omitempty"`
	Odontogram     Odontogram     `gorm:"type:jsonb" json:"odontogram"`
	Treatments     []Treatment    `gorm:"foreignKey:PatientID" json:"treatments,omitempty"`
	Files          []ClinicalFile `gorm:"foreignKey:PatientID" json:"files,omitempty"`

	// Version guards the resolve -> mutate -> commit cycle against lost
	// updates when more than one client edits the same record.
	Version   int64     `gorm:"not null;default:1" json:"version"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Patient) TableName() string {
	return "patients"
}

// Clone returns a deep copy so callers can mutate an aggregate without
// aliasing the stored value.
func (p *Patient) Clone() *Patient {
	cp := *p

	cp.Odontogram = make(Odontogram, len(p.Odontogram))
	for id, tooth := range p.Odontogram {
		cp.Odontogram[id] = tooth
	}

	cp.Treatments = make([]Treatment, len(p.Treatments))
	copy(cp.Treatments, p.Treatments)
	for i := range cp.Treatments {
		cp.Treatments[i].ToothIDs = append([]int(nil), p.Treatments[i].ToothIDs...)
	}

	cp.Files = make([]ClinicalFile, len(p.Files))
	copy(cp.Files, p.Files)

	return &cp
}

// BillingTotal sums the cost of every treatment regardless of paid status
func (p *Patient) BillingTotal() decimal.Decimal {
	total := decimal.Zero
	for _, t := range p.Treatments {
		total = total.Add(t.Cost)
	}
	return total
}

// OutstandingBalance sums the cost of treatments not yet paid
func (p *Patient) OutstandingBalance() decimal.Decimal {
	total := decimal.Zero
	for _, t := range p.Treatments {
		if !t.Paid {
			total = total.Add(t.Cost)
		}
	}
	return total
}

// FindTreatment returns the treatment with the given id, or nil
func (p *Patient) FindTreatment(treatmentID int64) *Treatment {
	for i := range p.Treatments {
		if p.Treatments[i].ID == treatmentID {
			return &p.Treatments[i]
		}
	}
	return nil
}
