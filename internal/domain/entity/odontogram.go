package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// ToothStatus represents the clinical status of a single tooth
type ToothStatus string

const (
	ToothStatusHealthy    ToothStatus = "Healthy"
	ToothStatusCaries     ToothStatus = "Caries"
	ToothStatusFilling    ToothStatus = "Filling"
	ToothStatusCrown      ToothStatus = "Crown"
	ToothStatusImplant    ToothStatus = "Implant"
	ToothStatusExtraction ToothStatus = "Extraction"
)

// ToothCount is the fixed number of teeth tracked per patient (adult dentition).
const ToothCount = 32

// ErrInvalidToothID is returned when a tooth id falls outside 1..32
var ErrInvalidToothID = errors.New("tooth id must be between 1 and 32")

// toothStatusCycle is the single total-order cycle a tooth advances through
// on each click: Healthy -> Caries -> Filling -> Crown -> Implant ->
// Extraction -> Healthy.
var toothStatusCycle = []ToothStatus{
	ToothStatusHealthy,
	ToothStatusCaries,
	ToothStatusFilling,
	ToothStatusCrown,
	ToothStatusImplant,
	ToothStatusExtraction,
}

// Tooth is a single entry in the odontogram
type Tooth struct {
	ID     int         `json:"id"`
	Status ToothStatus `json:"status"`
}

// Odontogram is the per-patient 32-tooth chart, keyed 1..32. The key set is
// always exactly {1,...,32}; partial charts never exist.
type Odontogram map[int]Tooth

// NewOdontogram builds a fresh chart with all 32 teeth healthy
func NewOdontogram() Odontogram {
	o := make(Odontogram, ToothCount)
	for i := 1; i <= ToothCount; i++ {
		o[i] = Tooth{ID: i, Status: ToothStatusHealthy}
	}
	return o
}

// Cycle advances the given tooth one step in the status cycle and returns a
// new chart; all other teeth are unchanged and the receiver is not mutated.
func (o Odontogram) Cycle(toothID int) (Odontogram, error) {
	if toothID < 1 || toothID > ToothCount {
		return nil, ErrInvalidToothID
	}

	next := make(Odontogram, ToothCount)
	for id, tooth := range o {
		next[id] = tooth
	}

	tooth := next[toothID]
	idx := 0
	for i, status := range toothStatusCycle {
		if status == tooth.Status {
			idx = i
			break
		}
	}
	tooth.Status = toothStatusCycle[(idx+1)%len(toothStatusCycle)]
	next[toothID] = tooth

	return next, nil
}

// Value serializes the chart to JSONB, implements driver.Valuer interface
func (o Odontogram) Value() (driver.Value, error) {
	if len(o) == 0 {
		return nil, nil
	}
	return json.Marshal(o)
}

// Scan reads the chart back from JSONB, implements sql.Scanner interface
func (o *Odontogram) Scan(value interface{}) error {
	if value == nil {
		*o = NewOdontogram()
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal odontogram value:", value))
	}

	result := make(map[int]Tooth, ToothCount)
	err := json.Unmarshal(bytes, &result)
	*o = Odontogram(result)
	return err
}
