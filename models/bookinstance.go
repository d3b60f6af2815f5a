package models

import (
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookInstance statuses.
const (
	StatusAvailable   = "Available"
	StatusMaintenance = "Maintenance"
	StatusLoaned      = "Loaned"
	StatusReserved    = "Reserved"

	DefaultStatus = StatusMaintenance
)

var Statuses = []string{StatusAvailable, StatusMaintenance, StatusLoaned, StatusReserved}

func IsValidStatus(status string) bool {
	for _, s := range Statuses {
		if s == status {
			return true
		}
	}
	return false
}

// BookInstance is one physical copy of a Book.
type BookInstance struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	BookID  primitive.ObjectID `bson:"book"`
	Imprint string             `bson:"imprint"`
	Status  string             `bson:"status"`
	DueBack *time.Time         `bson:"due_back,omitempty"`

	Book *Book `bson:"-"`
}

func (bi BookInstance) URL() string {
	return "/catalog/bookinstance/" + bi.ID.Hex()
}

// DueBackFormatted is the long human form, e.g. "January 15th, 2020".
func (bi BookInstance) DueBackFormatted() string {
	if bi.DueBack == nil || bi.DueBack.IsZero() {
		return ""
	}
	t := bi.DueBack.UTC()
	return t.Format("January ") + ordinal(t.Day()) + t.Format(", 2006")
}

// DueBackForUpdate is the value pre-filled into the edit form.
func (bi BookInstance) DueBackForUpdate() string {
	return formatDate(bi.DueBack)
}

func ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}
