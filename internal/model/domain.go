package model

// Domain is the Hub module a reminder belongs to.
type Domain string

const (
	DomainPlants    Domain = "plants"
	DomainFinance   Domain = "finance"
	DomainCooking   Domain = "cooking"
	DomainReading   Domain = "reading"
	DomainCoding    Domain = "coding"
	DomainHousehold Domain = "household"
	DomainCustom    Domain = "custom"
)

// Domains lists every known domain in display order.
var Domains = []Domain{
	DomainPlants,
	DomainFinance,
	DomainCooking,
	DomainReading,
	DomainCoding,
	DomainHousehold,
	DomainCustom,
}

// Valid reports whether d is one of the known domains.
func (d Domain) Valid() bool {
	for _, known := range Domains {
		if d == known {
			return true
		}
	}
	return false
}

// Priority is the user-assigned urgency of a reminder.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Recurrence controls whether completing a reminder schedules a successor.
type Recurrence string

const (
	RecurNone    Recurrence = "none"
	RecurWeekly  Recurrence = "weekly"
	RecurMonthly Recurrence = "monthly"
	RecurYearly  Recurrence = "yearly"
)

func (r Recurrence) Valid() bool {
	switch r {
	case "", RecurNone, RecurWeekly, RecurMonthly, RecurYearly:
		return true
	}
	return false
}

// IsRecurring is false for the empty value and RecurNone.
func (r Recurrence) IsRecurring() bool {
	return r == RecurWeekly || r == RecurMonthly || r == RecurYearly
}
