// Package reminder classifies reminders, aggregates them into summaries and
// synthesises reminders from the expiry dates of other household records.
//
// Every function here is pure: it never reads the system clock, never
// mutates its inputs and keeps no package state, so the same snapshot of
// reminders can be classified from several goroutines at once. Callers pass
// the reference instant explicitly.
package reminder
