// Package alarm maintains the in-memory alarm list shown on the dashboard.
//
// Alarms are inert display records: nothing in this package fires them. The
// dashboard polls Due against the wall clock on each redraw. The list lives
// only for the daemon process lifetime and is never persisted.
package alarm

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Alarm is a label attached to a wall-clock time of day.
type Alarm struct {
	ID     int64  `json:"id"`
	Time   string `json:"time"` // HH:MM, 24-hour
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// List is an ordered, mutable collection of alarms. Ids are assigned from a
// monotonically increasing counter at creation and never reused, so removing
// an alarm does not change the identity of the others.
type List struct {
	alarms []Alarm
	nextID int64
}

// NewList returns an empty alarm list.
func NewList() *List {
	return &List{nextID: 1}
}

// Add appends an alarm with the supplied time of day and label.
func (l *List) Add(timeOfDay, label string) (Alarm, error) {
	normalized, err := normalizeTimeOfDay(timeOfDay)
	if err != nil {
		return Alarm{}, err
	}
	alarm := Alarm{
		ID:     l.nextID,
		Time:   normalized,
		Label:  strings.TrimSpace(label),
		Active: true,
	}
	l.nextID++
	l.alarms = append(l.alarms, alarm)
	return alarm, nil
}

// Remove deletes the alarm with the given id, reporting whether it existed.
func (l *List) Remove(id int64) bool {
	for i, alarm := range l.alarms {
		if alarm.ID == id {
			l.alarms = append(l.alarms[:i], l.alarms[i+1:]...)
			return true
		}
	}
	return false
}

// Toggle flips the active flag on the alarm with the given id.
func (l *List) Toggle(id int64) bool {
	for i := range l.alarms {
		if l.alarms[i].ID == id {
			l.alarms[i].Active = !l.alarms[i].Active
			return true
		}
	}
	return false
}

// All returns the alarms in insertion order.
func (l *List) All() []Alarm {
	out := make([]Alarm, len(l.alarms))
	copy(out, l.alarms)
	return out
}

// Len returns the number of alarms.
func (l *List) Len() int {
	return len(l.alarms)
}

// Due returns active alarms whose time of day matches the supplied HH:MM
// clock value. Callers poll this on redraw; there is no scheduler.
func (l *List) Due(clock string) []Alarm {
	normalized, err := normalizeTimeOfDay(clock)
	if err != nil {
		return nil
	}
	var due []Alarm
	for _, alarm := range l.alarms {
		if alarm.Active && alarm.Time == normalized {
			due = append(due, alarm)
		}
	}
	return due
}

func normalizeTimeOfDay(value string) (string, error) {
	parts := strings.SplitN(strings.TrimSpace(value), ":", 2)
	if len(parts) != 2 {
		return "", errors.New("time of day must be HH:MM")
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid hour %q", parts[0])
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid minute %q", parts[1])
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}
