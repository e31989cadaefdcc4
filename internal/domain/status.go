package domain

// DutyStatus is an ELD duty status as recorded on a log entry or a daily log.
type DutyStatus string

const (
	StatusOffDuty          DutyStatus = "off_duty"
	StatusSleeperBerth     DutyStatus = "sleeper_berth"
	StatusDriving          DutyStatus = "driving"
	StatusOnDutyNotDriving DutyStatus = "on_duty_not_driving"
)

// Valid reports whether s is one of the four recognized duty statuses.
func (s DutyStatus) Valid() bool {
	switch s {
	case StatusOffDuty, StatusSleeperBerth, StatusDriving, StatusOnDutyNotDriving:
		return true
	}
	return false
}

// OnDuty reports whether time in this status counts against the 70-hour
// cycle. Driving and on-duty-not-driving count; off-duty and sleeper berth
// do not.
func (s DutyStatus) OnDuty() bool {
	return s == StatusDriving || s == StatusOnDutyNotDriving
}
