package domain

// Day is the 1-based index of a poll day. Index 0 is reserved and never
// resolves to a stored column.
type Day int

// Poll day constants, Monday through Saturday
const (
	Monday    Day = 1
	Tuesday   Day = 2
	Wednesday Day = 3
	Thursday  Day = 4
	Friday    Day = 5
	Saturday  Day = 6
)

// PollDays lists every poll day in display order
var PollDays = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// DayNames maps poll days to their English names as shown in the poll body
var DayNames = map[Day]string{
	Monday:    "Monday",
	Tuesday:   "Tuesday",
	Wednesday: "Wednesday",
	Thursday:  "Thursday",
	Friday:    "Friday",
	Saturday:  "Saturday",
}

// DayColumns maps poll days to the store column holding their member set
var DayColumns = map[Day]string{
	Monday:    "monday",
	Tuesday:   "tuesday",
	Wednesday: "wednesday",
	Thursday:  "thursday",
	Friday:    "friday",
	Saturday:  "saturday",
}

// Valid reports whether d is one of the six poll days.
func (d Day) Valid() bool {
	return d >= Monday && d <= Saturday
}

func (d Day) String() string {
	if name, ok := DayNames[d]; ok {
		return name
	}
	return "Day(invalid)"
}

// DefaultPollDay is the weekday the poll is published on when none is configured
const DefaultPollDay = "Monday"
