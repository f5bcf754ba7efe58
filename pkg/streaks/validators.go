package streaks

// CalendarQuery selects which month the calendar shows. Month 0 and 13 are
// valid paging values that roll over to the adjacent year.
type CalendarQuery struct {
	Year  int  `query:"year" json:"year" validate:"omitempty,min=1,max=9999"`
	Month *int `query:"month" json:"month" validate:"omitempty,min=0,max=13"`
}

// MarkDayPayload marks a date as a reading day.
type MarkDayPayload struct {
	Date string `json:"date" validate:"required,date"`
}
