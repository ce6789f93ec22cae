package domain

// eachDate calls fn for every date carried by the task until fn returns true.
func (t *Task) eachDate(fn func(Date) bool) bool {
	for _, d := range []*Date{t.Due, t.Scheduled, t.Created, t.Completion, t.Start} {
		if d != nil && fn(*d) {
			return true
		}
	}
	for _, d := range t.Dates {
		if fn(d) {
			return true
		}
	}
	return false
}

// MatchesDate reports whether any date of the task falls on day.
func MatchesDate(t *Task, day Date) bool {
	return t.eachDate(func(d Date) bool { return d.Equal(day) })
}

// MatchesYear reports whether any date of the task falls in year.
func MatchesYear(t *Task, year int) bool {
	return t.eachDate(func(d Date) bool { return d.Year() == year })
}

// MatchesDateRange reports whether any date of the task lies strictly
// between from and to.
func MatchesDateRange(t *Task, from, to Date) bool {
	return t.eachDate(func(d Date) bool { return d.After(from) && d.Before(to) })
}
