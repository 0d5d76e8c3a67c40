package kebiao

import (
	"kebiao-backend/lib/scrapers/jwglxt"
	"kebiao-backend/lib/textutil"
)

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func normalizeCourse(c jwglxt.RawCourse) CourseEntry {
	return CourseEntry{
		CourseId:  nullable(c.CourseId),
		Title:     nullable(c.Title),
		Teacher:   nullable(c.Teacher),
		ClassName: nullable(c.ClassName),
		Weekday:   textutil.ParseIntOrRaw(c.WeekdayText()),
		Sessions:  textutil.ParseNumberRanges(c.Sessions),
		Weeks:     textutil.ParseNumberRanges(c.Weeks),
		Campus:    nullable(c.Campus),
		Place:     nullable(c.Place),
	}
}

func normalizeSchedule(payload jwglxt.SchedulePayload, year, term int) ScheduleRecord {
	courses := make([]CourseEntry, len(payload.Courses))
	for i, c := range payload.Courses {
		courses[i] = normalizeCourse(c)
	}
	return ScheduleRecord{
		Sid:     nullable(payload.Student.Id),
		Name:    nullable(payload.Student.Name),
		Year:    year,
		Term:    term,
		Count:   len(courses),
		Courses: courses,
	}
}
