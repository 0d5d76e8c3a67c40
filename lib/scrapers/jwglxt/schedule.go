package jwglxt

import (
	"bytes"
	"encoding/json"
)

type StudentInfo struct {
	Id   string `json:"XH"`
	Name string `json:"XM"`
}

// RawCourse is one entry of the portal's schedule payload, untouched.
// Free-text fields may be empty when the portal omits them.
type RawCourse struct {
	CourseId  string          `json:"kch_id"`
	Title     string          `json:"kcmc"`
	Teacher   string          `json:"xm"`
	ClassName string          `json:"jxbmc"`
	Weekday   json.RawMessage `json:"xqj"`
	Sessions  string          `json:"jc"`
	Weeks     string          `json:"zcd"`
	Campus    string          `json:"xqmc"`
	Place     string          `json:"cdmc"`
}

// WeekdayText renders the weekday field as text whether the portal sent
// it as a JSON string or a bare number.
func (c RawCourse) WeekdayText() string {
	raw := bytes.TrimSpace(c.Weekday)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// SchedulePayload is the portal's schedule response reduced to the
// parts this system consumes.
type SchedulePayload struct {
	Student StudentInfo
	Courses []RawCourse
}

func parseSchedulePayload(body []byte) (SchedulePayload, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return SchedulePayload{}, err
	}

	rawCourses, ok := fields["kbList"]
	if !ok {
		return SchedulePayload{}, ErrMissingCourseList
	}

	var payload SchedulePayload
	if !bytes.Equal(bytes.TrimSpace(rawCourses), []byte("null")) {
		if err := json.Unmarshal(rawCourses, &payload.Courses); err != nil {
			return SchedulePayload{}, err
		}
	}
	if rawStudent, ok := fields["xsxx"]; ok {
		// a malformed student block is survivable, the schedule itself
		// is what matters
		_ = json.Unmarshal(rawStudent, &payload.Student)
	}
	return payload, nil
}
