package kebiao

// Credentials identify one student account on the portal. The password
// exists only long enough to be encrypted with the session key; it is
// never logged or persisted.
type Credentials struct {
	AccountId string
	Password  string
}

type Status string

const (
	StatusSuccess        Status = "success"
	StatusBadCredentials Status = "pwd"
	StatusTimeout        Status = "timeout"
	StatusError          Status = "error"
)

// Result is the integration contract of one schedule retrieval. Data is
// populated only on success, there is no partial state.
type Result struct {
	Status Status          `json:"status"`
	Data   *ScheduleRecord `json:"data,omitempty"`
}

type ScheduleRecord struct {
	Sid     *string       `json:"sid"`
	Name    *string       `json:"name"`
	Year    int           `json:"year"`
	Term    int           `json:"term"`
	Count   int           `json:"count"`
	Courses []CourseEntry `json:"courses"`
}

// CourseEntry is one normalized slot of the weekly schedule. Weekday is
// an int for the usual 1-7 encoding but falls back to the portal's raw
// text when it sends something else. Pass-through fields are null when
// the portal omitted them.
type CourseEntry struct {
	CourseId  *string `json:"course_id"`
	Title     *string `json:"title"`
	Teacher   *string `json:"teacher"`
	ClassName *string `json:"class_name"`
	Weekday   any     `json:"weekday"`
	Sessions  []int   `json:"sessions"`
	Weeks     []int   `json:"weeks"`
	Campus    *string `json:"campus"`
	Place     *string `json:"place"`
}
