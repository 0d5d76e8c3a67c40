package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Asia/Shanghai")
	if err != nil {
		panic(err)
	}
}

// force the campus timezone because our servers sometimes end up in
// other regions which will skew term resolution based on
// <time.Time>.Year()/Month()
func Now() time.Time {
	return time.Now().In(Location)
}
