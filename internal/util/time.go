package util

import "time"

var jstLocation *time.Location

func init() {
	var err error
	jstLocation, err = time.LoadLocation("Asia/Tokyo")
	if err != nil {
		jstLocation = time.FixedZone("JST", 9*60*60)
	}
}

func FormatJST(t time.Time, layout string) string {
	return t.In(jstLocation).Format(layout)
}

func NowJST() time.Time {
	return time.Now().In(jstLocation)
}
