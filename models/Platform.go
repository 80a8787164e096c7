package models

import "fmt"

// Platform identifies the contest hosting site. Contest identity is always
// scoped by platform, so two platforms may derive the same slug.
type Platform string

const (
	PlatformCodeforces Platform = "Codeforces"
	PlatformLeetCode   Platform = "LeetCode"
	PlatformCodeChef   Platform = "CodeChef"
	PlatformAtCoder    Platform = "AtCoder"
	PlatformHackerRank Platform = "HackerRank"
	PlatformOther      Platform = "Other"
)

// Contest status values
const (
	StatusUpcoming = "UPCOMING"
	StatusOngoing  = "ONGOING"
	StatusFinished = "FINISHED"
)

// DurationDisplay renders a duration in minutes as a human readable string,
// whole hours as "N hours" and everything else as "N mins".
func DurationDisplay(minutes int) string {
	if minutes >= 60 && minutes%60 == 0 {
		hours := minutes / 60
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	}
	return fmt.Sprintf("%d mins", minutes)
}
