package services

import (
	"context"
	"errors"
	"log"
	"regexp"
	"strconv"
	"strings"

	"api/models"
	"api/services/platforms"
)

// ErrContestNotFound is returned when every resolution strategy comes up
// empty. Handlers translate it to a 404.
var ErrContestNotFound = errors.New("contest not found")

// ErrUnknownPlatform is returned for platform path segments outside the
// supported enumeration.
var ErrUnknownPlatform = errors.New("platform not found")

var numericRe = regexp.MustCompile(`^\d+$`)

// ContestDetail is what a resolved contest-detail request serves: the
// normalized contest plus any solutions known for it. StoredID is set only
// when the contest came from persistent storage.
type ContestDetail struct {
	models.NormalizedContest
	StoredID  string             `json:"stored_id,omitempty"`
	Duration  string             `json:"duration"`
	Solutions []*models.Solution `json:"solutions"`
}

// ContestResolver maps a (platform, slug-or-index) request to a contest,
// checking persistent storage before the live aggregate.
type ContestResolver struct {
	Store      ContestStore
	Aggregator *platforms.Aggregator
}

func NewContestResolver(store ContestStore, aggregator *platforms.Aggregator) *ContestResolver {
	return &ContestResolver{Store: store, Aggregator: aggregator}
}

// ParsePlatform maps a case-insensitive path segment to the platform enum.
func ParsePlatform(raw string) (models.Platform, error) {
	for _, p := range []models.Platform{
		models.PlatformCodeforces,
		models.PlatformLeetCode,
		models.PlatformCodeChef,
		models.PlatformAtCoder,
		models.PlatformHackerRank,
		models.PlatformOther,
	} {
		if strings.EqualFold(raw, string(p)) {
			return p, nil
		}
	}
	return "", ErrUnknownPlatform
}

// Resolve locates a contest for a detail request. Strategies, in priority
// order, each tried only when the previous one found nothing:
//
//  1. stored contest by slug or case-insensitive name match
//  2. live aggregate entry with exactly the requested slug
//  3. numeric query treated as a zero-based index into the platform list
//  4. case-insensitive substring match on name or external id
//
// Contests resolved from the live aggregate get solutions attached through
// a best-effort store lookup; a failure there degrades to no solutions
// rather than failing the resolution.
func (r *ContestResolver) Resolve(ctx context.Context, rawPlatform, query string) (*ContestDetail, error) {
	platform, err := ParsePlatform(rawPlatform)
	if err != nil {
		return nil, err
	}

	stored, err := r.Store.FindContest(ctx, platform, query)
	if err != nil {
		log.Println("Error looking up stored contest: ", err)
	}
	if stored != nil {
		return storedDetail(stored), nil
	}

	contests := r.Aggregator.GetContests(ctx, platform)

	if live := matchLive(contests, query); live != nil {
		return r.liveDetail(ctx, live), nil
	}

	return nil, ErrContestNotFound
}

func matchLive(contests []models.NormalizedContest, query string) *models.NormalizedContest {
	for i := range contests {
		if contests[i].Slug == query {
			return &contests[i]
		}
	}

	// Legacy compatibility: a purely numeric query is a position in the
	// platform-filtered list.
	if numericRe.MatchString(query) {
		if index, err := strconv.Atoi(query); err == nil && index >= 0 && index < len(contests) {
			return &contests[index]
		}
		return nil
	}

	lowered := strings.ToLower(query)
	for i := range contests {
		if strings.Contains(strings.ToLower(contests[i].Name), lowered) ||
			strings.Contains(strings.ToLower(contests[i].ExternalID), lowered) {
			return &contests[i]
		}
	}
	return nil
}

func storedDetail(contest *models.Contest) *ContestDetail {
	solutions := contest.Solutions
	if solutions == nil {
		solutions = []*models.Solution{}
	}
	return &ContestDetail{
		NormalizedContest: models.NormalizedContest{
			ExternalID:      contest.ExternalID,
			Slug:            contest.Slug,
			Name:            contest.Name,
			Platform:        contest.Platform,
			StartTime:       contest.StartTime,
			DurationMinutes: contest.DurationMinutes,
			Link:            contest.Link,
			Status:          contest.Status,
		},
		StoredID:  contest.ID,
		Duration:  models.DurationDisplay(contest.DurationMinutes),
		Solutions: solutions,
	}
}

func (r *ContestResolver) liveDetail(ctx context.Context, contest *models.NormalizedContest) *ContestDetail {
	solutions, err := r.Store.FindSolutionsForContestRef(ctx, contest.Name, contest.ExternalID)
	if err != nil {
		log.Println("Error getting solutions for live contest: ", err)
		solutions = nil
	}
	if solutions == nil {
		solutions = []*models.Solution{}
	}
	return &ContestDetail{
		NormalizedContest: *contest,
		Duration:          contest.DurationDisplay(),
		Solutions:         solutions,
	}
}
