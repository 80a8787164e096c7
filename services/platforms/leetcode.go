package platforms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"api/metrics"
	"api/models"

	"golang.org/x/net/html"
)

// LeetCodeAdapter fetches upcoming and past contests through the GraphQL
// endpoint. If the GraphQL call fails it falls back to scraping the public
// contest listing page, which only yields approximate data (no exact start
// time for running contests, duration defaulted to 90 minutes).
type LeetCodeAdapter struct {
	BaseURL string
	Client  *http.Client
}

func NewLeetCodeAdapter() *LeetCodeAdapter {
	return &LeetCodeAdapter{
		BaseURL: "https://leetcode.com",
		Client:  defaultClient,
	}
}

func (a *LeetCodeAdapter) Platform() models.Platform {
	return models.PlatformLeetCode
}

const lcContestQuery = `{
  upcomingContests {
    title
    titleSlug
    startTime
    duration
  }
  pastContests {
    totalNum
    data {
      title
      titleSlug
      startTime
      duration
    }
  }
}`

type lcContest struct {
	Title     string `json:"title"`
	TitleSlug string `json:"titleSlug"`
	StartTime int64  `json:"startTime"`
	Duration  int64  `json:"duration"`
}

type lcContestResponse struct {
	Data struct {
		UpcomingContests []lcContest `json:"upcomingContests"`
		PastContests     struct {
			TotalNum int         `json:"totalNum"`
			Data     []lcContest `json:"data"`
		} `json:"pastContests"`
	} `json:"data"`
}

// FetchContests returns LeetCode contests via GraphQL, falling back to the
// HTML scrape when the GraphQL call fails. Failures of both paths are
// swallowed to an empty list.
func (a *LeetCodeAdapter) FetchContests(ctx context.Context) []models.NormalizedContest {
	contests, err := a.fetchGraphQL(ctx)
	if err != nil {
		log.Println("Error fetching LeetCode contests: ", err)
		contests, err = a.scrapeContests(ctx)
		if err != nil {
			log.Println("Error scraping LeetCode contests: ", err)
			metrics.UpstreamFetches.WithLabelValues(string(models.PlatformLeetCode), "error").Inc()
			return nil
		}
	}

	metrics.UpstreamFetches.WithLabelValues(string(models.PlatformLeetCode), "ok").Inc()
	return contests
}

func (a *LeetCodeAdapter) fetchGraphQL(ctx context.Context) ([]models.NormalizedContest, error) {
	payload, err := json.Marshal(map[string]string{"query": lcContestQuery})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.BaseURL+"/graphql", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("graphql request failed: %s", resp.Status)
	}

	var result lcContestResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	now := time.Now()
	var contests []models.NormalizedContest
	for _, c := range result.Data.UpcomingContests {
		contests = append(contests, a.normalize(c, now))
	}
	for _, c := range result.Data.PastContests.Data {
		contests = append(contests, a.normalize(c, now))
	}
	return contests, nil
}

func (a *LeetCodeAdapter) normalize(c lcContest, now time.Time) models.NormalizedContest {
	name := c.Title
	if name == "" {
		name = "Unnamed Contest"
	}

	titleSlug := c.TitleSlug
	if titleSlug == "" {
		titleSlug = strings.ReplaceAll(strings.ToLower(c.Title), " ", "-")
	}
	slug := DeriveSlug(c.Title, models.PlatformLeetCode, titleSlug)

	start := time.Unix(c.StartTime, 0).UTC()
	duration := int(c.Duration / 60)

	return models.NormalizedContest{
		ExternalID:      titleSlug,
		Slug:            slug,
		Name:            name,
		Platform:        models.PlatformLeetCode,
		StartTime:       start,
		DurationMinutes: duration,
		Link:            "https://leetcode.com/contest/" + slug,
		Status:          statusFromStartTime(start, duration, now),
	}
}

// scrapeContests parses the contest listing page for card elements, pulling
// the title and a coarse status out of the "Starts"/"Running" time marker.
func (a *LeetCodeAdapter) scrapeContests(ctx context.Context) ([]models.NormalizedContest, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.BaseURL+"/contest/", nil)
	if err != nil {
		return nil, err
	}

	resp, err := a.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("contest page request failed: %s", resp.Status)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, err
	}

	var contests []models.NormalizedContest
	for _, card := range findByClass(doc, "contest-card") {
		title := strings.TrimSpace(nodeText(firstByClass(card, "contest-title")))
		if title == "" {
			continue
		}
		timeInfo := strings.TrimSpace(nodeText(firstByClass(card, "time-info")))

		date := time.Now().UTC()
		status := models.StatusUpcoming
		switch {
		case strings.Contains(timeInfo, "Starts"):
			raw := strings.TrimSpace(strings.TrimPrefix(timeInfo, "Starts:"))
			if parsed, err := time.Parse("Jan 2, 2006 3:04 PM", raw); err == nil {
				date = parsed.UTC()
			}
		case strings.Contains(timeInfo, "Running"):
			status = models.StatusOngoing
		default:
			status = models.StatusFinished
		}

		contests = append(contests, models.NormalizedContest{
			ExternalID:      Slugify(title),
			Slug:            DeriveSlug(title, models.PlatformLeetCode, Slugify(title)),
			Name:            title,
			Platform:        models.PlatformLeetCode,
			StartTime:       date,
			DurationMinutes: 90,
			Link:            "https://leetcode.com/contest/",
			Status:          status,
		})
	}
	return contests, nil
}

func hasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func findByClass(n *html.Node, class string) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if hasClass(node, class) {
			found = append(found, node)
			return
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return found
}

func firstByClass(n *html.Node, class string) *html.Node {
	if nodes := findByClass(n, class); len(nodes) > 0 {
		return nodes[0]
	}
	return nil
}

func nodeText(n *html.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return sb.String()
}
