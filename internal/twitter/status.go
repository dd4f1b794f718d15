package twitter

import (
	"strconv"
	"time"

	"github.com/blackmichael/tweetfeed/internal/domain"
)

// timelineResponse is the raw JSON structure of a feed page.
type timelineResponse struct {
	Statuses []status `json:"statuses"`
}

// status is a raw tweet as returned by the feed endpoint.
type status struct {
	ID        int64  `json:"id"`
	IDStr     string `json:"id_str"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
	User      user   `json:"user"`
}

// user is the raw author object nested in a status.
type user struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	ScreenName      string `json:"screen_name"`
	ProfileImageURL string `json:"profile_image_url"`
}

// rubyDateLayout is Twitter's classic created_at format.
const rubyDateLayout = "Mon Jan 02 15:04:05 -0700 2006"

func (s status) toRecord() domain.Record {
	id := s.IDStr
	if id == "" {
		id = strconv.FormatInt(s.ID, 10)
	}

	return domain.Record{
		ID:        id,
		Text:      s.Text,
		CreatedAt: parseCreatedAt(s.CreatedAt),
		Author: domain.Author{
			ID:        strconv.FormatInt(s.User.ID, 10),
			Name:      s.User.Name,
			Handle:    s.User.ScreenName,
			AvatarURL: s.User.ProfileImageURL,
		},
	}
}

// parseCreatedAt accepts the ruby date layout and RFC3339. A timestamp in
// neither layout yields the zero time; one bad timestamp must not fail the
// whole page.
func parseCreatedAt(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	if t, err := time.Parse(rubyDateLayout, raw); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	return time.Time{}
}
