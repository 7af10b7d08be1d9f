package entity

import "time"

// Activity groups tasks under a campaign or initiative. ActivityPicID is the
// single user with elevated, activity-wide rights; PicIDs is the full
// membership and always contains ActivityPicID when the activity has any PICs.
type Activity struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	ActivityPicID string    `json:"activity_pic_id"`
	PicIDs        []string  `json:"pic_ids"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// HasPic returns true if the user is a member of the activity.
func (a *Activity) HasPic(userID string) bool {
	for _, id := range a.PicIDs {
		if id == userID {
			return true
		}
	}
	return false
}
