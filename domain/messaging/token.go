// Package messaging holds the records backing push-message delivery:
// channel credentials and scheduled reminder messages.
package messaging

import (
	"time"

	"reservation-backend/pkg/utils"
)

// ChannelToken is one messaging channel's credential record. AccessToken
// and LimitDate are empty until the first issuance.
type ChannelToken struct {
	ChannelID     string `dynamodbav:"channelId" json:"channelId"`
	ChannelSecret string `dynamodbav:"channelSecret" json:"-"`
	AccessToken   string `dynamodbav:"channelAccessToken,omitempty" json:"-"`
	LimitDate     string `dynamodbav:"limitDate,omitempty" json:"limitDate,omitempty"`
	CreatedTime   string `dynamodbav:"createdTime" json:"createdTime"`
	UpdatedTime   string `dynamodbav:"updatedTime" json:"updatedTime"`
}

// NeedsRefresh reports whether the token must be (re)issued: it has never
// been issued, or its expiry is before now.
func (t ChannelToken) NeedsRefresh(now time.Time) (bool, error) {
	if t.AccessToken == "" {
		return true, nil
	}
	limit, err := utils.ParseLimitDate(t.LimitDate)
	if err != nil {
		return false, err
	}
	return limit.Before(now), nil
}
