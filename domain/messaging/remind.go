package messaging

// MessageInfo is the payload embedded in a reminder record
type MessageInfo struct {
	ChannelID   string `dynamodbav:"channelId" json:"channelId"`
	MessageBody string `dynamodbav:"messageBody" json:"messageBody"`
	UserID      string `dynamodbav:"userId" json:"userId"`
}

// RemindMessage is one scheduled reminder. The dispatch batch only reads
// these records; they are written through the registration endpoint.
type RemindMessage struct {
	ID          string      `dynamodbav:"id" json:"id"`
	MessageInfo MessageInfo `dynamodbav:"messageInfo" json:"messageInfo"`
	RemindDate  string      `dynamodbav:"remindDate" json:"remindDate"`
	CreatedTime string      `dynamodbav:"createdTime" json:"createdTime"`
	UpdatedTime string      `dynamodbav:"updatedTime" json:"updatedTime"`
}
