package dynamodb

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"reservation-backend/domain/messaging"
)

func TestRemindMessageRepositoryQueryByRemindDate(t *testing.T) {
	client := newFakeClient("id")

	msg := messaging.RemindMessage{
		ID:         "msg-1",
		RemindDate: "2025-07-01",
		MessageInfo: messaging.MessageInfo{
			ChannelID:   "100",
			MessageBody: "Your table is booked for tonight",
			UserID:      "U123",
		},
	}
	item, err := attributevalue.MarshalMap(msg)
	require.NoError(t, err)
	client.queryItems = []Item{item}

	repo := NewRemindMessageRepository(client, "RemindMessage", zap.NewNop())
	got, err := repo.QueryByRemindDate(context.Background(), "2025-07-01")
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, msg, got[0])
	assert.Equal(t, remindDateIndex, *client.lastQuery.IndexName)
}

func TestRemindMessageRepositoryEmptyDateIsNoQuery(t *testing.T) {
	client := newFakeClient("id")
	repo := NewRemindMessageRepository(client, "RemindMessage", zap.NewNop())

	got, err := repo.QueryByRemindDate(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Nil(t, client.lastQuery)
}

func TestRemindMessageRepositoryPut(t *testing.T) {
	client := newFakeClient("id")
	repo := NewRemindMessageRepository(client, "RemindMessage", zap.NewNop())

	err := repo.Put(context.Background(), messaging.RemindMessage{
		ID:         "msg-2",
		RemindDate: "2025-08-01",
		MessageInfo: messaging.MessageInfo{
			ChannelID:   "100",
			MessageBody: "See you tomorrow",
			UserID:      "U456",
		},
	})
	require.NoError(t, err)
	require.NotNil(t, client.lastPut)
	assert.Equal(t, "RemindMessage", *client.lastPut.TableName)
}
