package batch

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"reservation-backend/domain/messaging"
	"reservation-backend/pkg/utils"
)

type tokenUpdate struct {
	channelID   string
	accessToken string
	limitDate   time.Time
}

type mockTokenRepo struct {
	tokens   []messaging.ChannelToken
	byID     map[string]*messaging.ChannelToken
	scanErr  error
	getErr   map[string]error
	updates  []tokenUpdate
}

func (m *mockTokenRepo) Get(_ context.Context, channelID string) (*messaging.ChannelToken, error) {
	if err, ok := m.getErr[channelID]; ok {
		return nil, err
	}
	return m.byID[channelID], nil
}

func (m *mockTokenRepo) Update(_ context.Context, channelID, accessToken string, limitDate time.Time) error {
	m.updates = append(m.updates, tokenUpdate{channelID, accessToken, limitDate})
	return nil
}

func (m *mockTokenRepo) Scan(_ context.Context) ([]messaging.ChannelToken, error) {
	return m.tokens, m.scanErr
}

type pushCall struct {
	accessToken string
	userID      string
	messageBody string
}

type mockPushClient struct {
	issuedToken string
	issueCalls  []string
	issueErr    map[string]error
	pushCalls   []pushCall
	pushErr     map[string]error
}

func (m *mockPushClient) IssueToken(_ context.Context, channelID, _ string) (string, error) {
	m.issueCalls = append(m.issueCalls, channelID)
	if err, ok := m.issueErr[channelID]; ok {
		return "", err
	}
	return m.issuedToken, nil
}

func (m *mockPushClient) PushMessage(_ context.Context, accessToken, userID, messageBody string) error {
	m.pushCalls = append(m.pushCalls, pushCall{accessToken, userID, messageBody})
	if err, ok := m.pushErr[userID]; ok {
		return err
	}
	return nil
}

type mockMetrics struct {
	job       string
	processed int
	failed    int
	calls     int
}

func (m *mockMetrics) RecordBatchResult(_ context.Context, job string, processed, failed int) error {
	m.job = job
	m.processed = processed
	m.failed = failed
	m.calls++
	return nil
}

func newTestRefreshService(repo *mockTokenRepo, client *mockPushClient, metrics *mockMetrics, now time.Time) *TokenRefreshService {
	svc := NewTokenRefreshService(repo, client, metrics, zap.NewNop())
	svc.now = func() time.Time { return now }
	return svc
}

func TestTokenRefreshExpiredToken(t *testing.T) {
	ctx, seg := xray.BeginSegment(context.Background(), "TestTokenRefreshExpiredToken")
	defer seg.Close(nil)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.FixedZone("JST", 9*60*60))
	repo := &mockTokenRepo{
		tokens: []messaging.ChannelToken{
			{ChannelID: "100", ChannelSecret: "s", AccessToken: "old", LimitDate: utils.FormatLimitDate(now.Add(-time.Hour))},
		},
	}
	client := &mockPushClient{issuedToken: "new-token"}
	metrics := &mockMetrics{}

	require.NoError(t, newTestRefreshService(repo, client, metrics, now).Run(ctx))

	require.Len(t, client.issueCalls, 1)
	require.Len(t, repo.updates, 1)
	assert.Equal(t, "100", repo.updates[0].channelID)
	assert.Equal(t, "new-token", repo.updates[0].accessToken)
	assert.True(t, repo.updates[0].limitDate.Equal(now.AddDate(0, 0, 20)))
	assert.Equal(t, 1, metrics.processed)
	assert.Equal(t, 0, metrics.failed)
}

func TestTokenRefreshValidTokenUntouched(t *testing.T) {
	ctx, seg := xray.BeginSegment(context.Background(), "TestTokenRefreshValidTokenUntouched")
	defer seg.Close(nil)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.FixedZone("JST", 9*60*60))
	repo := &mockTokenRepo{
		tokens: []messaging.ChannelToken{
			{ChannelID: "100", ChannelSecret: "s", AccessToken: "current", LimitDate: utils.FormatLimitDate(now.Add(72 * time.Hour))},
		},
	}
	client := &mockPushClient{issuedToken: "new-token"}

	require.NoError(t, newTestRefreshService(repo, client, &mockMetrics{}, now).Run(ctx))

	assert.Empty(t, client.issueCalls)
	assert.Empty(t, repo.updates)
}

func TestTokenRefreshNeverIssued(t *testing.T) {
	ctx, seg := xray.BeginSegment(context.Background(), "TestTokenRefreshNeverIssued")
	defer seg.Close(nil)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.FixedZone("JST", 9*60*60))
	repo := &mockTokenRepo{
		tokens: []messaging.ChannelToken{
			{ChannelID: "300", ChannelSecret: "s"},
		},
	}
	client := &mockPushClient{issuedToken: "first-token"}

	require.NoError(t, newTestRefreshService(repo, client, &mockMetrics{}, now).Run(ctx))

	require.Len(t, repo.updates, 1)
	assert.Equal(t, "first-token", repo.updates[0].accessToken)
}

func TestTokenRefreshContinuesPastFailures(t *testing.T) {
	ctx, seg := xray.BeginSegment(context.Background(), "TestTokenRefreshContinuesPastFailures")
	defer seg.Close(nil)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.FixedZone("JST", 9*60*60))
	repo := &mockTokenRepo{
		tokens: []messaging.ChannelToken{
			{ChannelID: "100", ChannelSecret: "s"},
			{ChannelID: "200", ChannelSecret: "s"},
		},
	}
	client := &mockPushClient{
		issuedToken: "new-token",
		issueErr:    map[string]error{"100": assert.AnError},
	}
	metrics := &mockMetrics{}

	require.NoError(t, newTestRefreshService(repo, client, metrics, now).Run(ctx))

	// The first channel fails but the second is still refreshed.
	require.Len(t, repo.updates, 1)
	assert.Equal(t, "200", repo.updates[0].channelID)
	assert.Equal(t, 1, metrics.processed)
	assert.Equal(t, 1, metrics.failed)
}

func TestTokenRefreshScanFailureAborts(t *testing.T) {
	ctx, seg := xray.BeginSegment(context.Background(), "TestTokenRefreshScanFailureAborts")
	defer seg.Close(nil)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.FixedZone("JST", 9*60*60))
	repo := &mockTokenRepo{scanErr: assert.AnError}
	client := &mockPushClient{issuedToken: "new-token"}
	metrics := &mockMetrics{}

	err := newTestRefreshService(repo, client, metrics, now).Run(ctx)
	require.ErrorIs(t, err, assert.AnError)

	assert.Empty(t, client.issueCalls)
	assert.Zero(t, metrics.calls)
}
