package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStreamAdder struct {
	mock.Mock
}

func (m *mockStreamAdder) XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd {
	args := m.Called(ctx, a)
	return args.Get(0).(*redis.StringCmd)
}

func TestRedisPublisher_Publish(t *testing.T) {
	adder := &mockStreamAdder{}
	p := newRedisPublisher(adder, "")
	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return at }

	var captured *redis.XAddArgs
	adder.On("XAdd", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { captured = args.Get(1).(*redis.XAddArgs) }).
		Return(redis.NewStringResult("1-0", nil))

	err := p.Publish(context.Background(), AccountCreated, map[string]string{"account_id": "a1"})
	require.NoError(t, err)
	adder.AssertExpectations(t)

	require.NotNil(t, captured)
	assert.Equal(t, DefaultStream, captured.Stream)

	values := captured.Values.(map[string]any)
	var event Event
	require.NoError(t, json.Unmarshal(values["event"].([]byte), &event))
	assert.Equal(t, AccountCreated, event.Type)
	assert.True(t, at.Equal(event.Timestamp))
	assert.Equal(t, map[string]any{"account_id": "a1"}, event.Data)
}

func TestRedisPublisher_PublishError(t *testing.T) {
	adder := &mockStreamAdder{}
	p := newRedisPublisher(adder, "custom")

	adder.On("XAdd", mock.Anything, mock.MatchedBy(func(a *redis.XAddArgs) bool {
		return a.Stream == "custom"
	})).Return(redis.NewStringResult("", errors.New("connection refused")))

	err := p.Publish(context.Background(), TransactionCreated, nil)
	assert.ErrorContains(t, err, "failed to publish event")
}

func TestRedisPublisher_MarshalError(t *testing.T) {
	adder := &mockStreamAdder{}
	p := newRedisPublisher(adder, "")

	err := p.Publish(context.Background(), TransactionCreated, make(chan int))
	assert.ErrorContains(t, err, "failed to marshal event")
	adder.AssertNotCalled(t, "XAdd", mock.Anything, mock.Anything)
}

func TestNopPublisher(t *testing.T) {
	assert.NoError(t, NopPublisher{}.Publish(context.Background(), AccountCreated, nil))
}
