package contact

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/HerbHall/storefront/internal/event"
	"github.com/HerbHall/storefront/internal/testutil"
)

func validRequest() Request {
	return Request{Name: "Ada", Email: "ada@example.com", Subject: "support", Message: "Where is my order?"}
}

func newService(t *testing.T, cfg Config, bus *event.Bus) *Service {
	t.Helper()
	svc, err := NewService(context.Background(), testutil.NewStore(t), cfg, bus, zaptest.NewLogger(t))
	require.NoError(t, err)
	return svc
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
		field  string
	}{
		{"valid", func(*Request) {}, ""},
		{"blank name", func(r *Request) { r.Name = "   " }, "name"},
		{"missing email", func(r *Request) { r.Email = "" }, "email"},
		{"no at sign", func(r *Request) { r.Email = "ada.example.com" }, "email"},
		{"nothing before at", func(r *Request) { r.Email = "@example.com" }, "email"},
		{"nothing after at", func(r *Request) { r.Email = "ada@" }, "email"},
		{"display name form", func(r *Request) { r.Email = "Ada <ada@example.com>" }, "email"},
		{"unknown subject", func(r *Request) { r.Subject = "sales" }, "subject"},
		{"missing subject", func(r *Request) { r.Subject = "" }, "subject"},
		{"missing message", func(r *Request) { r.Message = "" }, "message"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			err := Validate(&req)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, ve.Fields, tt.field)
			assert.Len(t, ve.Fields, 1)
		})
	}
}

func TestValidate_Trims(t *testing.T) {
	req := Request{Name: " Ada ", Email: " ada@example.com ", Subject: " careers ", Message: " hi "}
	require.NoError(t, Validate(&req))
	assert.Equal(t, "Ada", req.Name)
	assert.Equal(t, "ada@example.com", req.Email)
	assert.Equal(t, "careers", req.Subject)
	assert.Equal(t, "hi", req.Message)
}

func TestSubmit_StoresAndPublishes(t *testing.T) {
	bus := event.NewBus(zaptest.NewLogger(t))
	var published []Submission
	bus.Subscribe(TopicSubmitted, func(_ context.Context, e event.Event) {
		published = append(published, e.Payload.(Submission))
	})
	svc := newService(t, Config{}, bus)

	sub, err := svc.Submit(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, sub.ID)
	assert.False(t, sub.CreatedAt.IsZero())

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, sub.ID, list[0].ID)
	assert.Equal(t, "support", list[0].Subject)

	require.Len(t, published, 1)
	assert.Equal(t, sub.ID, published[0].ID)
}

func TestSubmit_InvalidIsNotStored(t *testing.T) {
	svc := newService(t, Config{}, nil)
	req := validRequest()
	req.Email = "nope"

	_, err := svc.Submit(context.Background(), req)
	assert.True(t, IsValidation(err))

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSubmit_DelayHonoursCancellation(t *testing.T) {
	svc := newService(t, Config{SubmitDelay: time.Hour}, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := svc.Submit(ctx, validRequest())
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSubmit_DelayElapses(t *testing.T) {
	svc := newService(t, Config{SubmitDelay: 10 * time.Millisecond}, nil)
	start := time.Now()
	_, err := svc.Submit(context.Background(), validRequest())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}

func TestList_NewestFirst(t *testing.T) {
	svc := newService(t, Config{}, nil)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, subject := range []string{"general", "business", "feedback"} {
		at := base.Add(time.Duration(i) * time.Minute)
		svc.now = func() time.Time { return at }
		req := validRequest()
		req.Subject = subject
		_, err := svc.Submit(context.Background(), req)
		require.NoError(t, err)
	}

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "feedback", list[0].Subject)
	assert.Equal(t, "general", list[2].Subject)
}
