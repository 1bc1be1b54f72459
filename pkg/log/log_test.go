package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newBufferLogger(development bool) (Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	base := logrus.New()
	base.SetOutput(buf)
	base.SetFormatter(&logrus.JSONFormatter{})
	base.SetLevel(logrus.DebugLevel)

	return &logger{entry: logrus.NewEntry(base), development: development}, buf
}

func TestWithCorrelationID(t *testing.T) {
	ctx, id := WithCorrelationID(context.Background(), "")
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.Equal(t, id, GetCorrelationID(ctx))

	ctx, id = WithCorrelationID(context.Background(), " req-123 ")
	assert.Equal(t, "req-123", id)
	assert.Equal(t, "req-123", GetCorrelationID(ctx))

	assert.Empty(t, GetCorrelationID(context.Background()))
}

func TestLogger_DevelopmentFiltersFields(t *testing.T) {
	l, buf := newBufferLogger(true)

	l.WithFields(Fields{"campaign_id": "c1", "query": "a=b"}).WithField("remote_addr", "1.2.3.4").Info("teste")

	out := buf.String()
	assert.Contains(t, out, `"campaign_id":"c1"`)
	assert.NotContains(t, out, "query")
	assert.NotContains(t, out, "remote_addr")
}

func TestLogger_ProductionKeepsFields(t *testing.T) {
	l, buf := newBufferLogger(false)

	ctx, _ := WithCorrelationID(context.Background(), "req-1")
	l.WithContext(ctx).WithFields(Fields{"query": "a=b"}).Info("teste")

	out := buf.String()
	assert.Contains(t, out, `"correlation_id":"req-1"`)
	assert.Contains(t, out, `"query":"a=b"`)
}

func TestIsDevelopment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	assert.False(t, IsDevelopment())

	t.Setenv("APP_ENV", "")
	assert.True(t, IsDevelopment())
}
