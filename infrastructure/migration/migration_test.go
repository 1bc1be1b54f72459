package migration

import (
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQueryer struct {
	executed []string
	failOn   string
}

func (f *fakeQueryer) Exec(query string, args ...any) (sql.Result, error) {
	if f.failOn != "" && strings.Contains(query, f.failOn) {
		return nil, errors.New("permission denied")
	}
	f.executed = append(f.executed, query)
	return nil, nil
}

func (f *fakeQueryer) Query(query string, args ...any) (*sql.Rows, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeQueryer) QueryRow(query string, args ...any) *sql.Row {
	return nil
}

func TestApply(t *testing.T) {
	q := &fakeQueryer{}

	require.NoError(t, Apply(q))
	require.Len(t, q.executed, len(steps))

	assert.Contains(t, q.executed[0], "CREATE TABLE IF NOT EXISTS campaigns")
	assert.Contains(t, q.executed[1], "UNIQUE (campaign_id, date)")
	for _, statement := range q.executed {
		assert.Contains(t, statement, "IF NOT EXISTS")
	}
}

func TestApply_StopsOnError(t *testing.T) {
	q := &fakeQueryer{failOn: "campaign_daily_metrics ("}

	err := Apply(q)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "campaign_daily_metrics")
	assert.Contains(t, err.Error(), "permission denied")
	assert.Len(t, q.executed, 1)
}
