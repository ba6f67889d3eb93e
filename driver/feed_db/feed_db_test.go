package feed_db

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var feedSourceColumns = []string{"id", "name", "url", "category", "active", "priority", "update_frequency_minutes"}

func TestFeedSourceRepository_FetchFeedSources(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, name, url, category, active, priority, update_frequency_minutes\s+FROM feed_sources\s+ORDER BY id`).
		WillReturnRows(pgxmock.NewRows(feedSourceColumns).
			AddRow("openai", "OpenAI", "https://openai.com/news/rss.xml", "AI", true, "high", 30).
			AddRow("wired", "Wired", "https://www.wired.com/feed/rss", "Tech", false, "low", 120))

	repo := NewFeedSourceRepository(mock)
	rows, err := repo.FetchFeedSources(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, FeedSourceRow{
		ID:                     "openai",
		Name:                   "OpenAI",
		URL:                    "https://openai.com/news/rss.xml",
		Category:               "AI",
		Active:                 true,
		Priority:               "high",
		UpdateFrequencyMinutes: 30,
	}, rows[0])
	assert.False(t, rows[1].Active)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeedSourceRepository_QueryError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT .* FROM feed_sources").WillReturnError(errors.New("connection refused"))

	_, err = NewFeedSourceRepository(mock).FetchFeedSources(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeedSourceRepository_ScanError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT .* FROM feed_sources").
		WillReturnRows(pgxmock.NewRows(feedSourceColumns).
			AddRow("x", "X", "https://x.example", "AI", "not-a-bool", "low", 10))

	_, err = NewFeedSourceRepository(mock).FetchFeedSources(context.Background())
	assert.Error(t, err)
}

func TestFeedSourceRepository_Ping(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectPing()
	assert.NoError(t, NewFeedSourceRepository(mock).Ping(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
