package outbox

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/ncalf/draftboard/go/internal/player/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var outboxColumns = []string{"id", "season", "event_type", "payload", "metadata", "created_at"}

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return NewRepository(db.New(sqlDB)), mock
}

func TestRepositoryFetchUnsent(t *testing.T) {
	repo, mock := newMockRepository(t)
	id := uuid.New()
	created := time.Date(2024, 3, 1, 19, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM draft_outbox").
		WithArgs(int32(50)).
		WillReturnRows(sqlmock.NewRows(outboxColumns).
			AddRow(id.String(), int64(2024), "PlayerSold", []byte(`{"team_id":3}`), []byte(`{"client_id":"dash-1"}`), created).
			AddRow(uuid.NewString(), int64(2024), "SaleUndone", []byte(`{}`), nil, created))

	events, err := repo.FetchUnsentOutbox(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, id, events[0].ID)
	assert.Equal(t, 2024, events[0].Season)
	assert.Equal(t, "dash-1", events[0].Metadata.ClientID)
	assert.JSONEq(t, `{"team_id":3}`, string(events[0].Payload))
	assert.Empty(t, events[1].Metadata.ClientID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryFetchByIDAlreadySent(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectQuery("FROM draft_outbox").WillReturnError(sql.ErrNoRows)

	_, err := repo.FetchOutboxByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrAlreadySent)

	mock.ExpectQuery("FROM draft_outbox").WillReturnError(errors.New("connection reset"))
	_, err = repo.FetchOutboxByID(context.Background(), uuid.New())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAlreadySent)
}

func TestRepositoryMarkSent(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectExec("UPDATE draft_outbox SET sent_at").
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkOutboxSent(context.Background(), uuid.New()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthChecker(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer sqlDB.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	l := newListener(newFakeStore(), &fakePublisher{}, nil, testConfig(), clockwork.NewFakeClock(), nil)

	counters := NewCounters()
	hc := NewHealthChecker(sqlDB, l, counters, func() bool { return true }, time.Minute)

	// listener not started yet
	mock.ExpectPing()
	mock.ExpectQuery("SELECT COUNT").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	rec := httptest.NewRecorder()
	hc.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "listener not active")

	go l.Start(ctx)
	require.Eventually(t, l.Active, time.Second, 5*time.Millisecond)

	mock.ExpectPing()
	mock.ExpectQuery("SELECT COUNT").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	status := hc.Check(context.Background())
	assert.True(t, status.Healthy, status.Errors)
	assert.Equal(t, 2, status.PendingEvents)
	assert.True(t, status.NATSConnected)

	// relayed long ago with work still pending
	counters.RecordEventProcessed("PlayerSold", true, 0)
	fake := clockwork.NewFakeClockAt(time.Now())
	hc.clock = fake
	fake.Advance(2 * time.Minute)
	mock.ExpectPing()
	mock.ExpectQuery("SELECT COUNT").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	status = hc.Check(context.Background())
	assert.False(t, status.Healthy)

	require.NoError(t, mock.ExpectationsWereMet())
}
