package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/mulham-salem/Event-Management-System-sub000/internal/model"
	"github.com/mulham-salem/Event-Management-System-sub000/internal/store/migrations"
)

// PostgresStore is the durable Store backend. Vote transitions run inside
// one transaction with the target's host row locked FOR UPDATE, so the
// ledger mutation and the counter delta commit or vanish together.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgres wraps an established connection pool.
func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Pool exposes the underlying pool for health checks and metrics gauges.
func (s *PostgresStore) Pool() *pgxpool.Pool {
	return s.pool
}

// RunMigrations applies the embedded goose migrations through a short-lived
// database/sql connection.
func RunMigrations(ctx context.Context, databaseURL string) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func (s *PostgresStore) CreateEvent(ctx context.Context, e model.Event) (model.Event, error) {
	e.ID = uuid.NewString()

	err := s.pool.QueryRow(ctx, `
		INSERT INTO events (id, title, description, organizer_id, venue_id, date, capacity, ticket_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`,
		e.ID, e.Title, e.Description, e.OrganizerID, e.VenueID, e.Date, e.Capacity, e.TicketPrice,
	).Scan(&e.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return model.Event{}, ErrTargetNotFound
		}
		return model.Event{}, err
	}
	return e, nil
}

func (s *PostgresStore) CreateVenue(ctx context.Context, v model.Venue) (model.Venue, error) {
	v.ID = uuid.NewString()

	err := s.pool.QueryRow(ctx, `
		INSERT INTO venues (id, name, description, location, provider_id, capacity, price_per_hour)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`,
		v.ID, v.Name, v.Description, v.Location, v.ProviderID, v.Capacity, v.PricePerHour,
	).Scan(&v.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return model.Venue{}, ErrTargetNotFound
		}
		return model.Venue{}, err
	}
	return v, nil
}

func (s *PostgresStore) CreateHost(ctx context.Context, h model.Host) (model.Host, error) {
	h.ID = uuid.NewString()
	h.Score = 0
	h.VoteCount = 0

	err := s.pool.QueryRow(ctx, `
		INSERT INTO hosts (id, full_name, email, role, bio)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		h.ID, h.FullName, h.Email, h.Role, h.Bio,
	).Scan(&h.CreatedAt)
	if err != nil {
		return model.Host{}, err
	}
	return h, nil
}

// Events returns all events in insertion order. The listing pipeline
// filters and orders in process, so the query stays a plain scan.
func (s *PostgresStore) Events(ctx context.Context) ([]model.Event, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, title, description, organizer_id, venue_id, date, capacity, ticket_price, created_at
		FROM events
		ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var e model.Event
		err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.OrganizerID, &e.VenueID,
			&e.Date, &e.Capacity, &e.TicketPrice, &e.CreatedAt)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (s *PostgresStore) Venues(ctx context.Context) ([]model.Venue, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, description, location, provider_id, capacity, price_per_hour, created_at
		FROM venues
		ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var venues []model.Venue
	for rows.Next() {
		var v model.Venue
		err := rows.Scan(&v.ID, &v.Name, &v.Description, &v.Location, &v.ProviderID,
			&v.Capacity, &v.PricePerHour, &v.CreatedAt)
		if err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

func (s *PostgresStore) Hosts(ctx context.Context) ([]model.Host, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, full_name, email, role, bio, score, vote_count, created_at
		FROM hosts
		ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hosts []model.Host
	for rows.Next() {
		var h model.Host
		err := rows.Scan(&h.ID, &h.FullName, &h.Email, &h.Role, &h.Bio,
			&h.Score, &h.VoteCount, &h.CreatedAt)
		if err != nil {
			return nil, err
		}
		hosts = append(hosts, h)
	}
	return hosts, rows.Err()
}

func (s *PostgresStore) HostByID(ctx context.Context, id string) (*model.Host, error) {
	var h model.Host
	err := s.pool.QueryRow(ctx, `
		SELECT id, full_name, email, role, bio, score, vote_count, created_at
		FROM hosts
		WHERE id = $1`, id,
	).Scan(&h.ID, &h.FullName, &h.Email, &h.Role, &h.Bio, &h.Score, &h.VoteCount, &h.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTargetNotFound
		}
		return nil, err
	}
	return &h, nil
}

func (s *PostgresStore) HostIDs(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT id FROM hosts ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *PostgresStore) CastVote(ctx context.Context, voterID, targetID string, value int) (*model.VoteResponse, error) {
	if value != model.VoteUp && value != model.VoteDown {
		return nil, ErrInvalidVoteValue
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Lock the target row: serializes concurrent votes on the same host
	// and pins the counters we are about to delta.
	var score, voteCount int
	err = tx.QueryRow(ctx, `
		SELECT score, vote_count FROM hosts WHERE id = $1 FOR UPDATE`,
		targetID,
	).Scan(&score, &voteCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTargetNotFound
		}
		return nil, err
	}

	var vote model.Vote
	vote.VoterID = voterID
	vote.TargetID = targetID

	var oldValue int
	err = tx.QueryRow(ctx, `
		SELECT id, value, created_at, updated_at
		FROM votes
		WHERE voter_id = $1 AND target_id = $2
		FOR UPDATE`,
		voterID, targetID,
	).Scan(&vote.ID, &oldValue, &vote.CreatedAt, &vote.UpdatedAt)
	isNew := errors.Is(err, pgx.ErrNoRows)
	if err != nil && !isNew {
		return nil, err
	}

	var transition string
	switch {
	case isNew:
		vote.ID = uuid.NewString()
		vote.Value = value
		err = tx.QueryRow(ctx, `
			INSERT INTO votes (id, voter_id, target_id, value)
			VALUES ($1, $2, $3, $4)
			RETURNING created_at`,
			vote.ID, voterID, targetID, value,
		).Scan(&vote.CreatedAt)
		if err != nil {
			return nil, err
		}
		score += value
		voteCount++
		transition = model.TransitionCreated

	case oldValue == value:
		vote.Value = value
		if err := tx.Commit(ctx); err != nil {
			return nil, err
		}
		return &model.VoteResponse{
			Vote:       vote,
			Transition: model.TransitionUnchanged,
			NewScore:   score,
			VoteCount:  voteCount,
		}, nil

	default:
		vote.Value = value
		var updatedAt time.Time
		err = tx.QueryRow(ctx, `
			UPDATE votes SET value = $1, updated_at = NOW()
			WHERE id = $2
			RETURNING updated_at`,
			value, vote.ID,
		).Scan(&updatedAt)
		if err != nil {
			return nil, err
		}
		vote.UpdatedAt = &updatedAt
		score += value - oldValue
		transition = model.TransitionSwitched
	}

	_, err = tx.Exec(ctx, `
		UPDATE hosts SET score = $1, vote_count = $2 WHERE id = $3`,
		score, voteCount, targetID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &model.VoteResponse{
		Vote:       vote,
		Transition: transition,
		NewScore:   score,
		VoteCount:  voteCount,
	}, nil
}

func (s *PostgresStore) RetractVote(ctx context.Context, voteID string) (string, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx)

	// Peek at the target without locking, then take the host lock before
	// the vote lock so the lock order matches CastVote.
	var targetID string
	err = tx.QueryRow(ctx, `SELECT target_id FROM votes WHERE id = $1`, voteID).Scan(&targetID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrVoteNotFound
		}
		return "", err
	}

	_, err = tx.Exec(ctx, `SELECT 1 FROM hosts WHERE id = $1 FOR UPDATE`, targetID)
	if err != nil {
		return "", err
	}

	var value int
	err = tx.QueryRow(ctx, `DELETE FROM votes WHERE id = $1 RETURNING value`, voteID).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Retracted concurrently while we waited on the host lock.
			return "", ErrVoteNotFound
		}
		return "", err
	}

	_, err = tx.Exec(ctx, `
		UPDATE hosts SET score = score - $1, vote_count = vote_count - 1
		WHERE id = $2`,
		value, targetID)
	if err != nil {
		return "", err
	}

	return targetID, tx.Commit(ctx)
}

func (s *PostgresStore) VoteFor(ctx context.Context, voterID, targetID string) (*model.Vote, error) {
	var v model.Vote
	err := s.pool.QueryRow(ctx, `
		SELECT id, voter_id, target_id, value, created_at, updated_at
		FROM votes
		WHERE voter_id = $1 AND target_id = $2`,
		voterID, targetID,
	).Scan(&v.ID, &v.VoterID, &v.TargetID, &v.Value, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

// AuditHost recomputes one host's counters from the votes table inside a
// transaction and repairs drift.
func (s *PostgresStore) AuditHost(ctx context.Context, hostID string) (bool, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	var score, voteCount int
	err = tx.QueryRow(ctx, `
		SELECT score, vote_count FROM hosts WHERE id = $1 FOR UPDATE`,
		hostID,
	).Scan(&score, &voteCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, ErrTargetNotFound
		}
		return false, err
	}

	var trueScore, trueCount int
	err = tx.QueryRow(ctx, `
		SELECT COALESCE(SUM(value), 0), COUNT(*)
		FROM votes
		WHERE target_id = $1`,
		hostID,
	).Scan(&trueScore, &trueCount)
	if err != nil {
		return false, err
	}

	if score == trueScore && voteCount == trueCount {
		return false, tx.Commit(ctx)
	}

	_, err = tx.Exec(ctx, `
		UPDATE hosts SET score = $1, vote_count = $2 WHERE id = $3`,
		trueScore, trueCount, hostID)
	if err != nil {
		return false, err
	}
	return true, tx.Commit(ctx)
}

func (s *PostgresStore) Stats(ctx context.Context) (*model.StatsResponse, error) {
	var stats model.StatsResponse
	err := s.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM events) AS total_events,
			(SELECT COUNT(*) FROM venues) AS total_venues,
			(SELECT COUNT(*) FROM hosts)  AS total_hosts,
			(SELECT COUNT(*) FROM votes)  AS total_votes,
			(SELECT COUNT(*) FROM hosts WHERE role = 'organizer') AS organizers,
			(SELECT COUNT(*) FROM hosts WHERE role = 'provider')  AS providers`,
	).Scan(&stats.TotalEvents, &stats.TotalVenues, &stats.TotalHosts,
		&stats.TotalVotes, &stats.Organizers, &stats.Providers)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

// isForeignKeyViolation reports whether err is a Postgres FK violation
// (SQLSTATE 23503), which the create paths map to ErrTargetNotFound.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
