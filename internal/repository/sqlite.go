package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mkowalik/peervote/internal/models"
)

// Repository provides data access methods over sqlite.
type Repository struct {
	db *sql.DB
}

// New opens (or creates) the database at dbPath and applies migrations.
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign key constraints
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, err
	}

	// SQLite works best with a single connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	repo := &Repository{db: db}

	if err := repo.migrate(); err != nil {
		return nil, err
	}

	return repo, nil
}

// NewWithDB wraps an existing database handle without running migrations.
// Used by tests that inject a mocked connection.
func NewWithDB(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// DB returns the underlying database connection.
func (r *Repository) DB() *sql.DB {
	return r.db
}

// Close closes the database connection.
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping checks if the database connection is alive.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *Repository) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS employees (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT UNIQUE,
			department TEXT,
			position TEXT,
			location TEXT,
			active BOOLEAN DEFAULT 1
		)`,
		`CREATE TABLE IF NOT EXISTS voting_periods (
			id TEXT PRIMARY KEY,
			year INTEGER NOT NULL,
			month INTEGER NOT NULL,
			start_date DATETIME NOT NULL,
			end_date DATETIME NOT NULL,
			status TEXT NOT NULL DEFAULT 'ACTIVE',
			description TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS nominations (
			id TEXT PRIMARY KEY,
			period_id TEXT NOT NULL,
			employee_id TEXT NOT NULL,
			nominator_id TEXT NOT NULL,
			nominator_name TEXT,
			reason TEXT NOT NULL,
			teamwork INTEGER NOT NULL,
			communication INTEGER NOT NULL,
			innovation INTEGER NOT NULL,
			reliability INTEGER NOT NULL,
			leadership INTEGER NOT NULL,
			helpfulness INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME,
			FOREIGN KEY (period_id) REFERENCES voting_periods(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_nominations_period ON nominations(period_id)`,
		`CREATE TABLE IF NOT EXISTS winner_history (
			id TEXT PRIMARY KEY,
			period_id TEXT NOT NULL,
			year INTEGER NOT NULL,
			month INTEGER NOT NULL,
			employee_id TEXT NOT NULL,
			employee_name TEXT,
			department TEXT,
			position TEXT,
			vote_count INTEGER NOT NULL,
			percentage REAL NOT NULL,
			rank INTEGER NOT NULL,
			avg_teamwork REAL NOT NULL,
			avg_communication REAL NOT NULL,
			avg_innovation REAL NOT NULL,
			avg_reliability REAL NOT NULL,
			avg_leadership REAL NOT NULL,
			avg_helpfulness REAL NOT NULL,
			voting_group TEXT,
			winner_type TEXT NOT NULL,
			is_yearly_winner BOOLEAN DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_winner_history_period ON winner_history(period_id)`,
		`CREATE INDEX IF NOT EXISTS idx_winner_history_year ON winner_history(year)`,
		`CREATE TABLE IF NOT EXISTS winner_reactions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			winner_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			user_name TEXT,
			emoji TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(winner_id, user_id, emoji),
			FOREIGN KEY (winner_id) REFERENCES winner_history(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS app_config (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}

	for _, migration := range migrations {
		if _, err := r.db.Exec(migration); err != nil {
			return err
		}
	}
	return nil
}

// ===== Employees =====

const employeeColumns = "id, name, email, department, position, location, active"

func scanEmployee(row *sql.Row) (*models.Employee, error) {
	var emp models.Employee
	err := row.Scan(&emp.ID, &emp.Name, &emp.Email, &emp.Department, &emp.Position, &emp.Location, &emp.Active)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *Repository) GetEmployee(ctx context.Context, id string) (*models.Employee, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+employeeColumns+" FROM employees WHERE id = ?", id)
	return scanEmployee(row)
}

func (r *Repository) GetEmployeeByEmail(ctx context.Context, email string) (*models.Employee, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+employeeColumns+" FROM employees WHERE email = ? COLLATE NOCASE", email)
	return scanEmployee(row)
}

func (r *Repository) ListActiveEmployees(ctx context.Context) ([]models.Employee, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+employeeColumns+" FROM employees WHERE active = 1 ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Employee
	for rows.Next() {
		var emp models.Employee
		if err := rows.Scan(&emp.ID, &emp.Name, &emp.Email, &emp.Department, &emp.Position, &emp.Location, &emp.Active); err != nil {
			return nil, err
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}

func (r *Repository) CountActiveEmployees(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM employees WHERE active = 1").Scan(&count)
	return count, err
}

func (r *Repository) UpsertEmployee(ctx context.Context, emp models.Employee) (bool, error) {
	var exists int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM employees WHERE id = ?", emp.ID).Scan(&exists)
	if err != nil {
		return false, err
	}

	if exists > 0 {
		_, err := r.db.ExecContext(ctx, `
			UPDATE employees SET name = ?, email = ?, department = ?, position = ?, location = ?, active = ?
			WHERE id = ?`,
			emp.Name, emp.Email, emp.Department, emp.Position, emp.Location, emp.Active, emp.ID)
		return false, err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO employees (id, name, email, department, position, location, active)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		emp.ID, emp.Name, emp.Email, emp.Department, emp.Position, emp.Location, emp.Active)
	return true, err
}

// ===== Voting periods =====

const periodColumns = "id, year, month, start_date, end_date, status, description"

func scanPeriod(row *sql.Row) (*models.VotingPeriod, error) {
	var p models.VotingPeriod
	var desc sql.NullString
	err := row.Scan(&p.ID, &p.Year, &p.Month, &p.StartDate, &p.EndDate, &p.Status, &desc)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p.Description = desc.String
	return &p, nil
}

func (r *Repository) CreatePeriod(ctx context.Context, p models.VotingPeriod) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO voting_periods (id, year, month, start_date, end_date, status, description)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Year, p.Month, p.StartDate, p.EndDate, p.Status, p.Description)
	return err
}

func (r *Repository) GetPeriod(ctx context.Context, id string) (*models.VotingPeriod, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+periodColumns+" FROM voting_periods WHERE id = ?", id)
	return scanPeriod(row)
}

func (r *Repository) GetPeriodByYearMonth(ctx context.Context, year, month int) (*models.VotingPeriod, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+periodColumns+" FROM voting_periods WHERE year = ? AND month = ?", year, month)
	return scanPeriod(row)
}

func (r *Repository) GetActivePeriod(ctx context.Context) (*models.VotingPeriod, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+periodColumns+" FROM voting_periods WHERE status = ? ORDER BY year DESC, month DESC LIMIT 1",
		models.PeriodActive)
	return scanPeriod(row)
}

func (r *Repository) ListPeriods(ctx context.Context) ([]models.VotingPeriod, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+periodColumns+" FROM voting_periods ORDER BY year DESC, month DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.VotingPeriod
	for rows.Next() {
		var p models.VotingPeriod
		var desc sql.NullString
		if err := rows.Scan(&p.ID, &p.Year, &p.Month, &p.StartDate, &p.EndDate, &p.Status, &desc); err != nil {
			return nil, err
		}
		p.Description = desc.String
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repository) UpdatePeriod(ctx context.Context, p models.VotingPeriod) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE voting_periods SET year = ?, month = ?, start_date = ?, end_date = ?, status = ?, description = ?
		WHERE id = ?`,
		p.Year, p.Month, p.StartDate, p.EndDate, p.Status, p.Description, p.ID)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

func (r *Repository) DeletePeriod(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM voting_periods WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

// ===== Nominations =====

const nominationColumns = `id, period_id, employee_id, nominator_id, nominator_name, reason,
	teamwork, communication, innovation, reliability, leadership, helpfulness, created_at, updated_at`

func scanNominationRow(scan func(dest ...any) error) (*models.Nomination, error) {
	var n models.Nomination
	var name sql.NullString
	var updated sql.NullTime
	err := scan(&n.ID, &n.PeriodID, &n.EmployeeID, &n.NominatorID, &name, &n.Reason,
		&n.Criteria.Teamwork, &n.Criteria.Communication, &n.Criteria.Innovation,
		&n.Criteria.Reliability, &n.Criteria.Leadership, &n.Criteria.Helpfulness,
		&n.CreatedAt, &updated)
	if err != nil {
		return nil, err
	}
	n.NominatorName = name.String
	if updated.Valid {
		t := updated.Time
		n.UpdatedAt = &t
	}
	return &n, nil
}

func (r *Repository) CreateNomination(ctx context.Context, n models.Nomination) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO nominations (id, period_id, employee_id, nominator_id, nominator_name, reason,
			teamwork, communication, innovation, reliability, leadership, helpfulness, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.PeriodID, n.EmployeeID, n.NominatorID, n.NominatorName, n.Reason,
		n.Criteria.Teamwork, n.Criteria.Communication, n.Criteria.Innovation,
		n.Criteria.Reliability, n.Criteria.Leadership, n.Criteria.Helpfulness, n.CreatedAt)
	return err
}

func (r *Repository) GetNomination(ctx context.Context, id string) (*models.Nomination, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+nominationColumns+" FROM nominations WHERE id = ?", id)
	n, err := scanNominationRow(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return n, err
}

func (r *Repository) GetNominationByNominator(ctx context.Context, periodID, nominatorID string) (*models.Nomination, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+nominationColumns+" FROM nominations WHERE period_id = ? AND nominator_id = ? LIMIT 1",
		periodID, nominatorID)
	n, err := scanNominationRow(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return n, err
}

func (r *Repository) ListNominationsForPeriod(ctx context.Context, periodID string) ([]models.Nomination, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+nominationColumns+" FROM nominations WHERE period_id = ? ORDER BY created_at, id", periodID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Nomination
	for rows.Next() {
		n, err := scanNominationRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *n)
	}
	return out, rows.Err()
}

func (r *Repository) UpdateNomination(ctx context.Context, n models.Nomination) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE nominations SET employee_id = ?, reason = ?,
			teamwork = ?, communication = ?, innovation = ?, reliability = ?, leadership = ?, helpfulness = ?,
			updated_at = ?
		WHERE id = ?`,
		n.EmployeeID, n.Reason,
		n.Criteria.Teamwork, n.Criteria.Communication, n.Criteria.Innovation,
		n.Criteria.Reliability, n.Criteria.Leadership, n.Criteria.Helpfulness,
		n.UpdatedAt, n.ID)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

func (r *Repository) DeleteNomination(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM nominations WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

func (r *Repository) DeleteNominationsForPeriod(ctx context.Context, periodID string) (int, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM nominations WHERE period_id = ?", periodID)
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	return int(affected), err
}

// ===== Winner history =====

const winnerColumns = `id, period_id, year, month, employee_id, employee_name, department, position,
	vote_count, percentage, rank, avg_teamwork, avg_communication, avg_innovation,
	avg_reliability, avg_leadership, avg_helpfulness, voting_group, winner_type, is_yearly_winner, created_at`

func scanWinnerRow(scan func(dest ...any) error) (*models.WinnerHistory, error) {
	var w models.WinnerHistory
	var name, dept, pos, group sql.NullString
	err := scan(&w.ID, &w.PeriodID, &w.Year, &w.Month, &w.EmployeeID, &name, &dept, &pos,
		&w.Count, &w.Percentage, &w.Rank,
		&w.AvgCriteria.Teamwork, &w.AvgCriteria.Communication, &w.AvgCriteria.Innovation,
		&w.AvgCriteria.Reliability, &w.AvgCriteria.Leadership, &w.AvgCriteria.Helpfulness,
		&group, &w.WinnerType, &w.IsYearlyWinner, &w.CreatedAt)
	if err != nil {
		return nil, err
	}
	w.EmployeeName = name.String
	w.Department = dept.String
	w.Position = pos.String
	w.VotingGroup = models.NamedGroup(group.String)
	return &w, nil
}

// SaveWinner inserts a winner row, replacing any existing row with the same
// id. The GENERAL record's id is derived from (year, month), so recomputing
// a period overwrites it instead of duplicating it.
func (r *Repository) SaveWinner(ctx context.Context, w models.WinnerHistory) error {
	group := ""
	if !w.VotingGroup.IsDefault() {
		group = w.VotingGroup.String()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO winner_history (id, period_id, year, month, employee_id, employee_name,
			department, position, vote_count, percentage, rank,
			avg_teamwork, avg_communication, avg_innovation, avg_reliability, avg_leadership, avg_helpfulness,
			voting_group, winner_type, is_yearly_winner, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		w.ID, w.PeriodID, w.Year, w.Month, w.EmployeeID, w.EmployeeName,
		w.Department, w.Position, w.Count, w.Percentage, w.Rank,
		w.AvgCriteria.Teamwork, w.AvgCriteria.Communication, w.AvgCriteria.Innovation,
		w.AvgCriteria.Reliability, w.AvgCriteria.Leadership, w.AvgCriteria.Helpfulness,
		group, w.WinnerType, w.IsYearlyWinner, w.CreatedAt)
	return err
}

func (r *Repository) GetWinner(ctx context.Context, id string) (*models.WinnerHistory, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+winnerColumns+" FROM winner_history WHERE id = ?", id)
	w, err := scanWinnerRow(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return r.withReactions(ctx, w)
}

func (r *Repository) listWinners(ctx context.Context, where string, args ...any) ([]models.WinnerHistory, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+winnerColumns+" FROM winner_history "+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.WinnerHistory
	for rows.Next() {
		w, err := scanWinnerRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		reactions, err := r.ListReactions(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Reactions = reactions
	}
	return out, nil
}

func (r *Repository) ListWinnersByYear(ctx context.Context, year int) ([]models.WinnerHistory, error) {
	return r.listWinners(ctx, "WHERE year = ? ORDER BY month, voting_group, rank", year)
}

func (r *Repository) ListWinnersByYearMonth(ctx context.Context, year, month int) ([]models.WinnerHistory, error) {
	return r.listWinners(ctx, "WHERE year = ? AND month = ? ORDER BY voting_group, rank", year, month)
}

func (r *Repository) ListWinnersForPeriod(ctx context.Context, periodID string) ([]models.WinnerHistory, error) {
	return r.listWinners(ctx, "WHERE period_id = ? ORDER BY voting_group, rank", periodID)
}

func (r *Repository) GetGeneralWinnerForPeriod(ctx context.Context, periodID string) (*models.WinnerHistory, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+winnerColumns+" FROM winner_history WHERE period_id = ? AND winner_type = ?",
		periodID, models.WinnerGeneral)
	w, err := scanWinnerRow(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return r.withReactions(ctx, w)
}

func (r *Repository) ListGroupWinnersForPeriod(ctx context.Context, periodID string) ([]models.WinnerHistory, error) {
	return r.listWinners(ctx, "WHERE period_id = ? AND winner_type = ? ORDER BY voting_group, rank",
		periodID, models.WinnerByGroup)
}

func (r *Repository) GetYearlyWinner(ctx context.Context, year int) (*models.WinnerHistory, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+winnerColumns+" FROM winner_history WHERE year = ? AND is_yearly_winner = 1 LIMIT 1", year)
	w, err := scanWinnerRow(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return r.withReactions(ctx, w)
}

func (r *Repository) SetYearlyWinner(ctx context.Context, id string, yearly bool) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE winner_history SET is_yearly_winner = ? WHERE id = ?", yearly, id)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

func (r *Repository) ClearYearlyWinnerForYear(ctx context.Context, year int) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE winner_history SET is_yearly_winner = 0 WHERE year = ?", year)
	return err
}

func (r *Repository) DeleteWinnersForPeriod(ctx context.Context, periodID string) (int, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM winner_history WHERE period_id = ?", periodID)
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	return int(affected), err
}

func (r *Repository) withReactions(ctx context.Context, w *models.WinnerHistory) (*models.WinnerHistory, error) {
	reactions, err := r.ListReactions(ctx, w.ID)
	if err != nil {
		return nil, err
	}
	w.Reactions = reactions
	return w, nil
}

// ===== Reactions =====

// AddReaction records an emoji reaction. Re-adding the same
// (winner, user, emoji) triple is a no-op.
func (r *Repository) AddReaction(ctx context.Context, winnerID string, reaction models.Reaction) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO winner_reactions (winner_id, user_id, user_name, emoji, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		winnerID, reaction.UserID, reaction.UserName, reaction.Emoji, reaction.CreatedAt)
	return err
}

// RemoveReaction deletes a reaction; removing an absent triple is a no-op.
func (r *Repository) RemoveReaction(ctx context.Context, winnerID, userID, emoji string) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM winner_reactions WHERE winner_id = ? AND user_id = ? AND emoji = ?",
		winnerID, userID, emoji)
	return err
}

func (r *Repository) ListReactions(ctx context.Context, winnerID string) ([]models.Reaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, user_name, emoji, created_at FROM winner_reactions
		WHERE winner_id = ? ORDER BY created_at, id`, winnerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Reaction
	for rows.Next() {
		var reaction models.Reaction
		var name sql.NullString
		if err := rows.Scan(&reaction.UserID, &name, &reaction.Emoji, &reaction.CreatedAt); err != nil {
			return nil, err
		}
		reaction.UserName = name.String
		out = append(out, reaction)
	}
	return out, rows.Err()
}

// ===== Configuration singletons =====

const (
	keyEligibilityConfig = "eligibility_config"
	keyVotingGroupConfig = "voting_group_config"
)

func (r *Repository) getConfig(ctx context.Context, key string, out any) error {
	var value string
	err := r.db.QueryRowContext(ctx,
		"SELECT value FROM app_config WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(value), out)
}

func (r *Repository) setConfig(ctx context.Context, key string, cfg any) error {
	payload, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO app_config (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, string(payload))
	return err
}

func (r *Repository) GetEligibilityConfig(ctx context.Context) (*models.EligibilityConfig, error) {
	var cfg models.EligibilityConfig
	if err := r.getConfig(ctx, keyEligibilityConfig, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *Repository) SetEligibilityConfig(ctx context.Context, cfg models.EligibilityConfig) error {
	return r.setConfig(ctx, keyEligibilityConfig, cfg)
}

func (r *Repository) GetVotingGroupConfig(ctx context.Context) (*models.VotingGroupConfig, error) {
	var cfg models.VotingGroupConfig
	if err := r.getConfig(ctx, keyVotingGroupConfig, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *Repository) SetVotingGroupConfig(ctx context.Context, cfg models.VotingGroupConfig) error {
	return r.setConfig(ctx, keyVotingGroupConfig, cfg)
}

func requireRowAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
