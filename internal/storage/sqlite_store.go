package storage

import (
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/citycat/adoption-engine/internal/domain"
)

// SQLiteStore persists cats, applications, feature flags, and affiliations.
// Nested records (behavioral profile, heart-adoption data, permission lists)
// are stored as JSON columns.
type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys=ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) EnsureSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS cats (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  age INTEGER NOT NULL,
  health_status TEXT NOT NULL DEFAULT 'healthy',
  health_notes TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT 'shelter',
  arrival_date TEXT,
  compatibility_json TEXT NOT NULL DEFAULT '[]',
  behavioral_json TEXT,
  heart_json TEXT
);`,
		`CREATE INDEX IF NOT EXISTS idx_cats_status ON cats(status);`,
		`CREATE TABLE IF NOT EXISTS applications (
  id TEXT PRIMARY KEY,
  applicant_email TEXT NOT NULL,
  housing_type TEXT NOT NULL,
  housing_area TEXT NOT NULL,
  has_garden INTEGER NOT NULL DEFAULT 0,
  floor INTEGER NOT NULL DEFAULT 0,
  adults_count INTEGER NOT NULL DEFAULT 1,
  children_ages TEXT NOT NULL DEFAULT '',
  other_animals TEXT NOT NULL DEFAULT 'none',
  absence_hours REAL NOT NULL DEFAULT 0,
  cat_experience TEXT NOT NULL DEFAULT 'none',
  previous_adoptions INTEGER NOT NULL DEFAULT 0,
  motivation TEXT NOT NULL DEFAULT '',
  notes TEXT NOT NULL DEFAULT '',
  submitted_at TEXT NOT NULL
);`,
		`CREATE INDEX IF NOT EXISTS idx_applications_email ON applications(applicant_email);`,
		`CREATE TABLE IF NOT EXISTS feature_flags (
  role TEXT NOT NULL,
  label_key TEXT NOT NULL,
  enabled INTEGER NOT NULL DEFAULT 1,
  PRIMARY KEY (role, label_key)
);`,
		`CREATE TABLE IF NOT EXISTS affiliations (
  id TEXT PRIMARY KEY,
  user_email TEXT NOT NULL,
  granted_by TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT 'pending',
  permissions_json TEXT NOT NULL DEFAULT '[]'
);`,
		`CREATE INDEX IF NOT EXISTS idx_affiliations_email ON affiliations(user_email);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// ---- cats ----

func (s *SQLiteStore) CountCats() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM cats`).Scan(&n)
	return n, err
}

// UpsertCats inserts the seed dataset without duplicating by id.
func (s *SQLiteStore) UpsertCats(cats []domain.CatProfile) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
INSERT OR IGNORE INTO cats
(id, name, age, health_status, health_notes, status, arrival_date, compatibility_json, behavioral_json, heart_json)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range cats {
		args, err := catArgs(c)
		if err != nil {
			return err
		}
		if _, err := stmt.Exec(args...); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) CreateCat(c domain.CatProfile) (domain.CatProfile, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	args, err := catArgs(c)
	if err != nil {
		return domain.CatProfile{}, err
	}
	_, err = s.db.Exec(`
INSERT INTO cats
(id, name, age, health_status, health_notes, status, arrival_date, compatibility_json, behavioral_json, heart_json)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, args...)
	return c, err
}

func (s *SQLiteStore) DeleteCat(id string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM cats WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

func (s *SQLiteStore) GetCat(id string) (domain.CatProfile, bool, error) {
	row := s.db.QueryRow(`
SELECT id, name, age, health_status, health_notes, status, arrival_date, compatibility_json, behavioral_json, heart_json
FROM cats WHERE id = ?
`, id)
	c, err := scanCat(row)
	if err == sql.ErrNoRows {
		return domain.CatProfile{}, false, nil
	}
	if err != nil {
		return domain.CatProfile{}, false, err
	}
	return c, true, nil
}

// ListCats returns a page of cats, optionally restricted to one status and
// a minimum age.
func (s *SQLiteStore) ListCats(limit, offset int, status domain.CatStatus, minAge int) ([]domain.CatProfile, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var conds []string
	args := []any{}
	if status != "" {
		conds = append(conds, "status = ?")
		args = append(args, string(status))
	}
	if minAge > 0 {
		conds = append(conds, "age >= ?")
		args = append(args, minAge)
	}
	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM cats `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := s.db.Query(`
SELECT id, name, age, health_status, health_notes, status, arrival_date, compatibility_json, behavioral_json, heart_json
FROM cats `+where+`
ORDER BY id
LIMIT ? OFFSET ?
`, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []domain.CatProfile
	for rows.Next() {
		c, err := scanCat(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	return out, total, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCat(row rowScanner) (domain.CatProfile, error) {
	var c domain.CatProfile
	var arrival sql.NullString
	var compatJSON string
	var behavioralJSON, heartJSON sql.NullString

	if err := row.Scan(
		&c.ID, &c.Name, &c.Age, &c.HealthStatus, &c.HealthNotes, &c.Status,
		&arrival, &compatJSON, &behavioralJSON, &heartJSON,
	); err != nil {
		return domain.CatProfile{}, err
	}

	if arrival.Valid && arrival.String != "" {
		if t, err := time.Parse(time.RFC3339, arrival.String); err == nil {
			c.ArrivalDate = &t
		}
	}
	_ = json.Unmarshal([]byte(compatJSON), &c.Compatibility)
	if behavioralJSON.Valid && behavioralJSON.String != "" {
		var bp domain.BehavioralProfile
		if err := json.Unmarshal([]byte(behavioralJSON.String), &bp); err == nil {
			c.Behavioral = &bp
		}
	}
	if heartJSON.Valid && heartJSON.String != "" {
		var h domain.HeartAdoptionData
		if err := json.Unmarshal([]byte(heartJSON.String), &h); err == nil {
			c.HeartAdoption = &h
		}
	}
	return c, nil
}

func catArgs(c domain.CatProfile) ([]any, error) {
	compat, err := json.Marshal(c.Compatibility)
	if err != nil {
		return nil, err
	}
	var arrival any
	if c.ArrivalDate != nil {
		arrival = c.ArrivalDate.Format(time.RFC3339)
	}
	var behavioral, heartData any
	if c.Behavioral != nil {
		b, err := json.Marshal(c.Behavioral)
		if err != nil {
			return nil, err
		}
		behavioral = string(b)
	}
	if c.HeartAdoption != nil {
		b, err := json.Marshal(c.HeartAdoption)
		if err != nil {
			return nil, err
		}
		heartData = string(b)
	}
	return []any{
		c.ID, c.Name, c.Age, string(c.HealthStatus), c.HealthNotes, string(c.Status),
		arrival, string(compat), behavioral, heartData,
	}, nil
}

// ---- applications ----

func (s *SQLiteStore) SaveApplication(app domain.AdoptionApplication) (domain.AdoptionApplication, error) {
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	if app.SubmittedAt.IsZero() {
		app.SubmittedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(`
INSERT INTO applications
(id, applicant_email, housing_type, housing_area, has_garden, floor, adults_count, children_ages,
 other_animals, absence_hours, cat_experience, previous_adoptions, motivation, notes, submitted_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`,
		app.ID, app.ApplicantEmail, string(app.HousingType), string(app.HousingArea),
		boolToInt(app.HasGarden), app.Floor, app.AdultsCount, app.ChildrenAges,
		string(app.OtherAnimals), app.AbsenceHours, string(app.CatExperience),
		boolToInt(app.PreviousAdoptions), app.Motivation, app.Notes,
		app.SubmittedAt.Format(time.RFC3339),
	)
	return app, err
}

func (s *SQLiteStore) GetApplication(id string) (domain.AdoptionApplication, bool, error) {
	var app domain.AdoptionApplication
	var hasGarden, prevAdoptions int
	var submittedAt string

	err := s.db.QueryRow(`
SELECT id, applicant_email, housing_type, housing_area, has_garden, floor, adults_count, children_ages,
       other_animals, absence_hours, cat_experience, previous_adoptions, motivation, notes, submitted_at
FROM applications WHERE id = ?
`, id).Scan(
		&app.ID, &app.ApplicantEmail, &app.HousingType, &app.HousingArea,
		&hasGarden, &app.Floor, &app.AdultsCount, &app.ChildrenAges,
		&app.OtherAnimals, &app.AbsenceHours, &app.CatExperience,
		&prevAdoptions, &app.Motivation, &app.Notes, &submittedAt,
	)
	if err == sql.ErrNoRows {
		return domain.AdoptionApplication{}, false, nil
	}
	if err != nil {
		return domain.AdoptionApplication{}, false, err
	}
	app.HasGarden = hasGarden != 0
	app.PreviousAdoptions = prevAdoptions != 0
	if t, err := time.Parse(time.RFC3339, submittedAt); err == nil {
		app.SubmittedAt = t
	}
	return app, true, nil
}

// ---- feature flags ----

func (s *SQLiteStore) UpsertFlags(flags []domain.FeatureFlag) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
INSERT INTO feature_flags (role, label_key, enabled) VALUES (?, ?, ?)
ON CONFLICT(role, label_key) DO UPDATE SET enabled = excluded.enabled
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, f := range flags {
		if _, err := stmt.Exec(string(f.Role), f.LabelKey, boolToInt(f.Enabled)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) ListFlags(role domain.UserRole) ([]domain.FeatureFlag, error) {
	rows, err := s.db.Query(`SELECT role, label_key, enabled FROM feature_flags WHERE role = ? ORDER BY label_key`, string(role))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.FeatureFlag
	for rows.Next() {
		var f domain.FeatureFlag
		var enabled int
		if err := rows.Scan(&f.Role, &f.LabelKey, &enabled); err != nil {
			return nil, err
		}
		f.Enabled = enabled != 0
		out = append(out, f)
	}
	return out, rows.Err()
}

// ---- affiliations ----

func (s *SQLiteStore) UpsertAffiliations(affs []domain.Affiliation) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
INSERT OR REPLACE INTO affiliations (id, user_email, granted_by, status, permissions_json)
VALUES (?, ?, ?, ?, ?)
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, a := range affs {
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		perms, err := json.Marshal(a.Permissions)
		if err != nil {
			return err
		}
		if _, err := stmt.Exec(a.ID, a.UserEmail, a.GrantedBy, string(a.Status), string(perms)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) ListAffiliationsByEmail(email string) ([]domain.Affiliation, error) {
	rows, err := s.db.Query(`
SELECT id, user_email, granted_by, status, permissions_json FROM affiliations WHERE user_email = ? ORDER BY id
`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Affiliation
	for rows.Next() {
		var a domain.Affiliation
		var permsJSON string
		if err := rows.Scan(&a.ID, &a.UserEmail, &a.GrantedBy, &a.Status, &permsJSON); err != nil {
			return nil, err
		}
		_ = json.Unmarshal([]byte(permsJSON), &a.Permissions)
		out = append(out, a)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
