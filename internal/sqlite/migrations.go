package sqlite

func (s Storage) RunMigrations() error {
	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id VARCHAR NOT NULL PRIMARY KEY,
		auth TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		command VARCHAR NOT NULL,
		started_at DATETIME NOT NULL,
		finished_at DATETIME NOT NULL,
		rules INTEGER NOT NULL,
		created INTEGER NOT NULL,
		duplicates INTEGER NOT NULL,
		deleted INTEGER NOT NULL,
		errors INTEGER NOT NULL
	)`,
}
