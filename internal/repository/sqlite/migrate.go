package sqlite

import "fmt"

// schemaVersion is the target stamped into PRAGMA user_version after a
// fully applied migration step.
const schemaVersion = 1

// migrationV1 creates the three tables, their indexes, and the default
// seed rows. Every statement is safe to re-run: table and index creation
// use IF NOT EXISTS and the seeds use INSERT OR IGNORE against the UNIQUE
// description columns, so a crash before the final version stamp simply
// retries the whole step on the next startup.
var migrationV1 = []string{
	`CREATE TABLE IF NOT EXISTS category (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		descricao TEXT NOT NULL UNIQUE
	)`,

	`CREATE TABLE IF NOT EXISTS tipo_pagrec (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		descricao TEXT NOT NULL UNIQUE
	)`,

	`CREATE TABLE IF NOT EXISTS lancamento (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		data TEXT NOT NULL,
		valor REAL NOT NULL,
		categoria_id INTEGER NOT NULL,
		tipopagrec_id INTEGER NOT NULL,
		tipo TEXT NOT NULL CHECK (tipo IN ('D','C')),
		observacao TEXT,
		FOREIGN KEY (categoria_id)  REFERENCES category(id)    ON DELETE RESTRICT ON UPDATE CASCADE,
		FOREIGN KEY (tipopagrec_id) REFERENCES tipo_pagrec(id) ON DELETE RESTRICT ON UPDATE CASCADE
	)`,

	`CREATE INDEX IF NOT EXISTS idx_lanc_data ON lancamento(data)`,
	`CREATE INDEX IF NOT EXISTS idx_lanc_cat  ON lancamento(categoria_id)`,
	`CREATE INDEX IF NOT EXISTS idx_lanc_tpr  ON lancamento(tipopagrec_id)`,

	`INSERT OR IGNORE INTO tipo_pagrec (descricao) VALUES ('Dinheiro'),('Pix'),('Cartão'),('Transferência')`,
	`INSERT OR IGNORE INTO category (descricao) VALUES ('Alimentação'),('Transporte'),('Salário'),('Saúde')`,
}

// migrate brings the schema up to schemaVersion. It is a no-op when the
// persisted version is already current, so it runs on every startup.
func (r *Repository) migrate() error {
	var current int
	if err := r.db.QueryRow("PRAGMA user_version").Scan(&current); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if current >= schemaVersion {
		return nil
	}

	for _, stmt := range migrationV1 {
		if _, err := r.db.Exec(stmt); err != nil {
			return fmt.Errorf("migration statement failed: %w", err)
		}
	}

	// Stamped last: a failure anywhere above leaves the version at 0 and
	// the next startup retries the full step.
	if _, err := r.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return fmt.Errorf("stamp schema version: %w", err)
	}

	return nil
}
